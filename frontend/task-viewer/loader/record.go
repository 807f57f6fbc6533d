package loader

import (
	"bytes"
	"encoding/json"
	"strconv"

	"uac-task-viewer/frontend/task-viewer/view"
)

// TaskRecord is one element of a backend listing. Every field is optional.
type TaskRecord struct {
	Name        Text `json:"name"`
	Description Text `json:"description"`
	Agent       Text `json:"agent"`
	Command     Text `json:"command"`
}

func (r TaskRecord) Row() view.Row {
	return view.Row{
		Name:        string(r.Name),
		Description: string(r.Description),
		Agent:       string(r.Agent),
		Command:     string(r.Command),
	}
}

// Text is a loosely typed cell value. Falsy JSON values (null, false, 0, "")
// decode to the empty string; other scalars keep their literal text.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = ""
	case string:
		*t = Text(x)
	case bool:
		if x {
			*t = "true"
		} else {
			*t = ""
		}
	case float64:
		if x == 0 {
			*t = ""
		} else {
			*t = Text(strconv.FormatFloat(x, 'f', -1, 64))
		}
	default:
		*t = Text(bytes.TrimSpace(data))
	}
	return nil
}
