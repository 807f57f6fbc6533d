package models

// RawTask is one task definition as returned by the upstream source.
type RawTask map[string]interface{}

// TaskInfo is the four-field projection served by /api/tasks/*.
type TaskInfo struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Agent       *string `json:"agent"`
	Command     *string `json:"command"`
}

// Str returns the value under the first key holding a non-empty string.
func (t RawTask) Str(keys ...string) *string {
	for _, k := range keys {
		if v, ok := t[k].(string); ok && v != "" {
			return &v
		}
	}
	return nil
}

// ToTaskInfo maps a raw definition: description falls back to summary and
// agent falls back to agentVar.
func (t RawTask) ToTaskInfo() TaskInfo {
	info := TaskInfo{
		Description: t.Str("description", "summary"),
		Agent:       t.Str("agent", "agentVar"),
		Command:     t.Str("command"),
	}
	if name := t.Str("name"); name != nil {
		info.Name = *name
	}
	return info
}
