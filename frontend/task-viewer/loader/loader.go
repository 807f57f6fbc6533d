package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"uac-task-viewer/frontend/task-viewer/view"
	"uac-task-viewer/logging"
)

const (
	LoadingText   = "Loading tasks..."
	NoTasksText   = "No tasks found."
	failurePrefix = "Failed to load tasks: "
)

// Display is the page state a Loader reconciles. *view.Board implements it.
type Display interface {
	Begin(fn func(view.Surface)) uint64
	Commit(gen uint64, fn func(view.Surface)) bool
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Backend returned status %d", e.Code)
}

// Loader fetches a task listing from the backend and rebuilds the display
// from it.
type Loader struct {
	baseURL string
	client  *http.Client
	display Display
}

// New returns a Loader for the backend at baseURL. A nil client means a plain
// http.Client with no timeout; the request is bounded by the Load context.
func New(baseURL string, client *http.Client, display Display) *Loader {
	if client == nil {
		client = &http.Client{}
	}
	return &Loader{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		display: display,
	}
}

// Load clears the display, fetches the listing for mode and renders it.
// Failures end up as error text on the display; nothing is returned.
func (l *Loader) Load(ctx context.Context, mode Mode) {
	path, info := mode.target()
	url := l.baseURL + path

	gen := l.display.Begin(func(s view.Surface) {
		s.ClearMessages()
		s.SetInfo(info)
		s.SetError(LoadingText)
		s.ClearRows()
	})

	records, err := l.fetch(ctx, url)

	applied := l.display.Commit(gen, func(s view.Surface) {
		if err != nil {
			s.SetError(failurePrefix + err.Error())
			return
		}
		s.SetError("")
		if len(records) == 0 {
			s.SetError(NoTasksText)
			return
		}
		for _, rec := range records {
			s.AppendRow(rec.Row())
		}
	})

	switch {
	case !applied:
		logging.Logger.Infof("Event ID: LOAD_SUPERSEDED, Description: Discarded %s result from %s, a newer load was issued", mode, url)
	case err != nil:
		logging.Logger.Warnf("Event ID: LOAD_FAILED, Description: Loading %s tasks from %s failed: %v", mode, url, err)
	default:
		logging.Logger.Infof("Event ID: LOAD_OK, Description: Rendered %d %s tasks from %s", len(records), mode, url)
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]TaskRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}

	var records []TaskRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	return records, nil
}
