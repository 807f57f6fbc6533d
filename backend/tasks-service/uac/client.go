package uac

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"uac-task-viewer/backend/tasks-service/models"
	"uac-task-viewer/logging"

	"github.com/sony/gobreaker"
)

// ErrMissingConfig is returned when the controller URL or token is not set.
var ErrMissingConfig = errors.New("missing UAC_URL or UAC_TOKEN environment variables")

const (
	listPath    = "/resources/task/list"
	listAdvPath = "/resources/task/listadv"
)

// basicListFilter selects every task updated during the last 30 days.
var basicListFilter = map[string]string{
	"name":            "*",
	"type":            "",
	"updatedTimeType": "Offset",
	"updatedTime":     "-30d",
}

// Client talks to the Universal Controller REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewClient builds a client for the controller at baseURL. breaker may be nil.
func NewClient(baseURL, token string, httpClient *http.Client, breaker *gobreaker.CircuitBreaker) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	token = strings.TrimSpace(token)
	if baseURL == "" || token == "" {
		return nil, ErrMissingConfig
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: httpClient,
		breaker:    breaker,
	}, nil
}

// NewClientFromEnv reads UAC_URL and UAC_TOKEN.
func NewClientFromEnv(httpClient *http.Client, breaker *gobreaker.CircuitBreaker) (*Client, error) {
	return NewClient(os.Getenv("UAC_URL"), os.Getenv("UAC_TOKEN"), httpClient, breaker)
}

// ListTasks returns the summary listing.
func (c *Client) ListTasks(ctx context.Context) ([]models.RawTask, error) {
	body, err := json.Marshal(basicListFilter)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, http.MethodPost, listPath, body)
}

// ListTasksAdvanced returns full task definitions.
func (c *Client) ListTasksAdvanced(ctx context.Context) ([]models.RawTask, error) {
	return c.call(ctx, http.MethodGet, listAdvPath, nil)
}

func (c *Client) call(ctx context.Context, method, path string, body []byte) ([]models.RawTask, error) {
	if c.breaker == nil {
		return c.do(ctx, method, path, body)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, method, path, body)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Logger.Warnf("Event ID: UAC_CIRCUIT_OPEN, Description: Request %s %s rejected by circuit breaker: %v", method, path, err)
		}
		return nil, err
	}
	return result.([]models.RawTask), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) ([]models.RawTask, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("error creating request to UAC: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request to UAC: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading UAC response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("UAC error (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	tasks, err := decodeListing(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode UAC response: %w", err)
	}
	logging.Logger.Debugf("Event ID: UAC_LIST_OK, Description: %s %s returned %d tasks", method, path, len(tasks))
	return tasks, nil
}

// decodeListing accepts either a bare array or an object wrapping the array
// under "data".
func decodeListing(data []byte) ([]models.RawTask, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	switch trimmed[0] {
	case '[':
		var tasks []models.RawTask
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	case '{':
		var wrapped struct {
			Data []models.RawTask `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, err
		}
		return wrapped.Data, nil
	default:
		return nil, fmt.Errorf("unexpected listing payload starting with %q", trimmed[0])
	}
}
