package uac

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"uac-task-viewer/backend/utils"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_MissingConfig(t *testing.T) {
	_, err := NewClient("", "token", nil, nil)
	assert.ErrorIs(t, err, ErrMissingConfig)

	_, err = NewClient("http://uac", "  ", nil, nil)
	assert.ErrorIs(t, err, ErrMissingConfig)
}

func TestNewClientFromEnv(t *testing.T) {
	t.Setenv("UAC_URL", "http://uac.local/uc/")
	t.Setenv("UAC_TOKEN", "secret")

	c, err := NewClientFromEnv(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://uac.local/uc", c.baseURL)
}

func TestClient_ListTasks(t *testing.T) {
	filters := make(chan map[string]string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/uc/resources/task/list", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var filter map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&filter))
		filters <- filter

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"name":"build","summary":"compile"}]`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL+"/uc", "secret", srv.Client(), nil)
	require.NoError(t, err)

	tasks, err := c.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "build", tasks[0]["name"])
	assert.Equal(t, basicListFilter, <-filters)
}

func TestClient_ListTasksAdvanced_DataWrapper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/resources/task/listadv", r.URL.Path)
		w.Write([]byte(`{"data":[{"name":"a"},{"name":"b"}]}`))
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", srv.Client(), nil)
	require.NoError(t, err)

	tasks, err := c.ListTasksAdvanced(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "b", tasks[1]["name"])
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", srv.Client(), nil)
	require.NoError(t, err)

	_, err = c.ListTasksAdvanced(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UAC error (401)")
}

func TestClient_BreakerOpensAfterFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "secret", srv.Client(), utils.NewBreaker("uac-test", time.Minute))
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		_, err = c.ListTasksAdvanced(context.Background())
		require.Error(t, err)
	}
	_, err = c.ListTasksAdvanced(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(4), calls.Load())
}

func TestDecodeListing(t *testing.T) {
	tasks, err := decodeListing([]byte("  null "))
	assert.NoError(t, err)
	assert.Nil(t, tasks)

	tasks, err = decodeListing(nil)
	assert.NoError(t, err)
	assert.Nil(t, tasks)

	_, err = decodeListing([]byte(`"nope"`))
	assert.Error(t, err)

	_, err = decodeListing([]byte(`[1,2]`))
	assert.Error(t, err)
}
