package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"uac-task-viewer/frontend/task-viewer/loader"
	"uac-task-viewer/frontend/task-viewer/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLoader struct {
	modes []loader.Mode
}

func (l *recordingLoader) Load(ctx context.Context, mode loader.Mode) {
	l.modes = append(l.modes, mode)
}

func serve(h http.Handler, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestLoad_RedirectsToPage(t *testing.T) {
	l := &recordingLoader{}
	router := NewRouter(NewPageHandler(view.NewBoard(), l))

	rec := serve(router, http.MethodPost, "/load/basic")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	serve(router, http.MethodPost, "/load/advanced")
	assert.Equal(t, []loader.Mode{loader.ModeBasic, loader.ModeAdvanced}, l.modes)
}

func TestLoad_UnknownModeIsRejected(t *testing.T) {
	l := &recordingLoader{}
	router := NewRouter(NewPageHandler(view.NewBoard(), l))

	rec := serve(router, http.MethodPost, "/load/everything")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown mode")
	assert.Empty(t, l.modes)
}

func TestIndex_RendersBoard(t *testing.T) {
	board := view.NewBoard()
	gen := board.Begin(func(s view.Surface) { s.SetInfo("Using list_tasks (basic summary).") })
	board.Commit(gen, func(s view.Surface) {
		s.AppendRow(view.Row{Name: "build", Description: "compile", Command: "make <all>"})
	})
	router := NewRouter(NewPageHandler(board, &recordingLoader{}))

	rec := serve(router, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	body := rec.Body.String()
	assert.Contains(t, body, "<td>build</td><td>compile</td><td></td><td><pre>make &lt;all&gt;</pre></td>")
	assert.Contains(t, body, "Using list_tasks (basic summary).")
}

func TestEndToEnd_LoadThenView(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"name":"deploy","description":"ship","agent":"host1","command":"run.sh"}]`))
	}))
	defer backend.Close()

	board := view.NewBoard()
	router := NewRouter(NewPageHandler(board, loader.New(backend.URL, backend.Client(), board)))

	rec := serve(router, http.MethodPost, "/load/advanced")
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = serve(router, http.MethodGet, "/")
	assert.Contains(t, rec.Body.String(), "<td>deploy</td><td>ship</td><td>host1</td><td><pre>run.sh</pre></td>")
}

func TestHealth(t *testing.T) {
	rec := serve(NewRouter(NewPageHandler(view.NewBoard(), &recordingLoader{})), http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
