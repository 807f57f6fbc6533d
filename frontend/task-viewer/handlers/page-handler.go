package handlers

import (
	"bytes"
	"context"
	"net/http"

	"uac-task-viewer/frontend/task-viewer/loader"
	"uac-task-viewer/frontend/task-viewer/view"
	"uac-task-viewer/logging"

	"github.com/gorilla/mux"
)

// TaskLoader is satisfied by *loader.Loader.
type TaskLoader interface {
	Load(ctx context.Context, mode loader.Mode)
}

type PageHandler struct {
	board  *view.Board
	loader TaskLoader
}

func NewPageHandler(board *view.Board, l TaskLoader) *PageHandler {
	return &PageHandler{board: board, loader: l}
}

// NewRouter registers the page, the two load triggers and a health check.
func NewRouter(h *PageHandler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Index).Methods(http.MethodGet)
	r.HandleFunc("/load/{mode}", h.Load).Methods(http.MethodPost)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return withSecurityHeaders(r)
}

func withSecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; base-uri 'none'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := view.Render(&buf, h.board.Snapshot()); err != nil {
		logging.Logger.Errorf("Event ID: PAGE_RENDER_FAILED, Description: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

// Load runs one load for the requested mode and sends the browser back to
// the page.
func (h *PageHandler) Load(w http.ResponseWriter, r *http.Request) {
	mode, err := loader.ParseMode(mux.Vars(r)["mode"])
	if err != nil {
		logging.Logger.Warnf("Event ID: INVALID_MODE, Description: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.loader.Load(r.Context(), mode)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
