package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"uac-task-viewer/backend/tasks-service/services"
	"uac-task-viewer/logging"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// NewRouter wires the task endpoints behind the CORS middleware.
func NewRouter(h *TaskHandler, corsOrigin string) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", h.Root).Methods(http.MethodGet)
	r.HandleFunc("/api/tasks/basic", h.GetBasicTasks).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/tasks/advanced", h.GetAdvancedTasks).Methods(http.MethodGet, http.MethodOptions)
	return enableCORS(r, corsOrigin)
}

func enableCORS(next http.Handler, origin string) http.Handler {
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *TaskHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Stonebranch UAC backend is running.",
		"description": "Use the endpoints below to retrieve UAC tasks.",
		"endpoints": map[string]string{
			"basic_tasks":    "/api/tasks/basic",
			"advanced_tasks": "/api/tasks/advanced",
		},
	})
}

// GetBasicTasks serves the summary listing; agent and command are usually null.
func (h *TaskHandler) GetBasicTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.FetchTasksBasic(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: FETCH_BASIC_TASKS_FAILED, Description: %v", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching basic tasks: %v", err))
		return
	}
	logging.Logger.Infof("Event ID: FETCH_BASIC_TASKS, Description: Returning %d tasks", len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetAdvancedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.FetchTasksAdvanced(r.Context())
	if err != nil {
		logging.Logger.Errorf("Event ID: FETCH_ADVANCED_TASKS_FAILED, Description: %v", err)
		writeDetail(w, http.StatusInternalServerError, fmt.Sprintf("Error fetching advanced tasks: %v", err))
		return
	}
	logging.Logger.Infof("Event ID: FETCH_ADVANCED_TASKS, Description: Returning %d tasks", len(tasks))
	writeJSON(w, http.StatusOK, tasks)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Logger.Warnf("Event ID: RESPONSE_ENCODE_FAILED, Description: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
