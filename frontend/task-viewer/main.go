package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uac-task-viewer/frontend/task-viewer/handlers"
	"uac-task-viewer/frontend/task-viewer/loader"
	"uac-task-viewer/frontend/task-viewer/view"
	"uac-task-viewer/logging"

	"github.com/joho/godotenv"
)

const defaultAPIBase = "http://127.0.0.1:8000"

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "no .env file loaded: %v\n", err)
	}

	logging.InitLogger("task-viewer", getenv("LOG_FILE", "logs/task-viewer.log"))
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Task Viewer...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiBase := getenv("TASKS_API_BASE", defaultAPIBase)
	board := view.NewBoard()
	taskLoader := loader.New(apiBase, nil, board)

	// Initial page load shows the advanced listing.
	go taskLoader.Load(ctx, loader.ModeAdvanced)

	srv := &http.Server{
		Addr:        ":" + getenv("SERVER_PORT", "8080"),
		Handler:     handlers.NewRouter(handlers.NewPageHandler(board, taskLoader)),
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Task Viewer running on http://localhost%s, backend %s", srv.Addr, apiBase)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
	logging.Logger.Info("Event ID: SERVICE_STOP, Description: Task Viewer stopped")
}
