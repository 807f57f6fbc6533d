package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uac-task-viewer/backend/tasks-service/handlers"
	"uac-task-viewer/backend/tasks-service/repositories"
	"uac-task-viewer/backend/tasks-service/services"
	"uac-task-viewer/backend/tasks-service/uac"
	"uac-task-viewer/backend/utils"
	"uac-task-viewer/logging"

	"github.com/joho/godotenv"
)

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

	logging.InitLogger("tasks-service", getenv("LOG_FILE", "logs/tasks.log"))
	logging.Logger.Info("Event ID: SERVICE_START, Description: Starting Tasks Service...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var source services.TaskSource
	switch sourceName := getenv("TASK_SOURCE", "uac"); sourceName {
	case "uac":
		client, err := uac.NewClientFromEnv(utils.NewHTTPClient(), utils.NewBreaker("uac-cb", 5*time.Second))
		if err != nil {
			logging.Logger.Fatalf("Event ID: UAC_CONFIG_ERROR, Description: %v", err)
		}
		logging.Logger.Infof("Event ID: UAC_CLIENT_READY, Description: Using Universal Controller at %s", os.Getenv("UAC_URL"))
		source = client
	case "mongo":
		repo, err := repositories.NewTaskRepository(ctx, os.Getenv("MONGO_URI"), os.Getenv("MONGO_DB_NAME"), os.Getenv("MONGO_COLLECTION"))
		if err != nil {
			logging.Logger.Fatalf("Event ID: DB_CONNECTION_FAILED, Description: %v", err)
		}
		defer repo.Close(context.Background())
		source = repo
	default:
		logging.Logger.Fatalf("Event ID: CONFIG_ERROR, Description: Unknown TASK_SOURCE %q (expected uac or mongo)", sourceName)
	}

	taskHandler := handlers.NewTaskHandler(services.NewTaskService(source))

	srv := &http.Server{
		Addr:         ":" + getenv("SERVER_PORT", "8000"),
		Handler:      handlers.NewRouter(taskHandler, os.Getenv("CORS_ORIGIN")),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Logger.Infof("Event ID: SERVER_START_INFO, Description: Server running on http://localhost%s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Logger.Fatalf("Event ID: SERVER_FATAL_ERROR, Description: Server failed to start: %v", err)
	}
	logging.Logger.Info("Event ID: SERVICE_STOP, Description: Tasks Service stopped")
}
