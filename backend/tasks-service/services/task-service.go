package services

import (
	"context"
	"fmt"

	"uac-task-viewer/backend/tasks-service/models"
)

// TaskSource lists raw task definitions. Implemented by the UAC client and
// the Mongo repository.
type TaskSource interface {
	ListTasks(ctx context.Context) ([]models.RawTask, error)
	ListTasksAdvanced(ctx context.Context) ([]models.RawTask, error)
}

type TaskService struct {
	source TaskSource
}

func NewTaskService(source TaskSource) *TaskService {
	return &TaskService{source: source}
}

// FetchTasksBasic maps the summary listing.
func (s *TaskService) FetchTasksBasic(ctx context.Context) ([]models.TaskInfo, error) {
	raw, err := s.source.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks (basic): %w", err)
	}
	return toTaskInfos(raw), nil
}

// FetchTasksAdvanced maps the detailed listing.
func (s *TaskService) FetchTasksAdvanced(ctx context.Context) ([]models.TaskInfo, error) {
	raw, err := s.source.ListTasksAdvanced(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks (advanced): %w", err)
	}
	return toTaskInfos(raw), nil
}

func toTaskInfos(raw []models.RawTask) []models.TaskInfo {
	tasks := make([]models.TaskInfo, 0, len(raw))
	for _, t := range raw {
		tasks = append(tasks, t.ToTaskInfo())
	}
	return tasks
}
