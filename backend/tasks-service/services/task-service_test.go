package services

import (
	"context"
	"errors"
	"testing"

	"uac-task-viewer/backend/tasks-service/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	basic    []models.RawTask
	advanced []models.RawTask
	err      error
}

func (f *fakeSource) ListTasks(ctx context.Context) ([]models.RawTask, error) {
	return f.basic, f.err
}

func (f *fakeSource) ListTasksAdvanced(ctx context.Context) ([]models.RawTask, error) {
	return f.advanced, f.err
}

func TestTaskService_FetchTasksBasic(t *testing.T) {
	svc := NewTaskService(&fakeSource{basic: []models.RawTask{
		{"name": "build", "summary": "compile"},
		{"name": "test"},
	}})

	tasks, err := svc.FetchTasksBasic(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "build", tasks[0].Name)
	assert.Equal(t, "compile", *tasks[0].Description)
	assert.Nil(t, tasks[0].Agent)
	assert.Equal(t, "test", tasks[1].Name)
	assert.Nil(t, tasks[1].Description)
}

func TestTaskService_FetchTasksAdvanced(t *testing.T) {
	svc := NewTaskService(&fakeSource{advanced: []models.RawTask{
		{"name": "deploy", "description": "ship", "agent": "host1", "command": "run.sh"},
	}})

	tasks, err := svc.FetchTasksAdvanced(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "host1", *tasks[0].Agent)
	assert.Equal(t, "run.sh", *tasks[0].Command)
}

func TestTaskService_EmptyListingIsNotNil(t *testing.T) {
	svc := NewTaskService(&fakeSource{})

	tasks, err := svc.FetchTasksAdvanced(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskService_WrapsSourceErrors(t *testing.T) {
	boom := errors.New("connection refused")
	svc := NewTaskService(&fakeSource{err: boom})

	_, err := svc.FetchTasksBasic(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "failed to retrieve tasks (basic): connection refused")

	_, err = svc.FetchTasksAdvanced(context.Background())
	assert.EqualError(t, err, "failed to retrieve tasks (advanced): connection refused")
}
