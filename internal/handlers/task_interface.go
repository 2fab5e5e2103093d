package handlers

import (
	"context"
	"todoApi/internal/models/task"
)

type Service interface {
	HealthCheck(ctx context.Context) error
	CreateTask(ctx context.Context, userID, title string, description *string) (*task.Task, error)
	ListTasks(ctx context.Context, userID string, filter task.StatusFilter, sort task.SortOrder) ([]*task.Task, error)
	GetTaskByID(ctx context.Context, userID string, id int64) (*task.Task, error)
	UpdateTask(ctx context.Context, userID string, id int64, opts ...task.Option) (*task.Task, error)
	DeleteTask(ctx context.Context, userID string, id int64) error
	ToggleComplete(ctx context.Context, userID string, id int64) (*task.Task, error)
}
