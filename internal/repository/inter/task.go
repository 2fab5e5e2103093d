package inter

import (
	"context"
	"todoApi/internal/models/task"
)

// TaskRepository — контракт хранилища. Все операции ограничены userID
// на уровне запроса, а не проверкой после выборки.
type TaskRepository interface {
	List(ctx context.Context, userID string, filter task.StatusFilter, sort task.SortOrder) ([]*task.Task, error)
	GetByID(ctx context.Context, userID string, id int64) (*task.Task, error)
	Create(ctx context.Context, t *task.Task) error
	Update(ctx context.Context, userID string, id int64, opts ...task.Option) (*task.Task, error)
	Delete(ctx context.Context, userID string, id int64) error
	ToggleComplete(ctx context.Context, userID string, id int64) (*task.Task, error)
	HealthCheck(ctx context.Context) error
}
