package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"
	"todoApi/internal/models/task"
	repo "todoApi/internal/repository"
)

type TaskStorage struct {
	storage map[int64]*task.Task
	mtx     *sync.RWMutex
	nextID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*task.Task),
		mtx:     &sync.RWMutex{},
		nextID:  1,
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	return nil
}

func clone(t *task.Task) *task.Task {
	copied := *t
	if t.Description != nil {
		d := *t.Description
		copied.Description = &d
	}
	return &copied
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	now := time.Now()
	taskToCreate.ID = s.nextID
	s.nextID++ // id не переиспользуются даже после удаления
	taskToCreate.Completed = false
	taskToCreate.CreatedAt = now
	taskToCreate.UpdatedAt = now

	s.storage[taskToCreate.ID] = clone(taskToCreate)
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, userID string, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	taskToGet, ok := s.storage[id]
	if !ok || taskToGet.UserID != userID {
		return nil, repo.ErrNotFound
	}
	return clone(taskToGet), nil
}

func (s *TaskStorage) List(ctx context.Context, userID string, filter task.StatusFilter, sortOrder task.SortOrder) ([]*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.storage {
		if t.UserID != userID {
			continue
		}
		if filter == task.FilterPending && t.Completed {
			continue
		}
		if filter == task.FilterCompleted && !t.Completed {
			continue
		}
		res = append(res, clone(t))
	}

	switch sortOrder {
	case task.SortTitle:
		sort.Slice(res, func(i, j int) bool {
			return res[i].Title < res[j].Title
		})
	default:
		sort.Slice(res, func(i, j int) bool {
			if res[i].CreatedAt.Equal(res[j].CreatedAt) {
				return res[i].ID > res[j].ID
			}
			return res[i].CreatedAt.After(res[j].CreatedAt)
		})
	}

	return res, nil
}

func (s *TaskStorage) Update(ctx context.Context, userID string, id int64, opts ...task.Option) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok || existing.UserID != userID {
		return nil, repo.ErrNotFound
	}

	for _, opt := range opts {
		opt(existing)
	}
	existing.UpdatedAt = time.Now()

	return clone(existing), nil
}

func (s *TaskStorage) Delete(ctx context.Context, userID string, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok || existing.UserID != userID {
		return repo.ErrNotFound
	}

	delete(s.storage, id)
	return nil
}

func (s *TaskStorage) ToggleComplete(ctx context.Context, userID string, id int64) (*task.Task, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[id]
	if !ok || existing.UserID != userID {
		return nil, repo.ErrNotFound
	}

	existing.Completed = !existing.Completed
	existing.UpdatedAt = time.Now()

	return clone(existing), nil
}
