package service

import (
	"context"
	"errors"
	"fmt"
	"todoApi/internal/logger"
	"todoApi/internal/models/task"
	repo "todoApi/internal/repository"
	"todoApi/internal/repository/inter"

	"go.uber.org/zap"
)

// Бизнес-слой: привязывает ошибки хранилища к бизнес-ошибкам,
// структурная валидация живёт в handlers.

type TaskService struct {
	repo inter.TaskRepository
}

func NewTaskService(repo inter.TaskRepository) TaskService {
	return TaskService{
		repo: repo,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	return s.repo.HealthCheck(ctx)
}

func (s *TaskService) CreateTask(ctx context.Context, userID, title string, description *string) (*task.Task, error) {
	t := &task.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("создание задачи: %w", err)
	}

	logger.Info("Service: Задача создана",
		zap.Int64("task_id", t.ID),
		zap.String("user_id", userID))
	return t, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID string, filter task.StatusFilter, sort task.SortOrder) ([]*task.Task, error) {
	tasks, err := s.repo.List(ctx, userID, filter, sort)
	if err != nil {
		return nil, fmt.Errorf("получение задач: %w", err)
	}

	return tasks, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, userID string, id int64) (*task.Task, error) {
	t, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("task_id", id))
			return nil, NewNotFound(id, err)
		}
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, userID string, id int64, opts ...task.Option) (*task.Task, error) {
	t, err := s.repo.Update(ctx, userID, id, opts...)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("task_id", id))
			return nil, NewNotFound(id, err)
		}
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}
	return t, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, userID string, id int64) error {
	err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("task_id", id))
			return NewNotFound(id, err)
		}
		return fmt.Errorf("удаление задачи: %w", err)
	}

	logger.Info("Service: Задача удалена",
		zap.Int64("task_id", id),
		zap.String("user_id", userID))
	return nil
}

func (s *TaskService) ToggleComplete(ctx context.Context, userID string, id int64) (*task.Task, error) {
	t, err := s.repo.ToggleComplete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("task_id", id))
			return nil, NewNotFound(id, err)
		}
		return nil, fmt.Errorf("переключение статуса: %w", err)
	}
	return t, nil
}
