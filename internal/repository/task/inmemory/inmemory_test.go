package inmemory_test

import (
	"context"
	"sort"
	"testing"
	"todoApi/internal/models/task"
	repo "todoApi/internal/repository"
	"todoApi/internal/repository/task/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func create(t *testing.T, s *inmemory.TaskStorage, userID, title string) *task.Task {
	t.Helper()
	newTask := &task.Task{UserID: userID, Title: title}
	require.NoError(t, s.Create(context.Background(), newTask))
	return newTask
}

func TestTaskStorage_CreateAndGet(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	created := &task.Task{
		UserID:      "user-1",
		Title:       "Buy milk",
		Description: strPtr("2 liters"),
	}
	require.NoError(t, s.Create(ctx, created))

	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.Completed)
	assert.False(t, created.CreatedAt.IsZero())
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	got, err := s.GetByID(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "2 liters", *got.Description)
}

func TestTaskStorage_IDsNeverReused(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	first := create(t, s, "user-1", "First")
	require.NoError(t, s.Delete(ctx, "user-1", first.ID))

	second := create(t, s, "user-1", "Second")
	assert.Greater(t, second.ID, first.ID)
}

// TestTaskStorage_Ownership: задачи другого пользователя не видны и
// неотличимы от несуществующих
func TestTaskStorage_Ownership(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	owned := create(t, s, "user-a", "A's task")

	_, err := s.GetByID(ctx, "user-b", owned.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.Update(ctx, "user-b", owned.ID, task.WithTitle("hijack"))
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = s.Delete(ctx, "user-b", owned.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	_, err = s.ToggleComplete(ctx, "user-b", owned.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	list, err := s.List(ctx, "user-b", task.FilterAll, task.SortCreated)
	require.NoError(t, err)
	assert.Empty(t, list)

	// у владельца всё на месте и без изменений
	got, err := s.GetByID(ctx, "user-a", owned.ID)
	require.NoError(t, err)
	assert.Equal(t, "A's task", got.Title)
}

func TestTaskStorage_Update_PartialFields(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	created := &task.Task{
		UserID:      "user-1",
		Title:       "Original",
		Description: strPtr("Keep me"),
	}
	require.NoError(t, s.Create(ctx, created))

	updated, err := s.Update(ctx, "user-1", created.ID, task.WithTitle("Renamed"))
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "Keep me", *updated.Description)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// явная очистка описания
	cleared, err := s.Update(ctx, "user-1", created.ID, task.WithDescription(nil))
	require.NoError(t, err)
	assert.Nil(t, cleared.Description)
	assert.Equal(t, "Renamed", cleared.Title)
}

func TestTaskStorage_ToggleComplete_Involution(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	created := create(t, s, "user-1", "Toggle me")

	once, err := s.ToggleComplete(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.True(t, once.Completed)
	assert.True(t, once.UpdatedAt.After(created.UpdatedAt))

	twice, err := s.ToggleComplete(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.False(t, twice.Completed)
}

func TestTaskStorage_Delete(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	created := create(t, s, "user-1", "Delete me")

	require.NoError(t, s.Delete(ctx, "user-1", created.ID))

	_, err := s.GetByID(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)

	err = s.Delete(ctx, "user-1", created.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestTaskStorage_List_FilterPartition(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	create(t, s, "user-1", "Pending 1")
	done := create(t, s, "user-1", "Done 1")
	create(t, s, "user-1", "Pending 2")

	_, err := s.ToggleComplete(ctx, "user-1", done.ID)
	require.NoError(t, err)

	all, err := s.List(ctx, "user-1", task.FilterAll, task.SortCreated)
	require.NoError(t, err)
	pending, err := s.List(ctx, "user-1", task.FilterPending, task.SortCreated)
	require.NoError(t, err)
	completed, err := s.List(ctx, "user-1", task.FilterCompleted, task.SortCreated)
	require.NoError(t, err)

	// pending и completed не пересекаются и вместе дают all
	assert.Len(t, all, 3)
	assert.Len(t, pending, 2)
	assert.Len(t, completed, 1)

	seen := map[int64]bool{}
	for _, tk := range pending {
		assert.False(t, tk.Completed)
		seen[tk.ID] = true
	}
	for _, tk := range completed {
		assert.True(t, tk.Completed)
		assert.False(t, seen[tk.ID])
		seen[tk.ID] = true
	}
	assert.Len(t, seen, len(all))
}

func TestTaskStorage_List_Sorting(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	create(t, s, "user-1", "banana")
	create(t, s, "user-1", "apple")
	create(t, s, "user-1", "cherry")

	byTitle, err := s.List(ctx, "user-1", task.FilterAll, task.SortTitle)
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(byTitle, func(i, j int) bool {
		return byTitle[i].Title < byTitle[j].Title
	}))

	byCreated, err := s.List(ctx, "user-1", task.FilterAll, task.SortCreated)
	require.NoError(t, err)
	for i := 1; i < len(byCreated); i++ {
		assert.False(t, byCreated[i-1].CreatedAt.Before(byCreated[i].CreatedAt))
	}
}

func TestTaskStorage_ReturnsCopies(t *testing.T) {
	s := inmemory.NewTaskStorage()
	ctx := context.Background()

	created := create(t, s, "user-1", "Original")

	got, err := s.GetByID(ctx, "user-1", created.ID)
	require.NoError(t, err)
	got.Title = "Mutated outside"

	again, err := s.GetByID(ctx, "user-1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Title)
}
