package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

func TestTaskStore_SaveAndGet(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()

	task := &domain.Task{ID: "t1", Name: "echo", State: domain.TaskPending, CreatedAt: time.Now()}
	require.NoError(t, store.Save(ctx, task))

	got, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "echo", got.Name)

	// Mutating the returned copy does not change the stored task.
	got.State = domain.TaskFailed
	again, err := store.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskPending, again.State)
}

func TestTaskStore_Get_NotFound(t *testing.T) {
	store := NewTaskStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTaskStore_Save_Invalid(t *testing.T) {
	store := NewTaskStore()

	assert.ErrorIs(t, store.Save(context.Background(), nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.Save(context.Background(), &domain.Task{}), domain.ErrInvalidInput)
}

func TestTaskStore_ListByState_OldestFirst(t *testing.T) {
	store := NewTaskStore()
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, store.Save(ctx, &domain.Task{ID: "b", State: domain.TaskPending, CreatedAt: base.Add(time.Second)}))
	require.NoError(t, store.Save(ctx, &domain.Task{ID: "a", State: domain.TaskPending, CreatedAt: base}))
	require.NoError(t, store.Save(ctx, &domain.Task{ID: "c", State: domain.TaskSucceeded, CreatedAt: base}))

	tasks, err := store.ListByState(ctx, domain.TaskPending)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
}
