package driven

import (
	"context"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// QueueDriver submits tasks to a worker queue system.
type QueueDriver interface {
	Driver

	// Enqueue submits a task and returns its identifier.
	Enqueue(ctx context.Context, taskName string, args []any, kwargs map[string]any) (string, error)

	// TaskStatus reports the status of a task.
	// Returns domain.ErrNotFound if the task is unknown.
	TaskStatus(ctx context.Context, taskID string) (*domain.TaskStatus, error)

	// TaskResult returns the result of a completed task.
	// Returns domain.ErrTaskNotFinished while the task is pending or running.
	TaskResult(ctx context.Context, taskID string) (any, error)
}

// TaskHandler runs a named task.
type TaskHandler func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// TaskStore persists tasks for queue drivers.
type TaskStore interface {
	// Save stores or updates a task.
	Save(ctx context.Context, task *domain.Task) error

	// Get retrieves a task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	Get(ctx context.Context, taskID string) (*domain.Task, error)

	// ListByState returns tasks in the given state, oldest first.
	ListByState(ctx context.Context, state domain.TaskState) ([]domain.Task, error)

	// Close releases resources.
	Close() error
}
