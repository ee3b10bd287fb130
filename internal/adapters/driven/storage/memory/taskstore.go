package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory implementation of driven.TaskStore.
// Tasks are copied on the way in and out.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
}

// NewTaskStore creates a new in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[string]domain.Task),
	}
}

// Save stores or updates a task.
func (s *TaskStore) Save(_ context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[task.ID] = *task
	return nil
}

// Get retrieves a task by ID.
func (s *TaskStore) Get(_ context.Context, taskID string) (*domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[taskID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &task, nil
}

// ListByState returns tasks in the given state, oldest first.
func (s *TaskStore) ListByState(_ context.Context, state domain.TaskState) ([]domain.Task, error) {
	s.mu.RLock()
	var tasks []domain.Task
	for _, task := range s.tasks {
		if task.State == state {
			tasks = append(tasks, task)
		}
	}
	s.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// Close is a no-op; tasks survive until the process exits.
func (s *TaskStore) Close() error {
	return nil
}
