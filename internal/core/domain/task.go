package domain

import "time"

// TaskState is the lifecycle state of a queued task.
type TaskState string

// Task states.
const (
	// TaskPending means the task is stored and waiting for a worker.
	TaskPending TaskState = "pending"

	// TaskRunning means a worker picked the task up.
	TaskRunning TaskState = "running"

	// TaskSucceeded means the handler returned a result.
	TaskSucceeded TaskState = "succeeded"

	// TaskFailed means the handler returned an error or no handler exists.
	TaskFailed TaskState = "failed"
)

// IsTerminal returns true once the task will not change state again.
func (s TaskState) IsTerminal() bool {
	return s == TaskSucceeded || s == TaskFailed
}

// String returns the string representation.
func (s TaskState) String() string {
	return string(s)
}

// Task is a unit of work submitted to a queue driver.
type Task struct {
	// ID is the unique identifier returned by Enqueue.
	ID string

	// Name selects the handler that runs the task.
	Name string

	// Args are the positional arguments.
	Args []any

	// Kwargs are the keyword arguments.
	Kwargs map[string]any

	// State is the current lifecycle state.
	State TaskState

	// Result holds the handler output once the task succeeded.
	Result any

	// Error contains the error message if the task failed.
	Error string

	CreatedAt  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// Status returns the externally visible status of the task.
func (t *Task) Status() *TaskStatus {
	return &TaskStatus{
		ID:         t.ID,
		Name:       t.Name,
		State:      t.State,
		Error:      t.Error,
		CreatedAt:  t.CreatedAt,
		StartedAt:  t.StartedAt,
		FinishedAt: t.FinishedAt,
	}
}

// TaskStatus is the status information reported for a task.
type TaskStatus struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	State      TaskState `json:"state"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	StartedAt  time.Time `json:"started_at,omitzero"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}
