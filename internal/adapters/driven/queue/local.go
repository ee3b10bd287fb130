// Package queue provides a task queue driver that runs tasks in-process
// on a pool of workers. Tasks are persisted through a driven.TaskStore, so
// a durable store lets pending work survive a restart.
package queue

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// Ensure Driver implements the interface.
var _ driven.QueueDriver = (*Driver)(nil)

// Default configuration values.
const (
	DefaultWorkers     = 4
	DefaultBufferSize  = 256
	DefaultTaskTimeout = 10 * time.Minute
)

// StoreOpener opens the task store on Connect. The driver closes it on Disconnect.
type StoreOpener func() (driven.TaskStore, error)

// Config holds configuration for the local queue driver.
type Config struct {
	// Workers is the number of concurrent task runners (default: 4).
	Workers int

	// BufferSize bounds the number of queued task IDs (default: 256).
	BufferSize int

	// TaskTimeout bounds a single task run (default: 10m).
	TaskTimeout time.Duration

	// OpenStore opens the task store. Nil keeps tasks in memory.
	OpenStore StoreOpener

	// Handlers maps task names to handlers. Nil selects DefaultHandlers.
	Handlers map[string]driven.TaskHandler
}

// Driver is an in-process task queue driver.
type Driver struct {
	cfg      Config
	handlers map[string]driven.TaskHandler
	now      func() time.Time

	mu     sync.RWMutex
	store  driven.TaskStore
	jobs   chan string
	quit   chan struct{}
	cancel context.CancelFunc
	eg     *errgroup.Group
}

// New creates a local queue driver. The driver is not connected.
func New(cfg Config) *Driver {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.TaskTimeout <= 0 {
		cfg.TaskTimeout = DefaultTaskTimeout
	}
	if cfg.OpenStore == nil {
		store := memory.NewTaskStore()
		cfg.OpenStore = func() (driven.TaskStore, error) { return store, nil }
	}
	if cfg.Handlers == nil {
		cfg.Handlers = DefaultHandlers()
	}
	return &Driver{cfg: cfg, handlers: cfg.Handlers, now: time.Now}
}

// TaskNames returns the names of the registered handlers in sorted order.
func (d *Driver) TaskNames() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connect opens the store, starts the workers and re-queues tasks left
// pending or running by a previous connection.
func (d *Driver) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.store != nil {
		return nil
	}

	store, err := d.cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("queue: open store: %w", err)
	}

	recovered, err := d.recoverable(ctx, store)
	if err != nil {
		_ = store.Close()
		return err
	}

	// Workers outlive the request that connected the driver.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	eg, runCtx := errgroup.WithContext(runCtx)

	d.store = store
	d.jobs = make(chan string, d.cfg.BufferSize)
	d.quit = make(chan struct{})
	d.cancel = cancel
	d.eg = eg

	jobs, quit := d.jobs, d.quit
	for i := 0; i < d.cfg.Workers; i++ {
		eg.Go(func() error {
			d.work(runCtx, store, jobs, quit)
			return nil
		})
	}

	if len(recovered) > 0 {
		logger.Info("queue: re-queueing %d unfinished task(s)", len(recovered))
		eg.Go(func() error {
			for _, id := range recovered {
				select {
				case jobs <- id:
				case <-quit:
					return nil
				}
			}
			return nil
		})
	}

	logger.Debug("queue: started %d worker(s)", d.cfg.Workers)
	return nil
}

// recoverable resets interrupted tasks to pending and returns every
// pending task ID, oldest first.
func (d *Driver) recoverable(ctx context.Context, store driven.TaskStore) ([]string, error) {
	running, err := store.ListByState(ctx, domain.TaskRunning)
	if err != nil {
		return nil, fmt.Errorf("queue: list running tasks: %w", err)
	}
	for i := range running {
		running[i].State = domain.TaskPending
		running[i].StartedAt = time.Time{}
		if err := store.Save(ctx, &running[i]); err != nil {
			return nil, fmt.Errorf("queue: reset task %s: %w", running[i].ID, err)
		}
	}

	pending, err := store.ListByState(ctx, domain.TaskPending)
	if err != nil {
		return nil, fmt.Errorf("queue: list pending tasks: %w", err)
	}
	ids := make([]string, 0, len(pending))
	for _, t := range pending {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// Disconnect stops the workers. Running tasks get until ctx is done to
// finish; after that they are cancelled and left pending.
func (d *Driver) Disconnect(ctx context.Context) error {
	d.mu.Lock()
	store, quit, cancel, eg := d.store, d.quit, d.cancel, d.eg
	d.store, d.jobs, d.quit, d.cancel, d.eg = nil, nil, nil, nil, nil
	d.mu.Unlock()

	if store == nil {
		return nil
	}

	close(quit)
	done := make(chan struct{})
	go func() {
		_ = eg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		cancel()
		<-done
	}
	cancel()

	if err := store.Close(); err != nil {
		return fmt.Errorf("queue: close store: %w", err)
	}
	logger.Debug("queue: stopped")
	return nil
}

// Enqueue stores a pending task and hands it to the workers.
func (d *Driver) Enqueue(ctx context.Context, taskName string, args []any, kwargs map[string]any) (string, error) {
	if _, ok := d.handlers[taskName]; !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTask, taskName)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.store == nil {
		return "", domain.ErrNotConnected
	}

	task := &domain.Task{
		ID:        uuid.NewString(),
		Name:      taskName,
		Args:      args,
		Kwargs:    kwargs,
		State:     domain.TaskPending,
		CreatedAt: d.now(),
	}
	if err := d.store.Save(ctx, task); err != nil {
		return "", fmt.Errorf("queue: save task: %w", err)
	}

	select {
	case d.jobs <- task.ID:
	default:
		task.State = domain.TaskFailed
		task.Error = domain.ErrQueueFull.Error()
		task.FinishedAt = d.now()
		_ = d.store.Save(ctx, task)
		return "", domain.ErrQueueFull
	}

	logger.Debug("queue: enqueued %s (%s)", task.ID, taskName)
	return task.ID, nil
}

// TaskStatus reports the status of a task.
func (d *Driver) TaskStatus(ctx context.Context, taskID string) (*domain.TaskStatus, error) {
	task, err := d.get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return task.Status(), nil
}

// TaskResult returns the result of a finished task. A failed task
// yields its error message as an error.
func (d *Driver) TaskResult(ctx context.Context, taskID string) (any, error) {
	task, err := d.get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	switch task.State {
	case domain.TaskSucceeded:
		return task.Result, nil
	case domain.TaskFailed:
		return nil, &TaskError{TaskID: task.ID, Message: task.Error}
	default:
		return nil, domain.ErrTaskNotFinished
	}
}

func (d *Driver) get(ctx context.Context, taskID string) (*domain.Task, error) {
	d.mu.RLock()
	store := d.store
	d.mu.RUnlock()
	if store == nil {
		return nil, domain.ErrNotConnected
	}
	return store.Get(ctx, taskID)
}

func (d *Driver) work(ctx context.Context, store driven.TaskStore, jobs <-chan string, quit <-chan struct{}) {
	for {
		select {
		case <-quit:
			return
		case <-ctx.Done():
			return
		case id := <-jobs:
			d.run(ctx, store, id)
		}
	}
}

func (d *Driver) run(ctx context.Context, store driven.TaskStore, id string) {
	// Store writes must land even while the run context is being cancelled.
	saveCtx := context.WithoutCancel(ctx)

	task, err := store.Get(saveCtx, id)
	if err != nil {
		logger.Warn("queue: load task %s: %v", id, err)
		return
	}
	if task.State != domain.TaskPending {
		return
	}

	task.State = domain.TaskRunning
	task.StartedAt = d.now()
	if err := store.Save(saveCtx, task); err != nil {
		logger.Warn("queue: save task %s: %v", id, err)
		return
	}

	handler, ok := d.handlers[task.Name]
	var result any
	if ok {
		taskCtx, cancel := context.WithTimeout(ctx, d.cfg.TaskTimeout)
		result, err = handler(taskCtx, task.Args, task.Kwargs)
		cancel()
	} else {
		err = fmt.Errorf("%w: %s", domain.ErrUnknownTask, task.Name)
	}

	switch {
	case err != nil && ctx.Err() != nil:
		// Shutdown interrupted the task; leave it for the next connection.
		task.State = domain.TaskPending
		task.StartedAt = time.Time{}
	case err != nil:
		task.State = domain.TaskFailed
		task.Error = err.Error()
		task.FinishedAt = d.now()
	default:
		task.State = domain.TaskSucceeded
		task.Result = result
		task.FinishedAt = d.now()
	}

	if err := store.Save(saveCtx, task); err != nil {
		logger.Warn("queue: save task %s: %v", id, err)
		return
	}
	logger.Debug("queue: task %s %s", id, task.State)
}

// TaskError is returned by TaskResult for a task whose handler failed.
// It matches domain.ErrTaskFailed.
type TaskError struct {
	TaskID  string
	Message string
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s failed: %s", e.TaskID, e.Message)
}

func (e *TaskError) Unwrap() error {
	return domain.ErrTaskFailed
}
