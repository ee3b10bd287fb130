package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// recordingDriver implements every driver contract and records each call.
type recordingDriver struct {
	mu    sync.Mutex
	calls []string
	args  [][]any

	err        error
	answer     string
	taskID     string
	result     any
	status     *domain.TaskStatus
	tools      []domain.Tool
	resources  []domain.Resource
	toolResult *domain.ToolResult
	content    *domain.ResourceContent
	value      any
	found      bool
}

func newRecordingDriver() *recordingDriver {
	return &recordingDriver{}
}

func (d *recordingDriver) record(name string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, name)
	d.args = append(d.args, args)
}

func (d *recordingDriver) callCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func (d *recordingDriver) count(name string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (d *recordingDriver) lastArgs() []any {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.args) == 0 {
		return nil
	}
	return d.args[len(d.args)-1]
}

func (d *recordingDriver) Connect(_ context.Context) error {
	d.record("Connect")
	return d.err
}

func (d *recordingDriver) Disconnect(_ context.Context) error {
	d.record("Disconnect")
	return d.err
}

func (d *recordingDriver) Query(_ context.Context, input string) (string, error) {
	d.record("Query", input)
	return d.answer, d.err
}

func (d *recordingDriver) Tools(_ context.Context) ([]domain.Tool, error) {
	d.record("Tools")
	return d.tools, d.err
}

func (d *recordingDriver) Resources(_ context.Context) ([]domain.Resource, error) {
	d.record("Resources")
	return d.resources, d.err
}

func (d *recordingDriver) UseTool(_ context.Context, name string, args map[string]any) (*domain.ToolResult, error) {
	d.record("UseTool", name, args)
	return d.toolResult, d.err
}

func (d *recordingDriver) AccessResource(_ context.Context, uri string) (*domain.ResourceContent, error) {
	d.record("AccessResource", uri)
	return d.content, d.err
}

func (d *recordingDriver) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	d.record("Set", key, value, ttl)
	return d.err
}

func (d *recordingDriver) Get(_ context.Context, key string) (any, bool, error) {
	d.record("Get", key)
	return d.value, d.found, d.err
}

func (d *recordingDriver) Delete(_ context.Context, key string) error {
	d.record("Delete", key)
	return d.err
}

func (d *recordingDriver) Clear(_ context.Context) error {
	d.record("Clear")
	return d.err
}

func (d *recordingDriver) Enqueue(_ context.Context, taskName string, args []any, kwargs map[string]any) (string, error) {
	d.record("Enqueue", taskName, args, kwargs)
	return d.taskID, d.err
}

func (d *recordingDriver) TaskStatus(_ context.Context, taskID string) (*domain.TaskStatus, error) {
	d.record("TaskStatus", taskID)
	return d.status, d.err
}

func (d *recordingDriver) TaskResult(_ context.Context, taskID string) (any, error) {
	d.record("TaskResult", taskID)
	return d.result, d.err
}
