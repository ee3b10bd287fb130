package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// MaxSleep caps the duration of the sleep task.
const MaxSleep = 5 * time.Minute

// DefaultHandlers returns the built-in task handlers.
//
//	echo   returns its args and kwargs unchanged
//	add    sums numeric args
//	sleep  waits kwargs["seconds"] (or args[0]) seconds
//	fail   always fails with kwargs["message"]
func DefaultHandlers() map[string]driven.TaskHandler {
	return map[string]driven.TaskHandler{
		"echo":  echoTask,
		"add":   addTask,
		"sleep": sleepTask,
		"fail":  failTask,
	}
}

func echoTask(_ context.Context, args []any, kwargs map[string]any) (any, error) {
	if args == nil {
		args = []any{}
	}
	if kwargs == nil {
		kwargs = map[string]any{}
	}
	return map[string]any{"args": args, "kwargs": kwargs}, nil
}

func addTask(_ context.Context, args []any, _ map[string]any) (any, error) {
	var sum float64
	for i, a := range args {
		n, err := toFloat(a)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		sum += n
	}
	return sum, nil
}

func sleepTask(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	raw, ok := kwargs["seconds"]
	if !ok && len(args) > 0 {
		raw, ok = args[0], true
	}
	if !ok {
		return nil, errors.New("sleep: seconds is required")
	}
	seconds, err := toFloat(raw)
	if err != nil {
		return nil, fmt.Errorf("sleep: %w", err)
	}

	d := time.Duration(seconds * float64(time.Second))
	if d < 0 || d > MaxSleep {
		return nil, fmt.Errorf("sleep: duration %s out of range", d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return seconds, nil
	}
}

func failTask(_ context.Context, _ []any, kwargs map[string]any) (any, error) {
	if msg, ok := kwargs["message"].(string); ok && msg != "" {
		return nil, errors.New(msg)
	}
	return nil, errors.New("task failed")
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}
