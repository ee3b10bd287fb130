package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Marketplace Errors.

	// ErrNoActiveDriver indicates an operation needed a driver but none is active.
	// The marketplace returns it without touching any registered driver.
	ErrNoActiveDriver = errors.New("no active driver")

	// ErrDriverNotFound indicates no driver is registered under the requested name.
	ErrDriverNotFound = errors.New("driver not found")

	// ErrUnknownDriverKind indicates the catalogue has no builder for a driver kind.
	ErrUnknownDriverKind = errors.New("unknown driver kind")

	// Driver Errors.

	// ErrNotConnected indicates a driver operation was attempted before Connect.
	ErrNotConnected = errors.New("driver not connected")

	// ErrCacheMiss indicates the cache holds no value for a key.
	ErrCacheMiss = errors.New("cache miss")

	// Queue Errors.

	// ErrUnknownTask indicates no handler exists for a task name.
	ErrUnknownTask = errors.New("unknown task")

	// ErrTaskNotFinished indicates a task result was requested before completion.
	ErrTaskNotFinished = errors.New("task not finished")

	// ErrTaskFailed indicates a task result was requested for a task whose handler failed.
	ErrTaskFailed = errors.New("task failed")

	// ErrQueueFull indicates the queue rejected a task because its buffer is full.
	ErrQueueFull = errors.New("queue full")
)
