// Package rest provides the HTTP API over the driver marketplaces.
// Every marketplace gets the same registration and lifecycle routes plus the
// routes of its own domain operations.
package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// Port validation errors.
var (
	ErrMissingModelMarketplace = errors.New("rest: model marketplace and catalogue are required")
	ErrMissingMCPMarketplace   = errors.New("rest: mcp marketplace and catalogue are required")
	ErrMissingCacheMarketplace = errors.New("rest: cache marketplace and catalogue are required")
	ErrMissingQueueMarketplace = errors.New("rest: queue marketplace and catalogue are required")
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse acknowledges a request that returns no data.
type MessageResponse struct {
	Message string `json:"message"`
}

// statusFor maps an error to an HTTP status.
// Anything not listed, including no active driver and driver failures,
// is the caller's problem.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDriverNotFound),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrCacheMiss):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrTaskNotFinished):
		return http.StatusConflict
	case errors.Is(err, domain.ErrQueueFull):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadRequest
	}
}

// fail aborts the request with the status for err.
func fail(c *gin.Context, err error) {
	failWith(c, statusFor(err), err)
}

func failWith(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}

// bind decodes the JSON body into req, failing the request on error.
func bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		failWith(c, http.StatusBadRequest, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err))
		return false
	}
	return true
}
