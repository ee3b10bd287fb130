package services

import (
	"context"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// Ensure QueueMarketplace implements the interface.
var _ driving.QueueMarketplace = (*QueueMarketplace)(nil)

// QueueMarketplace routes task operations to the active queue driver.
type QueueMarketplace struct {
	*Marketplace[driven.QueueDriver]
}

// NewQueueMarketplace creates an empty queue marketplace.
func NewQueueMarketplace() *QueueMarketplace {
	return &QueueMarketplace{
		Marketplace: NewMarketplace[driven.QueueDriver](domain.MarketplaceQueue),
	}
}

// EnqueueTask submits a task to the active queue and returns its ID.
func (m *QueueMarketplace) EnqueueTask(
	ctx context.Context, taskName string, args []any, kwargs map[string]any,
) (string, error) {
	return dispatch(m.Marketplace, func(d driven.QueueDriver) (string, error) {
		return d.Enqueue(ctx, taskName, args, kwargs)
	})
}

// GetTaskStatus reports the status of a task in the active queue.
func (m *QueueMarketplace) GetTaskStatus(ctx context.Context, taskID string) (*domain.TaskStatus, error) {
	return dispatch(m.Marketplace, func(d driven.QueueDriver) (*domain.TaskStatus, error) {
		return d.TaskStatus(ctx, taskID)
	})
}

// GetTaskResult returns the result of a task in the active queue.
func (m *QueueMarketplace) GetTaskResult(ctx context.Context, taskID string) (any, error) {
	return dispatch(m.Marketplace, func(d driven.QueueDriver) (any, error) {
		return d.TaskResult(ctx, taskID)
	})
}
