package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

// Marketplace is the registry and single-active-driver dispatcher for one domain.
type Marketplace[D driven.Driver] interface {
	// Kind identifies the marketplace.
	Kind() domain.MarketplaceKind

	// Register constructs a driver with factory and stores it under name,
	// replacing any driver previously registered under that name.
	Register(name string, factory driven.Factory[D])

	// SetActive routes subsequent operations to the named driver.
	// Returns domain.ErrDriverNotFound and leaves state unchanged if name is unknown.
	SetActive(name string) error

	// ActiveName returns the active driver name, if any.
	ActiveName() (string, bool)

	// Names returns the registered driver names in sorted order.
	Names() []string

	// Connect connects the active driver.
	Connect(ctx context.Context) error

	// Disconnect disconnects the active driver.
	Disconnect(ctx context.Context) error
}

// ModelMarketplace routes queries to the active model driver.
type ModelMarketplace interface {
	Marketplace[driven.ModelDriver]

	Query(ctx context.Context, input string) (string, error)
}

// MCPServerMarketplace routes tool and resource calls to the active MCP driver.
type MCPServerMarketplace interface {
	Marketplace[driven.MCPDriver]

	Tools(ctx context.Context) ([]domain.Tool, error)
	Resources(ctx context.Context) ([]domain.Resource, error)
	UseTool(ctx context.Context, name string, args map[string]any) (*domain.ToolResult, error)
	AccessResource(ctx context.Context, uri string) (*domain.ResourceContent, error)
}

// CacheMarketplace routes key/value operations to the active cache driver.
type CacheMarketplace interface {
	Marketplace[driven.CacheDriver]

	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (any, bool, error)
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

// QueueMarketplace routes task operations to the active queue driver.
type QueueMarketplace interface {
	Marketplace[driven.QueueDriver]

	EnqueueTask(ctx context.Context, taskName string, args []any, kwargs map[string]any) (string, error)
	GetTaskStatus(ctx context.Context, taskID string) (*domain.TaskStatus, error)
	GetTaskResult(ctx context.Context, taskID string) (any, error)
}

// DriverCatalogue builds drivers of a marketplace from a kind name and config.
type DriverCatalogue[D driven.Driver] interface {
	// Build constructs a driver of the given kind.
	// Returns domain.ErrUnknownDriverKind if no builder is registered for kind.
	Build(kind string, cfg map[string]any) (D, error)

	// Kinds returns the registered kinds in sorted order.
	Kinds() []string
}
