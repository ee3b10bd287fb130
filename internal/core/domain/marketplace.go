package domain

// MarketplaceKind identifies one of the driver marketplaces.
type MarketplaceKind string

// Available marketplaces.
const (
	// MarketplaceModel routes queries to language model drivers.
	MarketplaceModel MarketplaceKind = "models"

	// MarketplaceMCP routes tool and resource calls to MCP server drivers.
	MarketplaceMCP MarketplaceKind = "mcp_servers"

	// MarketplaceCache routes key/value operations to cache drivers.
	MarketplaceCache MarketplaceKind = "cache"

	// MarketplaceQueue routes task operations to queue drivers.
	MarketplaceQueue MarketplaceKind = "queue"
)

// MarketplaceKinds returns every marketplace in routing order.
func MarketplaceKinds() []MarketplaceKind {
	return []MarketplaceKind{MarketplaceModel, MarketplaceMCP, MarketplaceCache, MarketplaceQueue}
}

// IsValid returns true if the marketplace kind is recognised.
func (k MarketplaceKind) IsValid() bool {
	switch k {
	case MarketplaceModel, MarketplaceMCP, MarketplaceCache, MarketplaceQueue:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (k MarketplaceKind) String() string {
	return string(k)
}

// Description returns a human-readable description of the marketplace.
func (k MarketplaceKind) Description() string {
	switch k {
	case MarketplaceModel:
		return "Model"
	case MarketplaceMCP:
		return "MCP server"
	case MarketplaceCache:
		return "Cache"
	case MarketplaceQueue:
		return "Queue"
	default:
		return "Unknown"
	}
}
