package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for zicoder resources.
	uriScheme = "zicoder://"
)

// marketplaceInfo is the JSON shape of a marketplace resource.
type marketplaceInfo struct {
	Marketplace string   `json:"marketplace"`
	Drivers     []string `json:"drivers"`
	Active      string   `json:"active,omitempty"`
}

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource describing every marketplace.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "marketplaces",
		Name:        "marketplaces",
		Description: "Registered and active drivers of every marketplace",
		MIMEType:    "application/json",
	}, s.handleMarketplacesResource)

	// Template for a single marketplace.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "marketplaces/{kind}",
		Name:        "marketplace",
		Description: "Registered and active drivers of one marketplace",
		MIMEType:    "application/json",
	}, s.handleMarketplaceResource)
}

// marketplaceState describes the marketplace of the given kind, if served.
func (s *Server) marketplaceState(kind domain.MarketplaceKind) (marketplaceInfo, bool) {
	type state interface {
		Names() []string
		ActiveName() (string, bool)
	}

	var m state
	switch kind {
	case domain.MarketplaceModel:
		m = s.ports.Models
	case domain.MarketplaceMCP:
		if s.ports.MCPServers != nil {
			m = s.ports.MCPServers
		}
	case domain.MarketplaceCache:
		if s.ports.Cache != nil {
			m = s.ports.Cache
		}
	case domain.MarketplaceQueue:
		if s.ports.Queue != nil {
			m = s.ports.Queue
		}
	}
	if m == nil {
		return marketplaceInfo{}, false
	}

	info := marketplaceInfo{Marketplace: kind.String(), Drivers: m.Names()}
	if name, ok := m.ActiveName(); ok {
		info.Active = name
	}
	return info, true
}

// handleMarketplacesResource lists every served marketplace.
func (s *Server) handleMarketplacesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	infos := make([]marketplaceInfo, 0, 4)
	for _, kind := range domain.MarketplaceKinds() {
		if info, ok := s.marketplaceState(kind); ok {
			infos = append(infos, info)
		}
	}
	return jsonResource(req.Params.URI, infos)
}

// handleMarketplaceResource describes the marketplace named in the URI.
func (s *Server) handleMarketplaceResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	kind := domain.MarketplaceKind(extractMarketplaceKind(req.Params.URI))
	if !kind.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	info, ok := s.marketplaceState(kind)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractMarketplaceKind extracts the kind from a URI like zicoder://marketplaces/{kind}.
func extractMarketplaceKind(uri string) string {
	const prefix = uriScheme + "marketplaces/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	kind := strings.TrimPrefix(uri, prefix)
	if strings.Contains(kind, "/") {
		return ""
	}
	return kind
}
