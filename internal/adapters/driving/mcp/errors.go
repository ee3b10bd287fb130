// Package mcp provides an MCP (Model Context Protocol) server adapter for zicoder.
// It lets AI assistants query the active model and use the active cache and
// queue drivers as MCP tools.
package mcp

import "errors"

// ErrMissingModelMarketplace is returned when the model marketplace is not provided.
var ErrMissingModelMarketplace = errors.New("mcp: model marketplace is required")
