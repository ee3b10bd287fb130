package rest

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
)

var errBackend = errors.New("backend unavailable")

// mockModel answers queries by echoing the input.
type mockModel struct {
	mu        sync.Mutex
	connected bool
	inputs    []string
	err       error
}

func (m *mockModel) Connect(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
	return nil
}

func (m *mockModel) Disconnect(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
	return nil
}

func (m *mockModel) isConnected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *mockModel) Query(_ context.Context, input string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return "", m.err
	}
	return "echo: " + input, nil
}

// mockMCP serves a fixed tool and resource.
type mockMCP struct {
	mu       sync.Mutex
	lastTool string
	lastArgs map[string]any
}

func (m *mockMCP) Connect(_ context.Context) error    { return nil }
func (m *mockMCP) Disconnect(_ context.Context) error { return nil }

func (m *mockMCP) Tools(_ context.Context) ([]domain.Tool, error) {
	return []domain.Tool{{Name: "search", Description: "Search files"}}, nil
}

func (m *mockMCP) Resources(_ context.Context) ([]domain.Resource, error) {
	return nil, nil
}

func (m *mockMCP) UseTool(_ context.Context, name string, args map[string]any) (*domain.ToolResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastTool = name
	m.lastArgs = args
	if name != "search" {
		return nil, errBackend
	}
	return &domain.ToolResult{
		Content: []domain.Content{{Type: domain.ContentText, Text: "2 matches"}},
	}, nil
}

func (m *mockMCP) AccessResource(_ context.Context, uri string) (*domain.ResourceContent, error) {
	return &domain.ResourceContent{URI: uri, MIMEType: "text/plain", Text: "hello"}, nil
}

// Compile-time checks.
var (
	_ driven.ModelDriver = (*mockModel)(nil)
	_ driven.MCPDriver   = (*mockMCP)(nil)
)
