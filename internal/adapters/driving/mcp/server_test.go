package mcp

import (
	"context"
	"net"
	"sort"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/core/services"
)

func TestNewServer(t *testing.T) {
	t.Run("nil model marketplace returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingModelMarketplace)
	})

	t.Run("models only creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Models: services.NewModelMarketplace()})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("nil model marketplace returns error", func(t *testing.T) {
		assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingModelMarketplace)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports, _ := newPorts(t)
		assert.NoError(t, ports.Validate())
	})
}

// connect starts a client session against server over in-memory transports.
func connect(t *testing.T, server *Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func toolNames(t *testing.T, session *mcp.ClientSession) []string {
	t.Helper()
	res, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	return names
}

func TestServer_ListsToolsForServedMarketplaces(t *testing.T) {
	t.Run("models only", func(t *testing.T) {
		server, err := NewServer(&Ports{Models: services.NewModelMarketplace()})
		require.NoError(t, err)

		assert.Equal(t, []string{"query_model"}, toolNames(t, connect(t, server)))
	})

	t.Run("every marketplace", func(t *testing.T) {
		ports, _ := newPorts(t)
		server, err := NewServer(ports)
		require.NoError(t, err)

		assert.Equal(t, []string{
			"cache_get", "cache_set", "call_upstream_tool",
			"enqueue_task", "query_model", "task_result", "task_status",
		}, toolNames(t, connect(t, server)))
	})
}

func TestServer_CallToolOverSession(t *testing.T) {
	ctx := context.Background()
	ports, model := newPorts(t)
	server, err := NewServer(ports)
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "query_model",
		Arguments: map[string]any{"input": "life"},
	})
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, map[string]any{"output": "answer to life"}, res.StructuredContent)

	model.err = errModel
	res, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "query_model",
		Arguments: map[string]any{"input": "life"},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, errModel.Error())
}

func TestServer_ReadResourceOverSession(t *testing.T) {
	ports, _ := newPorts(t)
	server, err := NewServer(ports)
	require.NoError(t, err)
	session := connect(t, server)

	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{
		URI: "zicoder://marketplaces/cache",
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.JSONEq(t, `{"marketplace":"cache","drivers":["mem"],"active":"mem"}`, res.Contents[0].Text)
}

func TestServer_ServeHTTP(t *testing.T) {
	server, err := NewServer(&Ports{Models: services.NewModelMarketplace()})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ServeHTTP(ctx, ln) }()

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: "http://" + ln.Addr().String()}, nil)
	require.NoError(t, err)

	res, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, res.Tools, 1)
	assert.Equal(t, "query_model", res.Tools[0].Name)
	require.NoError(t, session.Close())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not shut down")
	}
}
