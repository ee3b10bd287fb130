package mcpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

type echoInput struct {
	Text string `json:"text" jsonschema:"text to echo back"`
}

func newTestServer() *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "fixture", Version: "0.0.1"}, nil)

	mcp.AddTool(server, &mcp.Tool{Name: "echo", Description: "Echo text"},
		func(_ context.Context, _ *mcp.CallToolRequest, in echoInput) (*mcp.CallToolResult, any, error) {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: in.Text}},
			}, nil, nil
		})

	mcp.AddTool(server, &mcp.Tool{Name: "fail", Description: "Always fails"},
		func(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, any, error) {
			return nil, nil, errors.New("boom")
		})

	server.AddResource(&mcp.Resource{
		URI:         "mem://readme",
		Name:        "readme",
		Description: "Project readme",
		MIMEType:    "text/plain",
	}, func(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{URI: req.Params.URI, MIMEType: "text/plain", Text: "hello"}},
		}, nil
	})

	return server
}

func inMemory(server *mcp.Server) TransportFactory {
	return func() (mcp.Transport, error) {
		clientT, serverT := mcp.NewInMemoryTransports()
		if _, err := server.Connect(context.Background(), serverT, nil); err != nil {
			return nil, err
		}
		return clientT, nil
	}
}

func connected(t *testing.T) *Driver {
	t.Helper()
	d := NewWithTransport("fixture", inMemory(newTestServer()), 1, time.Millisecond)
	require.NoError(t, d.Connect(context.Background()))
	t.Cleanup(func() { _ = d.Disconnect(context.Background()) })
	return d
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown transport", Config{Transport: "websocket"}},
		{"stdio without command", Config{Transport: TransportStdio}},
		{"http without url", Config{Transport: TransportStreamableHTTP}},
		{"sse without url", Config{Transport: TransportSSE}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNew_ValidTransports(t *testing.T) {
	for _, cfg := range []Config{
		{Transport: TransportStdio, Command: "mcp-server-filesystem", Args: []string{"/tmp"}},
		{Transport: TransportStreamableHTTP, URL: "http://localhost:3000/mcp"},
		{Transport: TransportSSE, URL: "http://localhost:3000/sse"},
	} {
		d, err := New(cfg)
		require.NoError(t, err, cfg.Transport)
		assert.Equal(t, uint64(DefaultConnectRetries), d.retries)
	}
}

func TestDriver_NotConnected(t *testing.T) {
	d := NewWithTransport("fixture", inMemory(newTestServer()), 0, 0)
	ctx := context.Background()

	_, err := d.Tools(ctx)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	_, err = d.Resources(ctx)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	_, err = d.UseTool(ctx, "echo", nil)
	assert.ErrorIs(t, err, domain.ErrNotConnected)
	_, err = d.AccessResource(ctx, "mem://readme")
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	assert.NoError(t, d.Disconnect(ctx))
}

func TestDriver_Tools(t *testing.T) {
	d := connected(t)

	tools, err := d.Tools(context.Background())

	require.NoError(t, err)
	names := make([]string, 0, len(tools))
	for _, tool := range tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"echo", "fail"}, names)
	for _, tool := range tools {
		if tool.Name == "echo" {
			assert.Equal(t, "Echo text", tool.Description)
			assert.NotNil(t, tool.InputSchema)
		}
	}
}

func TestDriver_Resources(t *testing.T) {
	d := connected(t)

	resources, err := d.Resources(context.Background())

	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "mem://readme", resources[0].URI)
	assert.Equal(t, "readme", resources[0].Name)
	assert.Equal(t, "text/plain", resources[0].MIMEType)
}

func TestDriver_UseTool(t *testing.T) {
	d := connected(t)

	result, err := d.UseTool(context.Background(), "echo", map[string]any{"text": "ping"})

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "ping", result.Text())
}

func TestDriver_UseTool_ToolFailure(t *testing.T) {
	d := connected(t)

	result, err := d.UseTool(context.Background(), "fail", nil)

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestDriver_UseTool_UnknownTool(t *testing.T) {
	d := connected(t)

	_, err := d.UseTool(context.Background(), "missing", nil)

	assert.Error(t, err)
}

func TestDriver_AccessResource(t *testing.T) {
	d := connected(t)

	content, err := d.AccessResource(context.Background(), "mem://readme")

	require.NoError(t, err)
	assert.Equal(t, "mem://readme", content.URI)
	assert.Equal(t, "text/plain", content.MIMEType)
	assert.Equal(t, "hello", content.Text)
}

func TestDriver_ConnectIdempotent(t *testing.T) {
	var dials atomic.Int32
	server := newTestServer()
	base := inMemory(server)
	d := NewWithTransport("fixture", func() (mcp.Transport, error) {
		dials.Add(1)
		return base()
	}, 1, time.Millisecond)

	require.NoError(t, d.Connect(context.Background()))
	require.NoError(t, d.Connect(context.Background()))
	defer d.Disconnect(context.Background())

	assert.Equal(t, int32(1), dials.Load())
}

func TestDriver_ConnectRetries(t *testing.T) {
	var attempts atomic.Int32
	base := inMemory(newTestServer())
	d := NewWithTransport("flaky", func() (mcp.Transport, error) {
		if attempts.Add(1) < 3 {
			return nil, errors.New("server starting")
		}
		return base()
	}, 5, time.Millisecond)

	require.NoError(t, d.Connect(context.Background()))
	defer d.Disconnect(context.Background())

	assert.Equal(t, int32(3), attempts.Load())
}

func TestDriver_ConnectGivesUp(t *testing.T) {
	var attempts atomic.Int32
	d := NewWithTransport("down", func() (mcp.Transport, error) {
		attempts.Add(1)
		return nil, errors.New("connection refused")
	}, 2, time.Millisecond)

	err := d.Connect(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, int32(3), attempts.Load())
}

func TestDriver_DisconnectThenReconnect(t *testing.T) {
	d := NewWithTransport("fixture", inMemory(newTestServer()), 1, time.Millisecond)
	ctx := context.Background()

	require.NoError(t, d.Connect(ctx))
	require.NoError(t, d.Disconnect(ctx))

	_, err := d.Tools(ctx)
	assert.ErrorIs(t, err, domain.ErrNotConnected)

	require.NoError(t, d.Connect(ctx))
	defer d.Disconnect(ctx)
	_, err = d.Tools(ctx)
	assert.NoError(t, err)
}

func TestDriver_StreamableHTTP(t *testing.T) {
	server := newTestServer()
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server { return server }, nil)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	d, err := New(Config{Transport: TransportStreamableHTTP, URL: srv.URL, ConnectRetries: 1})
	require.NoError(t, err)
	require.NoError(t, d.Connect(context.Background()))
	defer d.Disconnect(context.Background())

	result, err := d.UseTool(context.Background(), "echo", map[string]any{"text": "over http"})
	require.NoError(t, err)
	assert.Equal(t, "over http", result.Text())
}

func TestHeaderTransport(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	client := &http.Client{Transport: &headerTransport{
		headers: map[string]string{"Authorization": "Bearer abc"},
		base:    http.DefaultTransport,
	}}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer abc", got)
}

func TestConvertContent(t *testing.T) {
	assert.Equal(t, domain.ContentText, convertContent(&mcp.TextContent{Text: "x"}).Type)
	img := convertContent(&mcp.ImageContent{MIMEType: "image/png", Data: []byte{1}})
	assert.Equal(t, domain.ContentImage, img.Type)
	assert.Equal(t, "image/png", img.MIMEType)
	link := convertContent(&mcp.ResourceLink{URI: "file:///a", Name: "a"})
	assert.Equal(t, domain.ContentResource, link.Type)
	assert.Equal(t, "file:///a", link.URI)
	embedded := convertContent(&mcp.EmbeddedResource{Resource: &mcp.ResourceContents{URI: "mem://x", Text: "t"}})
	assert.Equal(t, "t", embedded.Text)
}
