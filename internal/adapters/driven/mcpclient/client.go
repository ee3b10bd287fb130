// Package mcpclient provides an MCP server driver built on the official
// Model Context Protocol SDK. One driver holds one client session.
package mcpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sethvargo/go-retry"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// Ensure Driver implements the interface.
var _ driven.MCPDriver = (*Driver)(nil)

// Supported transports.
const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable-http"
	TransportSSE            = "sse"
)

// Default configuration values.
const (
	DefaultConnectRetries = 3
	DefaultRetryBackoff   = 500 * time.Millisecond
	DefaultHTTPTimeout    = 60 * time.Second
)

// Client identity sent during initialisation.
var implementation = &mcp.Implementation{
	Name:    "zicoder",
	Version: "1.0.0",
}

// ErrInvalidConfig indicates the transport configuration is incomplete.
var ErrInvalidConfig = errors.New("mcp: invalid configuration")

// TransportFactory creates a fresh transport for each connection attempt.
type TransportFactory func() (mcp.Transport, error)

// Config holds configuration for an MCP server driver.
type Config struct {
	// Transport is one of stdio, streamable-http or sse.
	Transport string

	// Command and Args launch the server for the stdio transport.
	Command string
	Args    []string

	// Env is appended to the current environment for stdio servers.
	Env []string

	// URL is the server endpoint for the HTTP transports.
	URL string

	// Headers are sent with every HTTP request.
	Headers map[string]string

	// ConnectRetries is the number of retries after a failed connect (default: 3).
	ConnectRetries int

	// RetryBackoff is the base Fibonacci backoff between retries (default: 500ms).
	RetryBackoff time.Duration
}

// Driver is an MCP server driver.
type Driver struct {
	client       *mcp.Client
	newTransport TransportFactory
	label        string
	retries      uint64
	backoff      time.Duration

	mu      sync.RWMutex
	session *mcp.ClientSession
}

// New creates a driver from cfg. The driver is not connected.
func New(cfg Config) (*Driver, error) {
	factory, label, err := transportFor(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithTransport(label, factory, cfg.ConnectRetries, cfg.RetryBackoff), nil
}

// NewWithTransport creates a driver that connects through factory.
// Zero retries and backoff select the defaults.
func NewWithTransport(label string, factory TransportFactory, retries int, backoff time.Duration) *Driver {
	if retries <= 0 {
		retries = DefaultConnectRetries
	}
	if backoff <= 0 {
		backoff = DefaultRetryBackoff
	}
	return &Driver{
		client:       mcp.NewClient(implementation, nil),
		newTransport: factory,
		label:        label,
		retries:      uint64(retries),
		backoff:      backoff,
	}
}

func transportFor(cfg Config) (TransportFactory, string, error) {
	switch cfg.Transport {
	case TransportStdio:
		if cfg.Command == "" {
			return nil, "", fmt.Errorf("%w: stdio transport requires command", ErrInvalidConfig)
		}
		return func() (mcp.Transport, error) {
			cmd := exec.Command(cfg.Command, cfg.Args...)
			if len(cfg.Env) > 0 {
				cmd.Env = append(os.Environ(), cfg.Env...)
			}
			return &mcp.CommandTransport{Command: cmd}, nil
		}, cfg.Command, nil

	case TransportStreamableHTTP, TransportSSE:
		if cfg.URL == "" {
			return nil, "", fmt.Errorf("%w: %s transport requires url", ErrInvalidConfig, cfg.Transport)
		}
		httpClient := &http.Client{
			Timeout:   DefaultHTTPTimeout,
			Transport: &headerTransport{headers: cfg.Headers, base: http.DefaultTransport},
		}
		if cfg.Transport == TransportSSE {
			// SSE streams stay open for the lifetime of the session.
			httpClient.Timeout = 0
			return func() (mcp.Transport, error) {
				return &mcp.SSEClientTransport{Endpoint: cfg.URL, HTTPClient: httpClient}, nil
			}, cfg.URL, nil
		}
		return func() (mcp.Transport, error) {
			return &mcp.StreamableClientTransport{Endpoint: cfg.URL, HTTPClient: httpClient}, nil
		}, cfg.URL, nil

	default:
		return nil, "", fmt.Errorf("%w: unknown transport %q", ErrInvalidConfig, cfg.Transport)
	}
}

// headerTransport adds static headers to outgoing requests.
type headerTransport struct {
	headers map[string]string
	base    http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.headers) == 0 {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}
	return t.base.RoundTrip(req)
}

// Connect opens a session with the server, retrying with Fibonacci backoff.
// Connecting an already connected driver is a no-op.
func (d *Driver) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session != nil {
		return nil
	}

	b := retry.WithMaxRetries(d.retries, retry.NewFibonacci(d.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		transport, err := d.newTransport()
		if err != nil {
			return retry.RetryableError(err)
		}
		session, err := d.client.Connect(ctx, transport, nil)
		if err != nil {
			logger.Debug("mcp: connect to %s failed: %v", d.label, err)
			return retry.RetryableError(err)
		}
		d.session = session
		return nil
	})
	if err != nil {
		return fmt.Errorf("mcp: connect to %s: %w", d.label, err)
	}

	logger.Debug("mcp: connected to %s", d.label)
	return nil
}

// Disconnect closes the session.
func (d *Driver) Disconnect(_ context.Context) error {
	d.mu.Lock()
	session := d.session
	d.session = nil
	d.mu.Unlock()

	if session == nil {
		return nil
	}
	if err := session.Close(); err != nil {
		return fmt.Errorf("mcp: close session: %w", err)
	}
	return nil
}

func (d *Driver) current() (*mcp.ClientSession, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.session == nil {
		return nil, domain.ErrNotConnected
	}
	return d.session, nil
}

// Tools lists every tool, following pagination cursors.
func (d *Driver) Tools(ctx context.Context) ([]domain.Tool, error) {
	session, err := d.current()
	if err != nil {
		return nil, err
	}

	var tools []domain.Tool
	params := &mcp.ListToolsParams{}
	for {
		res, err := session.ListTools(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("mcp: list tools: %w", err)
		}
		for _, t := range res.Tools {
			tools = append(tools, domain.Tool{
				Name:        t.Name,
				Description: t.Description,
				InputSchema: t.InputSchema,
			})
		}
		if res.NextCursor == "" {
			return tools, nil
		}
		params = &mcp.ListToolsParams{Cursor: res.NextCursor}
	}
}

// Resources lists every resource, following pagination cursors.
func (d *Driver) Resources(ctx context.Context) ([]domain.Resource, error) {
	session, err := d.current()
	if err != nil {
		return nil, err
	}

	var resources []domain.Resource
	params := &mcp.ListResourcesParams{}
	for {
		res, err := session.ListResources(ctx, params)
		if err != nil {
			return nil, fmt.Errorf("mcp: list resources: %w", err)
		}
		for _, r := range res.Resources {
			resources = append(resources, domain.Resource{
				URI:         r.URI,
				Name:        r.Name,
				Description: r.Description,
				MIMEType:    r.MIMEType,
			})
		}
		if res.NextCursor == "" {
			return resources, nil
		}
		params = &mcp.ListResourcesParams{Cursor: res.NextCursor}
	}
}

// UseTool calls a tool. A tool-level failure is reported through
// ToolResult.IsError, not as an error.
func (d *Driver) UseTool(ctx context.Context, name string, args map[string]any) (*domain.ToolResult, error) {
	session, err := d.current()
	if err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		return nil, fmt.Errorf("mcp: call tool %s: %w", name, err)
	}

	result := &domain.ToolResult{
		Content:    make([]domain.Content, 0, len(res.Content)),
		Structured: res.StructuredContent,
		IsError:    res.IsError,
	}
	for _, c := range res.Content {
		result.Content = append(result.Content, convertContent(c))
	}
	return result, nil
}

// AccessResource reads a resource. Multiple content parts are merged
// into one: text is concatenated and the first blob wins.
func (d *Driver) AccessResource(ctx context.Context, uri string) (*domain.ResourceContent, error) {
	session, err := d.current()
	if err != nil {
		return nil, err
	}

	res, err := session.ReadResource(ctx, &mcp.ReadResourceParams{URI: uri})
	if err != nil {
		return nil, fmt.Errorf("mcp: read resource %s: %w", uri, err)
	}

	content := &domain.ResourceContent{URI: uri}
	for _, part := range res.Contents {
		if part == nil {
			continue
		}
		if content.MIMEType == "" {
			content.MIMEType = part.MIMEType
		}
		content.Text += part.Text
		if content.Blob == nil && len(part.Blob) > 0 {
			content.Blob = part.Blob
		}
	}
	return content, nil
}

func convertContent(c mcp.Content) domain.Content {
	switch v := c.(type) {
	case *mcp.TextContent:
		return domain.Content{Type: domain.ContentText, Text: v.Text}
	case *mcp.ImageContent:
		return domain.Content{Type: domain.ContentImage, MIMEType: v.MIMEType, Data: v.Data}
	case *mcp.AudioContent:
		return domain.Content{Type: domain.ContentAudio, MIMEType: v.MIMEType, Data: v.Data}
	case *mcp.ResourceLink:
		return domain.Content{Type: domain.ContentResource, URI: v.URI, MIMEType: v.MIMEType}
	case *mcp.EmbeddedResource:
		out := domain.Content{Type: domain.ContentResource}
		if v.Resource != nil {
			out.URI = v.Resource.URI
			out.MIMEType = v.Resource.MIMEType
			out.Text = v.Resource.Text
			out.Data = v.Resource.Blob
		}
		return out
	default:
		return domain.Content{Type: domain.ContentOther}
	}
}
