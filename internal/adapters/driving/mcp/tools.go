package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/zicoder/internal/core/domain"
)

// QueryInput is the input schema for the query_model tool.
type QueryInput struct {
	Input string `json:"input" jsonschema:"the prompt sent to the active model"`
}

// QueryOutput is the output schema for the query_model tool.
type QueryOutput struct {
	Output string `json:"output"`
}

// CacheGetInput is the input schema for the cache_get tool.
type CacheGetInput struct {
	Key string `json:"key" jsonschema:"the cache key to read"`
}

// CacheGetOutput is the output schema for the cache_get tool.
type CacheGetOutput struct {
	Key   string `json:"key"`
	Found bool   `json:"found"`
	Value any    `json:"value,omitempty"`
}

// CacheSetInput is the input schema for the cache_set tool.
type CacheSetInput struct {
	Key        string  `json:"key" jsonschema:"the cache key to write"`
	Value      any     `json:"value" jsonschema:"the value to store"`
	TTLSeconds float64 `json:"ttl_seconds,omitempty" jsonschema:"seconds until the entry expires (default never)"`
}

// CacheSetOutput is the output schema for the cache_set tool.
type CacheSetOutput struct {
	Stored bool `json:"stored"`
}

// EnqueueInput is the input schema for the enqueue_task tool.
type EnqueueInput struct {
	TaskName string         `json:"task_name" jsonschema:"the registered task to run"`
	Args     []any          `json:"args,omitempty" jsonschema:"positional task arguments"`
	Kwargs   map[string]any `json:"kwargs,omitempty" jsonschema:"keyword task arguments"`
}

// EnqueueOutput is the output schema for the enqueue_task tool.
type EnqueueOutput struct {
	TaskID string `json:"task_id"`
}

// TaskInput is the input schema for the task tools.
type TaskInput struct {
	TaskID string `json:"task_id" jsonschema:"the id returned by enqueue_task"`
}

// TaskResultOutput is the output schema for the task_result tool.
type TaskResultOutput struct {
	TaskID string `json:"task_id"`
	Result any    `json:"result,omitempty"`
}

// TaskStatusOutput is the output schema for the task_status tool.
type TaskStatusOutput struct {
	TaskID     string `json:"task_id"`
	Name       string `json:"name"`
	State      string `json:"state"`
	Error      string `json:"error,omitempty"`
	CreatedAt  string `json:"created_at"`
	StartedAt  string `json:"started_at,omitempty"`
	FinishedAt string `json:"finished_at,omitempty"`
}

// UpstreamToolInput is the input schema for the call_upstream_tool tool.
type UpstreamToolInput struct {
	Name      string         `json:"name" jsonschema:"the tool to call on the active MCP server"`
	Arguments map[string]any `json:"arguments,omitempty" jsonschema:"the tool arguments"`
}

// UpstreamToolOutput is the output schema for the call_upstream_tool tool.
type UpstreamToolOutput struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

// errEmptyArgument reports a missing required tool argument.
var errEmptyArgument = errors.New("argument must not be empty")

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query_model",
		Description: "Send a prompt to the active model driver",
	}, s.handleQuery)

	if s.ports.Cache != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "cache_get",
			Description: "Read a value from the active cache driver",
		}, s.handleCacheGet)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "cache_set",
			Description: "Store a value in the active cache driver",
		}, s.handleCacheSet)
	}

	if s.ports.Queue != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "enqueue_task",
			Description: "Enqueue a task on the active queue driver",
		}, s.handleEnqueue)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "task_status",
			Description: "Report the state of a queued task",
		}, s.handleTaskStatus)
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "task_result",
			Description: "Fetch the result of a finished task",
		}, s.handleTaskResult)
	}

	if s.ports.MCPServers != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "call_upstream_tool",
			Description: "Call a tool on the active upstream MCP server driver",
		}, s.handleUpstreamTool)
	}
}

// handleQuery handles the query_model tool invocation.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, QueryOutput, error) {
	if input.Input == "" {
		return nil, QueryOutput{}, errEmptyArgument
	}
	output, err := s.ports.Models.Query(ctx, input.Input)
	if err != nil {
		return nil, QueryOutput{}, err
	}
	return nil, QueryOutput{Output: output}, nil
}

// handleCacheGet handles the cache_get tool invocation.
func (s *Server) handleCacheGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CacheGetInput,
) (*mcp.CallToolResult, CacheGetOutput, error) {
	value, found, err := s.ports.Cache.Get(ctx, input.Key)
	if err != nil {
		return nil, CacheGetOutput{}, err
	}
	return nil, CacheGetOutput{Key: input.Key, Found: found, Value: value}, nil
}

// handleCacheSet handles the cache_set tool invocation.
func (s *Server) handleCacheSet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CacheSetInput,
) (*mcp.CallToolResult, CacheSetOutput, error) {
	if input.Key == "" {
		return nil, CacheSetOutput{}, errEmptyArgument
	}
	ttl := time.Duration(input.TTLSeconds * float64(time.Second))
	if ttl < 0 {
		return nil, CacheSetOutput{}, domain.ErrInvalidInput
	}
	if err := s.ports.Cache.Set(ctx, input.Key, input.Value, ttl); err != nil {
		return nil, CacheSetOutput{}, err
	}
	return nil, CacheSetOutput{Stored: true}, nil
}

// handleEnqueue handles the enqueue_task tool invocation.
func (s *Server) handleEnqueue(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EnqueueInput,
) (*mcp.CallToolResult, EnqueueOutput, error) {
	id, err := s.ports.Queue.EnqueueTask(ctx, input.TaskName, input.Args, input.Kwargs)
	if err != nil {
		return nil, EnqueueOutput{}, err
	}
	return nil, EnqueueOutput{TaskID: id}, nil
}

// handleTaskStatus handles the task_status tool invocation.
func (s *Server) handleTaskStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskInput,
) (*mcp.CallToolResult, TaskStatusOutput, error) {
	status, err := s.ports.Queue.GetTaskStatus(ctx, input.TaskID)
	if err != nil {
		return nil, TaskStatusOutput{}, err
	}
	return nil, TaskStatusOutput{
		TaskID:     status.ID,
		Name:       status.Name,
		State:      string(status.State),
		Error:      status.Error,
		CreatedAt:  formatTime(status.CreatedAt),
		StartedAt:  formatTime(status.StartedAt),
		FinishedAt: formatTime(status.FinishedAt),
	}, nil
}

// handleTaskResult handles the task_result tool invocation.
func (s *Server) handleTaskResult(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TaskInput,
) (*mcp.CallToolResult, TaskResultOutput, error) {
	result, err := s.ports.Queue.GetTaskResult(ctx, input.TaskID)
	if err != nil {
		return nil, TaskResultOutput{}, err
	}
	return nil, TaskResultOutput{TaskID: input.TaskID, Result: result}, nil
}

// handleUpstreamTool forwards a tool call to the active MCP server driver.
func (s *Server) handleUpstreamTool(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpstreamToolInput,
) (*mcp.CallToolResult, UpstreamToolOutput, error) {
	if input.Name == "" {
		return nil, UpstreamToolOutput{}, errEmptyArgument
	}
	result, err := s.ports.MCPServers.UseTool(ctx, input.Name, input.Arguments)
	if err != nil {
		return nil, UpstreamToolOutput{}, err
	}
	return nil, UpstreamToolOutput{Text: result.Text(), IsError: result.IsError}, nil
}

// formatTime renders t as RFC 3339, or empty for the zero time.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
