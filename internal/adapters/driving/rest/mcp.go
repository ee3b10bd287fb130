package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
)

// ToolCallRequest carries the arguments of a tool call.
type ToolCallRequest struct {
	Arguments map[string]any `json:"arguments"`
}

// ResourceRequest names the resource to read.
type ResourceRequest struct {
	URI string `json:"uri" binding:"required" example:"file:///README.md"`
}

// ToolsResponse lists the tools of the active MCP server.
type ToolsResponse struct {
	Tools []domain.Tool `json:"tools"`
}

// ResourcesResponse lists the resources of the active MCP server.
type ResourcesResponse struct {
	Resources []domain.Resource `json:"resources"`
}

type mcpRoutes struct {
	market driving.MCPServerMarketplace
}

func registerMCPRoutes(g *gin.RouterGroup, market driving.MCPServerMarketplace) {
	r := &mcpRoutes{market: market}
	g.GET("/tools", r.tools)
	g.GET("/resources", r.resources)
	g.POST("/tool/:tool_name", r.useTool)
	g.POST("/resource", r.accessResource)
}

// tools godoc
// @Summary List tools
// @Tags MCP servers
// @Produce json
// @Success 200 {object} ToolsResponse
// @Failure 400 {object} ErrorResponse
// @Router /mcp_servers/tools [get]
// @Security Bearer
func (r *mcpRoutes) tools(c *gin.Context) {
	tools, err := r.market.Tools(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if tools == nil {
		tools = []domain.Tool{}
	}
	c.JSON(http.StatusOK, ToolsResponse{Tools: tools})
}

// resources godoc
// @Summary List resources
// @Tags MCP servers
// @Produce json
// @Success 200 {object} ResourcesResponse
// @Failure 400 {object} ErrorResponse
// @Router /mcp_servers/resources [get]
// @Security Bearer
func (r *mcpRoutes) resources(c *gin.Context) {
	resources, err := r.market.Resources(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if resources == nil {
		resources = []domain.Resource{}
	}
	c.JSON(http.StatusOK, ResourcesResponse{Resources: resources})
}

// useTool godoc
// @Summary Call a tool
// @Description Calls a tool on the active MCP server. A tool that reports an error
// @Description still returns 200 with is_error set.
// @Tags MCP servers
// @Accept json
// @Produce json
// @Param tool_name path string true "Tool name"
// @Param request body ToolCallRequest false "Tool arguments"
// @Success 200 {object} domain.ToolResult
// @Failure 400 {object} ErrorResponse
// @Router /mcp_servers/tool/{tool_name} [post]
// @Security Bearer
func (r *mcpRoutes) useTool(c *gin.Context) {
	var req ToolCallRequest
	if c.Request.ContentLength != 0 && !bind(c, &req) {
		return
	}

	result, err := r.market.UseTool(c.Request.Context(), c.Param("tool_name"), req.Arguments)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// accessResource godoc
// @Summary Read a resource
// @Tags MCP servers
// @Accept json
// @Produce json
// @Param request body ResourceRequest true "Resource URI"
// @Success 200 {object} domain.ResourceContent
// @Failure 400 {object} ErrorResponse
// @Router /mcp_servers/resource [post]
// @Security Bearer
func (r *mcpRoutes) accessResource(c *gin.Context) {
	var req ResourceRequest
	if !bind(c, &req) {
		return
	}

	content, err := r.market.AccessResource(c.Request.Context(), req.URI)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, content)
}
