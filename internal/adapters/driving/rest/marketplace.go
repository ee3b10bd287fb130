package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/core/ports/driving"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// RegisterRequest names a driver kind to build and the name to register it under.
type RegisterRequest struct {
	Name   string         `json:"name" binding:"required" example:"local"`
	Driver string         `json:"driver" binding:"required" example:"memory"`
	Config map[string]any `json:"config"`
}

// MarketplaceResponse describes the state of a marketplace.
type MarketplaceResponse struct {
	Marketplace string   `json:"marketplace" example:"cache"`
	Drivers     []string `json:"drivers"`
	Active      string   `json:"active,omitempty"`
	Kinds       []string `json:"kinds"`
}

// marketplaceRoutes serves the routes every marketplace shares.
type marketplaceRoutes[D driven.Driver] struct {
	market    driving.Marketplace[D]
	catalogue driving.DriverCatalogue[D]
}

func registerMarketplace[D driven.Driver](
	g *gin.RouterGroup,
	market driving.Marketplace[D],
	catalogue driving.DriverCatalogue[D],
) {
	r := &marketplaceRoutes[D]{market: market, catalogue: catalogue}
	g.GET("", r.list)
	g.POST("/register", r.register)
	g.PUT("/active/:name", r.setActive)
	g.POST("/connect", r.connect)
	g.POST("/disconnect", r.disconnect)
}

// list godoc
// @Summary List drivers
// @Description Lists registered driver names, the active driver and the driver kinds that can be registered.
// @Tags Marketplaces
// @Produce json
// @Param marketplace path string true "Marketplace" Enums(models, mcp_servers, cache, queue)
// @Success 200 {object} MarketplaceResponse
// @Router /{marketplace} [get]
// @Security Bearer
func (r *marketplaceRoutes[D]) list(c *gin.Context) {
	resp := MarketplaceResponse{
		Marketplace: r.market.Kind().String(),
		Drivers:     r.market.Names(),
		Kinds:       r.catalogue.Kinds(),
	}
	if name, ok := r.market.ActiveName(); ok {
		resp.Active = name
	}
	c.JSON(http.StatusOK, resp)
}

// register godoc
// @Summary Register a driver
// @Description Builds a driver of the given kind from config and registers it under name.
// @Description Registering an existing name replaces the driver. Replacing the active
// @Description driver disconnects the old instance first.
// @Tags Marketplaces
// @Accept json
// @Produce json
// @Param marketplace path string true "Marketplace" Enums(models, mcp_servers, cache, queue)
// @Param request body RegisterRequest true "Driver to register"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /{marketplace}/register [post]
// @Security Bearer
func (r *marketplaceRoutes[D]) register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}

	driver, err := r.catalogue.Build(req.Driver, req.Config)
	if err != nil {
		failWith(c, http.StatusBadRequest, err)
		return
	}

	// The active instance is discarded below; release its backend first.
	if active, ok := r.market.ActiveName(); ok && active == req.Name {
		if err := r.market.Disconnect(c.Request.Context()); err != nil {
			logger.Warn("%s: disconnect replaced driver %q: %v", r.market.Kind(), req.Name, err)
		}
	}

	r.market.Register(req.Name, func() D { return driver })
	c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("registered %s driver %q", req.Driver, req.Name),
	})
}

// setActive godoc
// @Summary Set the active driver
// @Description Routes subsequent operations of the marketplace to the named driver.
// @Tags Marketplaces
// @Produce json
// @Param marketplace path string true "Marketplace" Enums(models, mcp_servers, cache, queue)
// @Param name path string true "Registered driver name"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} ErrorResponse
// @Router /{marketplace}/active/{name} [put]
// @Security Bearer
func (r *marketplaceRoutes[D]) setActive(c *gin.Context) {
	name := c.Param("name")
	if err := r.market.SetActive(name); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: fmt.Sprintf("active driver is %q", name)})
}

// connect godoc
// @Summary Connect the active driver
// @Tags Marketplaces
// @Produce json
// @Param marketplace path string true "Marketplace" Enums(models, mcp_servers, cache, queue)
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /{marketplace}/connect [post]
// @Security Bearer
func (r *marketplaceRoutes[D]) connect(c *gin.Context) {
	if err := r.market.Connect(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "connected"})
}

// disconnect godoc
// @Summary Disconnect the active driver
// @Tags Marketplaces
// @Produce json
// @Param marketplace path string true "Marketplace" Enums(models, mcp_servers, cache, queue)
// @Success 200 {object} MessageResponse
// @Failure 400 {object} ErrorResponse
// @Router /{marketplace}/disconnect [post]
// @Security Bearer
func (r *marketplaceRoutes[D]) disconnect(c *gin.Context) {
	if err := r.market.Disconnect(c.Request.Context()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "disconnected"})
}
