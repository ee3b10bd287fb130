package rest

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"     // swagger embed files
	ginSwagger "github.com/swaggo/gin-swagger" // gin-swagger middleware

	"github.com/custodia-labs/zicoder/internal/adapters/driving/rest/docs"
	"github.com/custodia-labs/zicoder/internal/core/domain"
	"github.com/custodia-labs/zicoder/internal/core/ports/driven"
	"github.com/custodia-labs/zicoder/internal/logger"
)

// BasePath prefixes every marketplace route.
const BasePath = "/api"

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Config holds HTTP server options.
type Config struct {
	// APIToken, when set, is required as a bearer token on every /api request.
	APIToken string
}

// Server is the HTTP API over the marketplaces.
type Server struct {
	ports  *Ports
	router *gin.Engine
}

// NewServer creates a new HTTP server with the given ports.
//
// @title zicoder API
// @version 1.0
// @description Registers pluggable drivers in the model, MCP server, cache and queue
// @description marketplaces and routes operations to the active driver of each.
// @BasePath /api
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the configured API token.
func NewServer(ports *Ports, cfg Config) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	s := &Server{ports: ports, router: router}

	docs.SwaggerInfo.BasePath = BasePath
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
	router.GET("/healthz", s.healthz)

	api := router.Group(BasePath, bearerAuth(cfg.APIToken))

	models := api.Group("/" + domain.MarketplaceModel.String())
	registerMarketplace[driven.ModelDriver](models, ports.Models, ports.ModelDrivers)
	registerModelRoutes(models, ports.Models)

	mcpServers := api.Group("/" + domain.MarketplaceMCP.String())
	registerMarketplace[driven.MCPDriver](mcpServers, ports.MCPServers, ports.MCPDrivers)
	registerMCPRoutes(mcpServers, ports.MCPServers)

	cache := api.Group("/" + domain.MarketplaceCache.String())
	registerMarketplace[driven.CacheDriver](cache, ports.Cache, ports.CacheDrivers)
	registerCacheRoutes(cache, ports.Cache)

	queue := api.Group("/" + domain.MarketplaceQueue.String())
	registerMarketplace[driven.QueueDriver](queue, ports.Queue, ports.QueueDrivers)
	registerQueueRoutes(queue, ports.Queue)

	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve serves HTTP on ln until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()
	logger.Info("listening on %s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// HealthResponse reports liveness and the active driver of each marketplace.
type HealthResponse struct {
	Status string            `json:"status"`
	Active map[string]string `json:"active"`
}

// healthz is served outside the API group, without the bearer guard.
func (s *Server) healthz(c *gin.Context) {
	active := make(map[string]string, 4)
	for kind, name := range map[domain.MarketplaceKind]func() (string, bool){
		domain.MarketplaceModel: s.ports.Models.ActiveName,
		domain.MarketplaceMCP:   s.ports.MCPServers.ActiveName,
		domain.MarketplaceCache: s.ports.Cache.ActiveName,
		domain.MarketplaceQueue: s.ports.Queue.ActiveName,
	} {
		if n, ok := name(); ok {
			active[kind.String()] = n
		}
	}
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Active: active})
}
