package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/drivers"
	"github.com/custodia-labs/zicoder/internal/adapters/driving/rest"
	"github.com/custodia-labs/zicoder/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API over the model, MCP server, cache and queue marketplaces.

Drivers declared in the config file are registered (and optionally activated
and connected) before the server starts listening. More drivers can be
registered at runtime with POST /api/<marketplace>/register.

Examples:
  # Listen on the configured address (default :8080)
  zicoder serve

  # Override the address and require a bearer token
  zicoder serve --addr 127.0.0.1:9000 --api-token secret`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().String("api-token", "", "bearer token required on /api (overrides server.api_token)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}
	logger.Debug("config: %s", path)

	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		settings.Server.Addr = addr
	}
	if token, _ := cmd.Flags().GetString("api-token"); token != "" {
		settings.Server.APIToken = token
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, settings, drivers.Builtin())
	if err != nil {
		return err
	}
	defer a.shutdown()

	if !logger.IsVerbose() {
		gin.SetMode(gin.ReleaseMode)
	}

	server, err := rest.NewServer(a.restPorts(), rest.Config{APIToken: settings.Server.APIToken})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", settings.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", settings.Server.Addr, err)
	}
	cmd.Printf("zicoder API listening on http://%s%s\n", ln.Addr(), rest.BasePath)

	return server.Serve(ctx, ln)
}

// restPorts exposes the marketplaces and catalogues to the HTTP server.
func (a *app) restPorts() *rest.Ports {
	return &rest.Ports{
		Models:       a.models,
		ModelDrivers: a.catalogues.Models,
		MCPServers:   a.mcpServers,
		MCPDrivers:   a.catalogues.MCPServers,
		Cache:        a.cache,
		CacheDrivers: a.catalogues.Cache,
		Queue:        a.queue,
		QueueDrivers: a.catalogues.Queue,
	}
}
