package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/drivers"
	"github.com/custodia-labs/zicoder/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for exposing the marketplaces over the Model Context Protocol (MCP).`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server over the configured marketplaces.

The drivers declared in the config file are installed first. The active model
answers query_model; the cache, queue and upstream MCP server marketplaces add
their own tools.

By default the server communicates over stdio using JSON-RPC. Use --port to
serve streamable HTTP instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  zicoder mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  zicoder mcp serve --port 8081

Assistant configuration (e.g. claude_desktop_config.json):
  {
    "mcpServers": {
      "zicoder": {
        "command": "/path/to/zicoder",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, settings, drivers.Builtin())
	if err != nil {
		return err
	}
	defer a.shutdown()

	server, err := mcp.NewServer(a.mcpPorts())
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// mcpPorts exposes the marketplaces to the MCP server.
func (a *app) mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Models:     a.models,
		MCPServers: a.mcpServers,
		Cache:      a.cache,
		Queue:      a.queue,
	}
}
