// Package cli implements the zicoder command line: the HTTP API server,
// the MCP façade, and configuration helpers.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/zicoder/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "zicoder",
	Short: "Pluggable driver marketplaces for models, MCP servers, caches and queues",
	Long: `zicoder hosts four driver marketplaces behind one HTTP API.

Each marketplace keeps a set of named drivers and routes every operation to
the active one. Drivers are declared in the config file or registered at
runtime through the API.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if verbose {
			logger.SetVerbose(true)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"config file (default ~/.zicoder/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	defer logger.Sync() //nolint:errcheck
	return rootCmd.Execute()
}
