package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/config/file"
	"github.com/custodia-labs/zicoder/internal/adapters/driven/drivers"
	"github.com/custodia-labs/zicoder/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration file",
	Long: `View the server settings and the driver declarations loaded at start-up.

Use subcommands to print the config path or write a starter file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the loaded configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := file.NewSettingsStore(configPath)
		if err != nil {
			return err
		}
		cmd.Println(store.Path())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter configuration file",
	Long: `Write a configuration file with the default server settings, an in-memory
cache and a local task queue. An existing file is kept unless --force is set.`,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	settings, path, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Printf("Config: %s\n\n", path)

	cmd.Println("[Server]")
	cmd.Printf("  Addr: %s\n", settings.Server.Addr)
	if settings.Server.APIToken != "" {
		cmd.Printf("  API Token: %s\n", maskSecret(settings.Server.APIToken))
	} else {
		cmd.Println("  API Token: (not set)")
	}
	cmd.Printf("  Verbose: %t\n", settings.Log.Verbose)

	for _, kind := range domain.MarketplaceKinds() {
		cmd.Println()
		cmd.Printf("[%s]\n", kind)
		decls := settings.Drivers(kind)
		if len(decls) == 0 {
			cmd.Println("  (no drivers declared)")
			continue
		}
		for _, d := range decls {
			cmd.Printf("  %s (%s)%s\n", d.Name, d.Driver, declFlags(d))
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	store, err := file.NewSettingsStore(configPath)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(store.Path()); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", store.Path())
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", store.Path(), err)
	}

	if err := store.Save(starterSettings()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cmd.Printf("Wrote %s\n", store.Path())
	return nil
}

// starterSettings is the configuration written by config init.
func starterSettings() domain.Settings {
	settings := domain.DefaultSettings()
	settings.Cache = []domain.DriverSettings{
		{Name: "memory", Driver: drivers.KindMemory, Active: true, Connect: true},
	}
	settings.Queue = []domain.DriverSettings{
		{Name: "local", Driver: drivers.KindLocal, Active: true, Connect: true, Config: map[string]any{"workers": 4}},
	}
	return settings
}

func declFlags(d domain.DriverSettings) string {
	switch {
	case d.Connect:
		return " [active, connect]"
	case d.Active:
		return " [active]"
	default:
		return ""
	}
}

// maskSecret hides all but the ends of a secret.
func maskSecret(s string) string {
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
