package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zicoder/internal/adapters/driven/drivers"
	"github.com/custodia-labs/zicoder/internal/core/domain"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List the driver kinds each marketplace can build",
	Long: `List the built-in driver kinds per marketplace.

A kind is the value of the "driver" field in a config declaration or in a
POST /api/<marketplace>/register request.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		catalogues := drivers.Builtin()
		for _, kind := range domain.MarketplaceKinds() {
			cmd.Printf("%-12s %s\n", kind, strings.Join(catalogues.Kinds(kind), ", "))
		}
	},
}

func init() {
	rootCmd.AddCommand(driversCmd)
}
