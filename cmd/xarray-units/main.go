package main

import (
	"fmt"
	"os"

	"github.com/astropenguin/xarray-units/cmd/xarray-units/commands"
	"github.com/astropenguin/xarray-units/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "xarray-units",
	Short: "Unit-aware array tooling",
	Long: `xarray-units - Unit-aware array operation tooling.

Inspect the unit registry, convert values between units, and preview
how units render in the supported display formats.

Available commands:
  convert - Convert a value between units
  units   - List or look up registered unit symbols
  formats - Render a unit expression in every display format
  version - Show version information

Examples:
  xarray-units convert 300 GHz mm --spectral
  xarray-units units Jy
  xarray-units formats "km s-1"`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.InitializeAt(jsonLogs, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs instead of console output")

	rootCmd.AddCommand(commands.ConvertCmd)
	rootCmd.AddCommand(commands.UnitsCmd)
	rootCmd.AddCommand(commands.FormatsCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
