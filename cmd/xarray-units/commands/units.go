package commands

import (
	"strings"

	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/unit"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// UnitsCmd represents the units command
var UnitsCmd = &cobra.Command{
	Use:   "units [SYMBOL]",
	Short: "List or look up registered unit symbols",
	Long: `List every registered unit symbol, or show the aliases, scale, and
SI base form of a single symbol.

Examples:
  xarray-units units          # List all registered symbols
  xarray-units units Jy       # Look up one symbol`,
	Args: cobra.MaximumNArgs(1),
	RunE: runUnits,
}

func runUnits(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return describeUnit(args[0])
	}

	symbols := unit.Symbols()
	pterm.Info.Printf("%d registered unit symbols\n", len(symbols))
	for _, symbol := range symbols {
		pterm.Println(formatUnitLine(symbol))
	}
	return nil
}

func describeUnit(symbol string) error {
	aliases, _, ok := unit.Describe(symbol)
	if !ok {
		return errors.Newf("unknown unit symbol %q", symbol)
	}

	u := unit.MustParse(symbol)
	base := unit.Decompose(u)

	pterm.Println(pterm.Green(symbol))
	if len(aliases) > 0 {
		pterm.Println(pterm.Gray("aliases:   ") + strings.Join(aliases, ", "))
	}
	pterm.Println(pterm.Gray("base form: ") + pterm.Sprintf("%g %s", u.Scale(), base))
	return nil
}

func formatUnitLine(symbol string) string {
	u := unit.MustParse(symbol)
	base := unit.Decompose(u)
	line := pterm.Green(symbol) + "\t" + pterm.Gray(base.String())
	if aliases, _, ok := unit.Describe(symbol); ok && len(aliases) > 0 {
		line += "\t" + pterm.Gray("("+strings.Join(aliases, ", ")+")")
	}
	return line
}
