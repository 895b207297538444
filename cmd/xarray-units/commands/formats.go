package commands

import (
	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/unit"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// FormatsCmd represents the formats command
var FormatsCmd = &cobra.Command{
	Use:   "formats UNITS",
	Short: "Render a unit expression in every display format",
	Long: `Parse a unit expression and render it in each supported display
format (generic, console, unicode, latex).

Example:
  xarray-units formats "km s-1"`,
	Args: cobra.ExactArgs(1),
	RunE: runFormats,
}

func runFormats(cmd *cobra.Command, args []string) error {
	u, err := unit.Parse(args[0])
	if err != nil {
		return errors.Wrapf(err, "invalid units %q", args[0])
	}

	for _, format := range unit.Formats() {
		rendered, err := unit.Render(u, format)
		if err != nil {
			return err
		}
		pterm.Printf("%s\t%s\n", pterm.Gray(string(format)), rendered)
	}
	return nil
}
