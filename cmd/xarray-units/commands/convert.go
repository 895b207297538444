package commands

import (
	"strconv"

	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/unit"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var spectralFlag bool

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert VALUE FROM TO",
	Short: "Convert a value between units",
	Long: `Convert a numeric value from one unit expression into another.

Plain conversions require both expressions to share physical dimensions.
With --spectral, wavelength, frequency, wavenumber, and photon energy
are treated as interconvertible.

Examples:
  xarray-units convert 1 km m
  xarray-units convert 60 "km / h" "m / s"
  xarray-units convert 300 GHz mm --spectral`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func init() {
	ConvertCmd.Flags().BoolVar(&spectralFlag, "spectral", false, "Allow spectral conversions (wavelength, frequency, wavenumber, energy)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return errors.Wrapf(err, "invalid value %q", args[0])
	}

	from, err := unit.Parse(args[1])
	if err != nil {
		return errors.Wrapf(err, "invalid source units %q", args[1])
	}
	to, err := unit.Parse(args[2])
	if err != nil {
		return errors.Wrapf(err, "invalid target units %q", args[2])
	}

	var eq *unit.Equivalency
	if spectralFlag {
		eq = unit.Spectral()
	}

	conv, err := unit.Convert(from, to, eq)
	if err != nil {
		return err
	}

	result := conv.Apply(value)
	pterm.Printf("%g %s = %g %s\n", value, from, result, to)
	if factor, ok := conv.Factor(); ok {
		pterm.Println(pterm.Gray("factor: ") + pterm.Gray(strconv.FormatFloat(factor, 'g', -1, 64)))
	} else {
		pterm.Println(pterm.Gray("via: " + eq.Name() + " equivalency"))
	}
	return nil
}
