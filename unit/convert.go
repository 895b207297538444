package unit

import (
	"github.com/astropenguin/xarray-units/errors"
)

// Conversion converts numeric values from one unit into another. It is
// either a scalar factor (plain unit conversion) or a monotonic
// elementwise mapping (equivalency-backed conversion); both apply
// elementwise to array payloads.
type Conversion struct {
	factor  float64
	mapping func(float64) float64
}

// Scalar returns a scalar-factor conversion.
func Scalar(factor float64) Conversion {
	return Conversion{factor: factor}
}

// Apply converts a single value.
func (c Conversion) Apply(x float64) float64 {
	if c.mapping != nil {
		return c.mapping(x)
	}
	return x * c.factor
}

// Factor returns the scalar factor and true when the conversion is a
// pure scalar multiply.
func (c Conversion) Factor() (float64, bool) {
	if c.mapping != nil {
		return 0, false
	}
	return c.factor, true
}

// Factor returns the multiplicative scale from one unit into another,
// such that valueTo = valueFrom * factor. It fails with
// ErrUnitsConversion when the dimensions differ.
func Factor(from, to Unit) (float64, error) {
	if from.dims != to.dims {
		return 0, errors.WithHint(
			errors.NewUnitsConversion("%q and %q have different dimensions", from, to),
			"supply an equivalency if the units are related through one",
		)
	}
	return from.scale / to.scale, nil
}

// Convert builds the Conversion from one unit into another, dispatching
// on equivalency presence: plain dimension-compatible conversions are
// scalar factors; otherwise a supplied equivalency may provide an
// elementwise mapping. Fails with ErrUnitsConversion when neither path
// exists.
func Convert(from, to Unit, eq *Equivalency) (Conversion, error) {
	if from.dims == to.dims {
		return Scalar(from.scale / to.scale), nil
	}
	if eq != nil {
		if mapping, ok := eq.Map(from, to); ok {
			return Conversion{mapping: mapping}, nil
		}
		return Conversion{}, errors.NewUnitsConversion(
			"%q and %q are not related through the %s equivalency", from, to, eq.Name(),
		)
	}
	return Conversion{}, errors.WithHint(
		errors.NewUnitsConversion("%q and %q have different dimensions", from, to),
		"supply an equivalency if the units are related through one",
	)
}

// Equivalent reports whether two units are convertible, optionally
// through an equivalency.
func Equivalent(a, b Unit, eq *Equivalency) bool {
	_, err := Convert(a, b, eq)
	return err == nil
}

// Equivalency is a backend-supplied, possibly non-linear mapping
// between physically distinct unit kinds.
type Equivalency struct {
	name string
	// mapsTo returns the elementwise mapping from one unit into the
	// other, or false when the equivalency does not relate them.
	mapsTo func(from, to Unit) (func(float64) float64, bool)
}

// Name identifies the equivalency in error messages.
func (e *Equivalency) Name() string { return e.name }

// Map returns the elementwise mapping from one unit into the other, or
// false when the equivalency does not relate them.
func (e *Equivalency) Map(from, to Unit) (func(float64) float64, bool) {
	return e.mapsTo(from, to)
}

// Physical constants used by the spectral equivalency.
const (
	speedOfLight = 299792458.0    // m/s
	planck       = 6.62607015e-34 // J s
)

// Spectral dimension archetypes. Written as literals rather than
// parsed, since package-level initializers run before the registry
// init populates the lookup maps.
var (
	dimsWavelength = Dims{DimLength: 1}
	dimsFrequency  = Dims{DimTime: -1}
	dimsEnergy     = Dims{DimMass: 1, DimLength: 2, DimTime: -2}
	dimsWavenumber = Dims{DimLength: -1}
)

// Spectral returns the equivalency between wavelength, frequency,
// wavenumber, and photon energy (ν = c/λ, E = hν, k = 1/λ). The
// wavelength↔frequency branch is non-linear, so the resulting
// Conversion is an elementwise mapping rather than a scalar factor.
func Spectral() *Equivalency {
	// Everything maps through frequency in Hz
	toHz := func(d Dims) (func(float64) float64, bool) {
		switch d {
		case dimsWavelength:
			return func(x float64) float64 { return speedOfLight / x }, true
		case dimsFrequency:
			return func(x float64) float64 { return x }, true
		case dimsEnergy:
			return func(x float64) float64 { return x / planck }, true
		case dimsWavenumber:
			return func(x float64) float64 { return speedOfLight * x }, true
		}
		return nil, false
	}
	fromHz := func(d Dims) (func(float64) float64, bool) {
		switch d {
		case dimsWavelength:
			return func(nu float64) float64 { return speedOfLight / nu }, true
		case dimsFrequency:
			return func(nu float64) float64 { return nu }, true
		case dimsEnergy:
			return func(nu float64) float64 { return planck * nu }, true
		case dimsWavenumber:
			return func(nu float64) float64 { return nu / speedOfLight }, true
		}
		return nil, false
	}

	return &Equivalency{
		name: "spectral",
		mapsTo: func(from, to Unit) (func(float64) float64, bool) {
			in, ok := toHz(from.dims)
			if !ok {
				return nil, false
			}
			out, ok := fromHz(to.dims)
			if !ok {
				return nil, false
			}
			return func(x float64) float64 {
				return out(in(x*from.scale)) / to.scale
			}, true
		},
	}
}
