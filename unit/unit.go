// Package unit implements the units backend for xarray-units: parsing
// unit expressions into canonical unit values, computing conversion
// factors (optionally through equivalencies such as spectral
// frequency↔wavelength), decomposing units into SI bases, and rendering
// units in several output formats.
//
// The unit table itself lives in tables/units.toml and is embedded at
// build time; see registry.go.
//
// Usage:
//
//	u, err := unit.Parse("km / s")
//	v, err := unit.Parse("m s-1")
//	factor, err := unit.Factor(u, v) // 1000
package unit

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/astropenguin/xarray-units/errors"
)

// Dimension indices of the SI dimension vector.
const (
	DimLength = iota
	DimMass
	DimTime
	DimCurrent
	DimTemperature
	DimAmount
	DimLuminosity

	numDims
)

// Dims is the SI dimension vector of a unit. Mass is tracked in kg.
type Dims [numDims]int

// dimNames maps TOML dimension keys to vector indices.
var dimNames = map[string]int{
	"length":      DimLength,
	"mass":        DimMass,
	"time":        DimTime,
	"current":     DimCurrent,
	"temperature": DimTemperature,
	"amount":      DimAmount,
	"luminosity":  DimLuminosity,
}

// IsZero reports whether the vector is dimensionless.
func (d Dims) IsZero() bool {
	return d == Dims{}
}

// Add returns the element-wise sum of two dimension vectors.
func (d Dims) Add(o Dims) Dims {
	for i := range o {
		d[i] += o[i]
	}
	return d
}

// Sub returns the element-wise difference of two dimension vectors.
func (d Dims) Sub(o Dims) Dims {
	for i := range o {
		d[i] -= o[i]
	}
	return d
}

// Scale returns the dimension vector multiplied by an integer power.
func (d Dims) Scale(p int) Dims {
	for i := range d {
		d[i] *= p
	}
	return d
}

// Term is one factor of a unit expression, e.g. "km" or "s-2".
type Term struct {
	Prefix string // SI prefix symbol, "" if none
	Symbol string // registry symbol the term resolved to
	Exp    int    // exponent, never 0
}

func (t Term) String() string {
	switch {
	case t.Exp == 1:
		return t.Prefix + t.Symbol
	default:
		return fmt.Sprintf("%s%s%d", t.Prefix, t.Symbol, t.Exp)
	}
}

// Unit is an immutable parsed unit value. The zero value is not a valid
// unit; use Parse, Dimensionless, or the composition functions.
type Unit struct {
	terms []Term
	scale float64 // multiplicative factor into the SI base representation
	dims  Dims
}

// Dimensionless is the unit of bare numbers. Its string form is "1",
// which Parse also accepts.
var Dimensionless = Unit{scale: 1}

// Scale returns the factor into the SI base representation.
func (u Unit) Scale() float64 { return u.scale }

// Dims returns the SI dimension vector.
func (u Unit) Dims() Dims { return u.dims }

// IsDimensionless reports whether the unit carries no dimensions.
// Scaled dimensionless units (deg, arcmin) are included.
func (u Unit) IsDimensionless() bool { return u.dims.IsZero() }

// String renders the unit in the generic format: terms separated by
// spaces with plain integer exponents ("km s-1"). The result is
// accepted by Parse.
func (u Unit) String() string {
	if len(u.terms) == 0 {
		return "1"
	}
	parts := make([]string, len(u.terms))
	for i, t := range u.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// scaleEqual compares scales with a relative tolerance, since derived
// scales accumulate floating-point error through composition.
func scaleEqual(a, b float64) bool {
	if a == b {
		return true
	}
	diff := math.Abs(a - b)
	return diff <= 1e-12*math.Max(math.Abs(a), math.Abs(b))
}

// Equal reports structural equality as the backend defines it: equal
// dimension vectors and equal SI scales. "m" equals "meter"; "m" does
// not equal "km"; "Hz" equals "s-1".
func Equal(a, b Unit) bool {
	return a.dims == b.dims && scaleEqual(a.scale, b.scale)
}

// Mul returns the product unit a·b with terms merged.
func Mul(a, b Unit) Unit {
	return Unit{
		terms: mergeTerms(a.terms, b.terms, 1),
		scale: a.scale * b.scale,
		dims:  a.dims.Add(b.dims),
	}
}

// Div returns the quotient unit a/b with terms merged.
func Div(a, b Unit) Unit {
	return Unit{
		terms: mergeTerms(a.terms, b.terms, -1),
		scale: a.scale / b.scale,
		dims:  a.dims.Sub(b.dims),
	}
}

// Pow raises a unit to a power. Non-integer powers are only defined for
// dimensionless units; anything else fails with ErrUnitsConversion.
func Pow(u Unit, p float64) (Unit, error) {
	if u.dims.IsZero() && scaleEqual(u.scale, 1) {
		return Dimensionless, nil
	}
	n := int(math.Round(p))
	if math.Abs(p-float64(n)) > 1e-9 {
		return Unit{}, errors.NewUnitsConversion("non-integer power %v of unit %q", p, u)
	}
	if n == 0 {
		return Dimensionless, nil
	}

	terms := make([]Term, 0, len(u.terms))
	for _, t := range u.terms {
		t.Exp *= n
		terms = append(terms, t)
	}
	return Unit{
		terms: terms,
		scale: math.Pow(u.scale, float64(n)),
		dims:  u.dims.Scale(n),
	}, nil
}

// mergeTerms combines two term lists, adding exponents of identical
// (prefix, symbol) factors. sign is +1 for multiplication, -1 for
// division of the b terms.
func mergeTerms(a, b []Term, sign int) []Term {
	merged := make([]Term, 0, len(a)+len(b))
	merged = append(merged, a...)

next:
	for _, t := range b {
		t.Exp *= sign
		for i, m := range merged {
			if m.Prefix == t.Prefix && m.Symbol == t.Symbol {
				merged[i].Exp += t.Exp
				continue next
			}
		}
		merged = append(merged, t)
	}

	// Drop factors that cancelled out
	out := merged[:0]
	for _, t := range merged {
		if t.Exp != 0 {
			out = append(out, t)
		}
	}
	return out
}

// baseOrder fixes the term order of decomposed units.
var baseOrder = []struct {
	dim    int
	prefix string
	symbol string
}{
	{DimMass, "k", "g"},
	{DimLength, "", "m"},
	{DimTime, "", "s"},
	{DimCurrent, "", "A"},
	{DimTemperature, "", "K"},
	{DimAmount, "", "mol"},
	{DimLuminosity, "", "cd"},
}

// Decompose returns the canonical SI base form of a unit: same
// dimensions, scale 1, terms in fixed base order. Pure and idempotent.
func Decompose(u Unit) Unit {
	if u.dims.IsZero() {
		return Dimensionless
	}
	var terms []Term
	for _, b := range baseOrder {
		if exp := u.dims[b.dim]; exp != 0 {
			terms = append(terms, Term{Prefix: b.prefix, Symbol: b.symbol, Exp: exp})
		}
	}
	return Unit{terms: terms, scale: 1, dims: u.dims}
}

// sortTermsForDisplay orders positive exponents before negative ones,
// keeping the relative order within each group. Formats use it so that
// "1 / s * m" renders as "m s-1".
func sortTermsForDisplay(terms []Term) []Term {
	out := make([]Term, len(terms))
	copy(out, terms)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Exp > 0 && out[j].Exp < 0
	})
	return out
}
