// Package operator implements unit-aware binary operations between a
// DataArray and another operand: arithmetic, floor division and modulo,
// and comparisons.
//
// Unit propagation follows the primary-operand rule: in same-units
// operations the left array's units govern, and the right operand's
// payload is rescaled into them before the numeric operation runs.
// Operand order, not magnitude, decides the winning units. Any-units
// operations (mul, div, pow) compose units instead; comparisons drop
// them from the result.
package operator

import (
	"math"

	"github.com/astropenguin/xarray-units/darray"
	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/quantity"
	"github.com/astropenguin/xarray-units/unit"
)

// Op names one binary operation.
type Op string

// The closed operation set.
const (
	// Any-units operations: operand units may differ in kind and the
	// result units are composed by the backend
	OpMul Op = "mul"
	OpDiv Op = "div"
	OpPow Op = "pow"

	// Same-units arithmetic: the right operand is rescaled into the
	// left array's units, which govern the result
	OpAdd      Op = "add"
	OpSub      Op = "sub"
	OpFloorDiv Op = "floordiv"
	OpMod      Op = "mod"

	// Comparisons: the right operand is rescaled, the result carries
	// no units (payload is 0/1)
	OpLt Op = "lt"
	OpLe Op = "le"
	OpEq Op = "eq"
	OpNe Op = "ne"
	OpGe Op = "ge"
	OpGt Op = "gt"
)

// kernels maps each operation to its elementwise function.
var kernels = map[Op]func(a, b float64) float64{
	OpMul:      func(a, b float64) float64 { return a * b },
	OpDiv:      func(a, b float64) float64 { return a / b },
	OpPow:      math.Pow,
	OpAdd:      func(a, b float64) float64 { return a + b },
	OpSub:      func(a, b float64) float64 { return a - b },
	OpFloorDiv: func(a, b float64) float64 { return math.Floor(a / b) },
	OpMod:      math.Mod,
	OpLt:       compare(func(a, b float64) bool { return a < b }),
	OpLe:       compare(func(a, b float64) bool { return a <= b }),
	OpEq:       compare(func(a, b float64) bool { return a == b }),
	OpNe:       compare(func(a, b float64) bool { return a != b }),
	OpGe:       compare(func(a, b float64) bool { return a >= b }),
	OpGt:       compare(func(a, b float64) bool { return a > b }),
}

func compare(pred func(a, b float64) bool) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		if pred(a, b) {
			return 1
		}
		return 0
	}
}

// Valid reports whether the operation is in the closed set.
func (op Op) Valid() bool {
	_, ok := kernels[op]
	return ok
}

// AnyUnits reports whether operand units may differ in kind.
func (op Op) AnyUnits() bool {
	return op == OpMul || op == OpDiv || op == OpPow
}

// Comparison reports whether the operation yields a unitless 0/1 array.
func (op Op) Comparison() bool {
	switch op {
	case OpLt, OpLe, OpEq, OpNe, OpGe, OpGt:
		return true
	}
	return false
}

// Operand is the right side of an operation: a DataArray (with or
// without units), a scalar quantity with units, or a bare number.
type Operand struct {
	array *darray.DataArray
	value float64
	units string // "" means no units
}

// Array makes an operand of a DataArray. Its effective units are read
// from the array's attribute map at dispatch time.
func Array(da *darray.DataArray) Operand {
	return Operand{array: da}
}

// Number makes a unitless scalar operand.
func Number(value float64) Operand {
	return Operand{value: value}
}

// Quantity makes a scalar operand carrying units.
func Quantity(value float64, units string) Operand {
	return Operand{value: value, units: units}
}

// resolve returns the operand's effective units. ok is false for
// unitless operands.
func (o Operand) resolve() (unit.Unit, bool, error) {
	if o.array != nil {
		return quantity.UnitsOf(o.array)
	}
	if o.units == "" {
		return unit.Unit{}, false, nil
	}
	u, err := unit.Parse(o.units)
	if err != nil {
		return unit.Unit{}, false, errors.Wrap(err, "operand")
	}
	return u, true, nil
}

// unitsText returns the operand's raw units text for re-tagging.
func (o Operand) unitsText() string {
	if o.array != nil {
		text, _ := o.array.Attr(quantity.UnitsAttr)
		return text
	}
	return o.units
}

// Take performs one unit-aware binary operation. The full unit logic
// runs before any payload element is touched: incompatible operands
// fail with ErrUnitsConversion and no partial computation happens.
//
// Unit propagation:
//   - both sides united, same-units op: the right payload is rescaled
//     into the left units, which tag the result (primary operand wins)
//   - left unitless, right united, same-units op: no rescale (there is
//     no conversion path) and the result adopts the right units
//   - any-units ops compose units (mul, div) or raise them to the
//     exponent (pow, which requires a dimensionless exponent)
//   - comparisons rescale like same-units arithmetic, then drop units
func Take(left *darray.DataArray, op Op, right Operand) (*darray.DataArray, error) {
	if !op.Valid() {
		return nil, errors.Newf("unknown operation %q", op)
	}

	leftUnits, leftHas, err := quantity.UnitsOf(left)
	if err != nil {
		return nil, err
	}
	rightUnits, rightHas, err := right.resolve()
	if err != nil {
		return nil, err
	}

	// Decide result units and the rescale of the right payload before
	// executing anything
	rescale := unit.Scalar(1)
	resultUnits := ""

	switch {
	case op == OpPow:
		if rightHas && !rightUnits.IsDimensionless() {
			return nil, errors.NewUnitsConversion(
				"exponent has units %q, must be dimensionless", right.unitsText())
		}
		if leftHas {
			exponent, ok := right.scalar()
			if !ok {
				if !leftUnits.IsDimensionless() {
					return nil, errors.NewUnitsConversion(
						"array exponent requires a dimensionless base, base has units %q", leftUnits)
				}
			} else {
				powUnits, err := unit.Pow(leftUnits, exponent)
				if err != nil {
					return nil, err
				}
				resultUnits = powUnits.String()
			}
		}

	case op.AnyUnits():
		lu, ru := unit.Dimensionless, unit.Dimensionless
		if leftHas {
			lu = leftUnits
		}
		if rightHas {
			ru = rightUnits
		}
		var composed unit.Unit
		if op == OpMul {
			composed = unit.Mul(lu, ru)
		} else {
			composed = unit.Div(lu, ru)
		}
		if !composed.IsDimensionless() || composed.Scale() != 1 {
			resultUnits = composed.String()
		}

	case leftHas && rightHas:
		factor, err := unit.Factor(rightUnits, leftUnits)
		if err != nil {
			return nil, errors.Wrapf(err, "operation %q", op)
		}
		rescale = unit.Scalar(factor)
		if !op.Comparison() {
			resultUnits = left.Attrs()[quantity.UnitsAttr]
		}

	case leftHas:
		// Dimensionless right operand participates without rescaling
		if !op.Comparison() {
			resultUnits = left.Attrs()[quantity.UnitsAttr]
		}

	case rightHas:
		// No conversion path from a unitless left side: pass the right
		// units through unscaled
		if !op.Comparison() {
			resultUnits = right.unitsText()
		}
	}

	result, err := execute(left, op, right, rescale)
	if err != nil {
		return nil, err
	}

	if resultUnits == "" {
		return quantity.Unset(result), nil
	}
	return quantity.Set(result, resultUnits, true)
}

// scalar returns the operand's payload when it is a single number.
func (o Operand) scalar() (float64, bool) {
	if o.array == nil {
		return o.value, true
	}
	if o.array.Size() == 1 {
		return o.array.Values()[0], true
	}
	return 0, false
}

// execute runs the numeric kernel with the right payload rescaled.
func execute(left *darray.DataArray, op Op, right Operand, rescale unit.Conversion) (*darray.DataArray, error) {
	kernel := kernels[op]
	if right.array != nil {
		return left.Zip(right.array.Map(rescale.Apply), kernel)
	}
	return left.ZipScalar(rescale.Apply(right.value), kernel), nil
}

// Add performs left + right considering units.
func Add(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpAdd, right)
}

// Sub performs left - right considering units.
func Sub(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpSub, right)
}

// Mul performs left * right considering units.
func Mul(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpMul, right)
}

// Div performs left / right considering units.
func Div(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpDiv, right)
}

// FloorDiv performs floor(left / right) considering units.
func FloorDiv(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpFloorDiv, right)
}

// Mod performs left mod right considering units.
func Mod(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpMod, right)
}

// Pow performs left ** right; the exponent must be dimensionless.
func Pow(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpPow, right)
}

// Lt performs left < right considering units.
func Lt(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpLt, right)
}

// Le performs left <= right considering units.
func Le(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpLe, right)
}

// Eq performs left == right considering units.
func Eq(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpEq, right)
}

// Ne performs left != right considering units.
func Ne(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpNe, right)
}

// Ge performs left >= right considering units.
func Ge(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpGe, right)
}

// Gt performs left > right considering units.
func Gt(left *darray.DataArray, right Operand) (*darray.DataArray, error) {
	return Take(left, OpGt, right)
}
