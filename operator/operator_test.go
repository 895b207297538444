package operator

import (
	"testing"

	"github.com/astropenguin/xarray-units/darray"
	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/quantity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tagged(t *testing.T, units string, values ...float64) *darray.DataArray {
	t.Helper()
	da, err := quantity.Set(darray.FromValues("a", values...), units, false)
	require.NoError(t, err)
	return da
}

func unitsAttr(t *testing.T, da *darray.DataArray) string {
	t.Helper()
	text, _ := da.Attr(quantity.UnitsAttr)
	return text
}

func TestAddSameUnits(t *testing.T) {
	a := tagged(t, "m", 1, 2)
	b := tagged(t, "m", 10, 20)

	sum, err := Add(a, Array(b))
	require.NoError(t, err)

	assert.Equal(t, []float64{11, 22}, sum.Values())
	assert.Equal(t, "m", unitsAttr(t, sum))
}

func TestAddRescalesRightOperand(t *testing.T) {
	meters := tagged(t, "m", 1000, 2000)
	kilometers := tagged(t, "km", 1, 2)

	sum, err := Add(meters, Array(kilometers))
	require.NoError(t, err)

	assert.Equal(t, []float64{2000, 4000}, sum.Values())
	assert.Equal(t, "m", unitsAttr(t, sum))
}

func TestPrimaryOperandWins(t *testing.T) {
	// Same physical magnitude, different units
	meters := tagged(t, "m", 1000)
	kilometers := tagged(t, "km", 1)

	inMeters, err := Add(meters, Array(kilometers))
	require.NoError(t, err)
	assert.Equal(t, "m", unitsAttr(t, inMeters))
	assert.Equal(t, []float64{2000}, inMeters.Values())

	inKilometers, err := Add(kilometers, Array(meters))
	require.NoError(t, err)
	assert.Equal(t, "km", unitsAttr(t, inKilometers))
	assert.Equal(t, []float64{2}, inKilometers.Values())

	// Both results are physically equal regardless of operand order
	same, err := Eq(inMeters, Array(inKilometers))
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, same.Values())
}

func TestAddIncompatibleUnitsFailsBeforeComputing(t *testing.T) {
	length := tagged(t, "m", 1)
	duration := tagged(t, "s", 1)

	_, err := Add(length, Array(duration))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnitsConversion))

	// No partial computation: inputs untouched
	assert.Equal(t, []float64{1}, length.Values())
	assert.Equal(t, []float64{1}, duration.Values())
}

func TestAddQuantityOperand(t *testing.T) {
	a := tagged(t, "m", 1, 2)

	sum, err := Add(a, Quantity(1, "km"))
	require.NoError(t, err)

	assert.Equal(t, []float64{1001, 1002}, sum.Values())
	assert.Equal(t, "m", unitsAttr(t, sum))
}

func TestAddDimensionlessOperand(t *testing.T) {
	a := tagged(t, "m", 1, 2)

	sum, err := Add(a, Number(10))
	require.NoError(t, err)

	assert.Equal(t, []float64{11, 12}, sum.Values())
	assert.Equal(t, "m", unitsAttr(t, sum), "dimensionless operands participate without rescaling")
}

func TestUnitlessLeftAdoptsRightUnits(t *testing.T) {
	bare := darray.FromValues("a", 1, 2)
	united := tagged(t, "km", 10, 20)

	sum, err := Add(bare, Array(united))
	require.NoError(t, err)

	// No conversion path: right payload is passed through unscaled
	assert.Equal(t, []float64{11, 22}, sum.Values())
	assert.Equal(t, "km", unitsAttr(t, sum))
}

func TestSub(t *testing.T) {
	a := tagged(t, "km", 3)

	diff, err := Sub(a, Quantity(500, "m"))
	require.NoError(t, err)

	assert.Equal(t, []float64{2.5}, diff.Values())
	assert.Equal(t, "km", unitsAttr(t, diff))
}

func TestMulComposesUnits(t *testing.T) {
	speed := tagged(t, "m s-1", 10)

	distance, err := Mul(speed, Quantity(5, "s"))
	require.NoError(t, err)

	assert.Equal(t, []float64{50}, distance.Values())
	assert.Equal(t, "m", unitsAttr(t, distance), "s and s-1 cancel")
}

func TestMulByNumberKeepsUnits(t *testing.T) {
	a := tagged(t, "m", 1, 2)

	scaled, err := Mul(a, Number(3))
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 6}, scaled.Values())
	assert.Equal(t, "m", unitsAttr(t, scaled))
}

func TestDivComposesUnits(t *testing.T) {
	distance := tagged(t, "m", 100)

	speed, err := Div(distance, Quantity(10, "s"))
	require.NoError(t, err)

	assert.Equal(t, []float64{10}, speed.Values())
	assert.Equal(t, "m s-1", unitsAttr(t, speed))
}

func TestDivSameUnitsYieldsUnitless(t *testing.T) {
	a := tagged(t, "m", 10)
	b := tagged(t, "m", 4)

	ratio, err := Div(a, Array(b))
	require.NoError(t, err)

	assert.Equal(t, []float64{2.5}, ratio.Values())
	_, ok := ratio.Attr(quantity.UnitsAttr)
	assert.False(t, ok, "m / m is a pure number")
}

func TestFloorDivAndMod(t *testing.T) {
	a := tagged(t, "m", 7)

	quot, err := FloorDiv(a, Quantity(2, "m"))
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, quot.Values())
	assert.Equal(t, "m", unitsAttr(t, quot))

	rem, err := Mod(a, Quantity(2, "m"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, rem.Values())
	assert.Equal(t, "m", unitsAttr(t, rem))
}

func TestPow(t *testing.T) {
	side := tagged(t, "m", 3)

	area, err := Pow(side, Number(2))
	require.NoError(t, err)

	assert.Equal(t, []float64{9}, area.Values())
	assert.Equal(t, "m2", unitsAttr(t, area))
}

func TestPowRejectsUnitedExponent(t *testing.T) {
	side := tagged(t, "m", 3)

	_, err := Pow(side, Quantity(2, "s"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnitsConversion))
}

func TestPowNonIntegerOfDimensioned(t *testing.T) {
	side := tagged(t, "m", 4)

	_, err := Pow(side, Number(0.5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnitsConversion))
}

func TestComparisonsRescaleAndDropUnits(t *testing.T) {
	a := tagged(t, "m", 500, 1500, 1000)

	lt, err := Lt(a, Quantity(1, "km"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 0}, lt.Values())
	_, ok := lt.Attr(quantity.UnitsAttr)
	assert.False(t, ok, "comparison results carry no units")

	ge, err := Ge(a, Quantity(1, "km"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 1}, ge.Values())

	eq, err := Eq(a, Quantity(1, "km"))
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 1}, eq.Values())

	ne, err := Ne(a, Quantity(1, "km"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 0}, ne.Values())
}

func TestComparisonIncompatibleUnits(t *testing.T) {
	a := tagged(t, "m", 1)

	_, err := Eq(a, Quantity(1, "s"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnitsConversion))
}

func TestTakeUnknownOp(t *testing.T) {
	_, err := Take(tagged(t, "m", 1), Op("matmul"), Number(1))
	assert.Error(t, err)
}

func TestTakeShapeMismatch(t *testing.T) {
	a := tagged(t, "m", 1, 2)
	b := tagged(t, "m", 1, 2, 3)

	_, err := Add(a, Array(b))
	assert.Error(t, err)
}

func TestOpClassification(t *testing.T) {
	assert.True(t, OpMul.AnyUnits())
	assert.False(t, OpAdd.AnyUnits())
	assert.True(t, OpEq.Comparison())
	assert.False(t, OpMod.Comparison())
	assert.True(t, OpFloorDiv.Valid())
	assert.False(t, Op("matmul").Valid())
}
