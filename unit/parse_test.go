package unit

import (
	"testing"

	"github.com/astropenguin/xarray-units/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimple(t *testing.T) {
	u, err := Parse("m")
	require.NoError(t, err)

	assert.Equal(t, 1.0, u.Scale())
	assert.Equal(t, Dims{DimLength: 1}, u.Dims())
	assert.Equal(t, "m", u.String())
}

func TestParsePrefixed(t *testing.T) {
	tests := []struct {
		text  string
		scale float64
	}{
		{"km", 1e3},
		{"mm", 1e-3},
		{"cm", 1e-2},
		{"dam", 1e1},
		{"um", 1e-6},
		{"µm", 1e-6},
		{"nm", 1e-9},
	}

	for _, tt := range tests {
		u, err := Parse(tt.text)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.text, err)
			continue
		}
		if u.Scale() != tt.scale {
			t.Errorf("Parse(%q).Scale() = %v, want %v", tt.text, u.Scale(), tt.scale)
		}
		if u.Dims() != (Dims{DimLength: 1}) {
			t.Errorf("Parse(%q) has dims %v, want length", tt.text, u.Dims())
		}
	}
}

func TestParseAliases(t *testing.T) {
	for _, alias := range []string{"meter", "metre"} {
		u, err := Parse(alias)
		require.NoError(t, err)
		assert.True(t, Equal(u, MustParse("m")), "alias %q should equal m", alias)
		// Canonical symbol wins in the string form
		assert.Equal(t, "m", u.String())
	}
}

func TestParseExactSymbolBeatsPrefixSplit(t *testing.T) {
	// "cd" is candela, never centi-day; "min" is minute, never milli-in
	cd, err := Parse("cd")
	require.NoError(t, err)
	assert.Equal(t, Dims{DimLuminosity: 1}, cd.Dims())

	min, err := Parse("min")
	require.NoError(t, err)
	assert.Equal(t, Dims{DimTime: 1}, min.Dims())
	assert.Equal(t, 60.0, min.Scale())
}

func TestParseKilogram(t *testing.T) {
	// Mass is tracked in kg, so kg has scale 1 and g has scale 1e-3
	kg := MustParse("kg")
	assert.Equal(t, 1.0, kg.Scale())

	g := MustParse("g")
	assert.Equal(t, 1e-3, g.Scale())
}

func TestParseExponents(t *testing.T) {
	tests := []struct {
		text string
		dims Dims
	}{
		{"m2", Dims{DimLength: 2}},
		{"m^2", Dims{DimLength: 2}},
		{"s-1", Dims{DimTime: -1}},
		{"s^-1", Dims{DimTime: -1}},
		{"m3", Dims{DimLength: 3}},
	}

	for _, tt := range tests {
		u, err := Parse(tt.text)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", tt.text, err)
			continue
		}
		if u.Dims() != tt.dims {
			t.Errorf("Parse(%q) dims = %v, want %v", tt.text, u.Dims(), tt.dims)
		}
	}
}

func TestParseCompound(t *testing.T) {
	kmh, err := Parse("km / h")
	require.NoError(t, err)
	assert.Equal(t, Dims{DimLength: 1, DimTime: -1}, kmh.Dims())
	assert.InEpsilon(t, 1000.0/3600.0, kmh.Scale(), 1e-12)

	flux, err := Parse("W m-2")
	require.NoError(t, err)
	assert.Equal(t, Dims{DimMass: 1, DimTime: -3}, flux.Dims())

	// "/" binds to the single following term
	accel, err := Parse("m / s / s")
	require.NoError(t, err)
	assert.Equal(t, Dims{DimLength: 1, DimTime: -2}, accel.Dims())

	stars, err := Parse("kg * m2 / s3")
	require.NoError(t, err)
	assert.True(t, Equal(stars, MustParse("W")))
}

func TestParseDimensionlessLiteral(t *testing.T) {
	one, err := Parse("1")
	require.NoError(t, err)
	assert.True(t, one.IsDimensionless())
	assert.Equal(t, 1.0, one.Scale())
	assert.Equal(t, "1", one.String())
}

func TestParseInvalid(t *testing.T) {
	invalid := []string{
		"",
		"   ",
		"xyz",
		"m /",
		"m *",
		"* m",
		"m ** 2",
		"m^",
		"m^x",
		"m^0",
		"2m",
	}

	for _, text := range invalid {
		_, err := Parse(text)
		if err == nil {
			t.Errorf("Parse(%q) should fail", text)
			continue
		}
		if !errors.Is(err, errors.ErrUnitsNotValid) {
			t.Errorf("Parse(%q) error = %v, want ErrUnitsNotValid", text, err)
		}
	}
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a unit") })
	assert.NotPanics(t, func() { MustParse("km s-1") })
}
