package unit

import (
	"testing"

	"github.com/astropenguin/xarray-units/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFormats(t *testing.T) {
	u := MustParse("km / s")

	tests := []struct {
		format Format
		want   string
	}{
		{FormatGeneric, "km s-1"},
		{FormatConsole, "km s^-1"},
		{FormatUnicode, "km s⁻¹"},
		{FormatLatex, `$\mathrm{km\,s^{-1}}$`},
	}

	for _, tt := range tests {
		got, err := Render(u, tt.format)
		if err != nil {
			t.Errorf("Render(%q) failed: %v", tt.format, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Render(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestRenderDimensionless(t *testing.T) {
	for _, format := range []Format{FormatGeneric, FormatConsole, FormatUnicode} {
		got, err := Render(Dimensionless, format)
		require.NoError(t, err)
		assert.Equal(t, "1", got)
	}

	latex, err := Render(Dimensionless, FormatLatex)
	require.NoError(t, err)
	assert.Equal(t, `$\mathrm{1}$`, latex)
}

func TestRenderOrdersNegativeExponentsLast(t *testing.T) {
	// "/ s * m" parses with the inverted term first
	u := MustParse("/ s * m")

	got, err := Render(u, FormatGeneric)
	require.NoError(t, err)
	assert.Equal(t, "m s-1", got)
}

func TestRenderGenericReparses(t *testing.T) {
	for _, text := range []string{"km / s", "W m-2", "kg m2 / s3", "eV", "1"} {
		u := MustParse(text)
		rendered, err := Render(u, FormatGeneric)
		require.NoError(t, err)

		reparsed, err := Parse(rendered)
		require.NoError(t, err, "generic render %q of %q should reparse", rendered, text)
		assert.True(t, Equal(u, reparsed), "%q does not survive a generic render round-trip", text)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(MustParse("m"), Format("fits"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrFormatUnknown))
}

func TestFormatsListsKnownNames(t *testing.T) {
	formats := Formats()
	assert.Len(t, formats, 4)

	for _, f := range formats {
		if _, err := Render(MustParse("m"), f); err != nil {
			t.Errorf("Render with listed format %q failed: %v", f, err)
		}
	}
}
