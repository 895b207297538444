package unit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/astropenguin/xarray-units/errors"
)

// Format names a unit output format.
type Format string

// The backend-defined format set. FormatGeneric is the only one whose
// output Parse accepts again.
const (
	FormatGeneric Format = "generic" // "km s-1"
	FormatConsole Format = "console" // "km s^-1"
	FormatUnicode Format = "unicode" // "km s⁻¹"
	FormatLatex   Format = "latex"   // "$\mathrm{km\,s^{-1}}$"
)

// Formats returns the known format names.
func Formats() []Format {
	return []Format{FormatGeneric, FormatConsole, FormatUnicode, FormatLatex}
}

// Render renders a unit in the named format. Unknown names fail with
// ErrFormatUnknown.
func Render(u Unit, format Format) (string, error) {
	switch format {
	case FormatGeneric:
		return renderTerms(u, func(t Term) string { return t.String() }, " "), nil
	case FormatConsole:
		return renderTerms(u, renderCaret, " "), nil
	case FormatUnicode:
		return renderTerms(u, renderSuperscript, " "), nil
	case FormatLatex:
		return renderLatex(u), nil
	default:
		return "", errors.Wrapf(errors.ErrFormatUnknown, "format %q", format)
	}
}

func renderTerms(u Unit, render func(Term) string, sep string) string {
	if len(u.terms) == 0 {
		return "1"
	}
	terms := sortTermsForDisplay(u.terms)
	parts := make([]string, len(terms))
	for i, t := range terms {
		parts[i] = render(t)
	}
	return strings.Join(parts, sep)
}

func renderCaret(t Term) string {
	if t.Exp == 1 {
		return t.Prefix + t.Symbol
	}
	return fmt.Sprintf("%s%s^%d", t.Prefix, t.Symbol, t.Exp)
}

// superscriptDigits maps ASCII digits and '-' to Unicode superscripts.
var superscriptDigits = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻',
}

func renderSuperscript(t Term) string {
	if t.Exp == 1 {
		return t.Prefix + t.Symbol
	}
	var sup strings.Builder
	for _, r := range strconv.Itoa(t.Exp) {
		sup.WriteRune(superscriptDigits[r])
	}
	return t.Prefix + t.Symbol + sup.String()
}

func renderLatex(u Unit) string {
	if len(u.terms) == 0 {
		return `$\mathrm{1}$`
	}
	terms := sortTermsForDisplay(u.terms)
	parts := make([]string, len(terms))
	for i, t := range terms {
		if t.Exp == 1 {
			parts[i] = t.Prefix + t.Symbol
		} else {
			parts[i] = fmt.Sprintf("%s%s^{%d}", t.Prefix, t.Symbol, t.Exp)
		}
	}
	return `$\mathrm{` + strings.Join(parts, `\,`) + `}$`
}
