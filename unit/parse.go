package unit

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/astropenguin/xarray-units/errors"
)

// Parse parses a unit expression into a Unit.
//
// Grammar: terms separated by whitespace, "*", or "/". A term is an
// optionally prefixed registry symbol with an optional integer
// exponent, written either with a caret ("s^-1") or plainly ("s-1",
// "m2"). "/" applies to the single following term, so "kg / s m" is
// kg·m/s. The literal "1" is the dimensionless unit.
//
// Empty or blank text is not a unit and fails with ErrUnitsNotValid,
// as does any unknown symbol or malformed exponent.
func Parse(text string) (Unit, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return Unit{}, errors.Wrap(errors.ErrUnitsNotValid, "empty units")
	}

	result := Dimensionless
	invert := false
	expectTerm := true

	for _, tok := range tokens {
		switch tok {
		case "*":
			if expectTerm {
				return Unit{}, errors.NewUnitsNotValid("misplaced %q in %q", tok, text)
			}
			expectTerm = true
		case "/":
			if invert {
				return Unit{}, errors.NewUnitsNotValid("misplaced %q in %q", tok, text)
			}
			invert = true
			expectTerm = true
		default:
			term, err := parseTerm(tok, text)
			if err != nil {
				return Unit{}, err
			}
			if invert {
				result = Div(result, term)
			} else {
				result = Mul(result, term)
			}
			invert = false
			expectTerm = false
		}
	}
	if expectTerm {
		return Unit{}, errors.NewUnitsNotValid("truncated expression %q", text)
	}
	return result, nil
}

// MustParse is Parse for expressions known to be valid. It panics on
// error and exists for tests and package-level constants.
func MustParse(text string) Unit {
	u, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return u
}

// tokenize splits an expression into term and operator tokens.
func tokenize(text string) []string {
	text = strings.ReplaceAll(text, "*", " * ")
	text = strings.ReplaceAll(text, "/", " / ")
	return strings.Fields(text)
}

// parseTerm parses a single factor like "km", "s^-1", or "m2" into a
// one-term Unit.
func parseTerm(word, expr string) (Unit, error) {
	if word == "1" {
		return Dimensionless, nil
	}

	// Split the symbol part (letters) from the exponent part
	split := len(word)
	for i, r := range word {
		if !unicode.IsLetter(r) && r != '_' {
			split = i
			break
		}
	}
	symbol, expText := word[:split], word[split:]
	if symbol == "" {
		return Unit{}, errors.NewUnitsNotValid("term %q in %q has no unit symbol", word, expr)
	}

	exp := 1
	if expText != "" {
		expText = strings.TrimPrefix(expText, "^")
		n, err := strconv.Atoi(expText)
		if err != nil || n == 0 {
			return Unit{}, errors.NewUnitsNotValid("bad exponent %q in %q", word, expr)
		}
		exp = n
	}

	prefix, factor, def, ok := resolveSymbol(symbol)
	if !ok {
		return Unit{}, errors.NewUnitsNotValid("unknown unit %q in %q", symbol, expr)
	}

	u := Unit{
		terms: []Term{{Prefix: prefix, Symbol: def.Symbol, Exp: exp}},
		scale: 1,
	}
	for i := 0; i < abs(exp); i++ {
		if exp > 0 {
			u.scale *= factor * def.Scale
			u.dims = u.dims.Add(def.dims)
		} else {
			u.scale /= factor * def.Scale
			u.dims = u.dims.Sub(def.dims)
		}
	}
	return u, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
