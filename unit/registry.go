package unit

import (
	_ "embed"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed tables/units.toml
var unitsTOML []byte

// unitDef is one [[unit]] entry of tables/units.toml.
type unitDef struct {
	Symbol     string         `toml:"symbol"`
	Aliases    []string       `toml:"aliases"`
	Scale      float64        `toml:"scale"`
	Dims       map[string]int `toml:"dims"`
	Prefixable bool           `toml:"prefixable"`

	dims Dims // resolved dimension vector
}

// prefixDef is one [[prefix]] entry of tables/units.toml.
type prefixDef struct {
	Symbol  string   `toml:"symbol"`
	Aliases []string `toml:"aliases"`
	Factor  float64  `toml:"factor"`
}

type unitTable struct {
	Units    []unitDef   `toml:"unit"`
	Prefixes []prefixDef `toml:"prefix"`
}

// Lookup tables built from the embedded registry at init time.
var (
	symbolToDef     map[string]*unitDef // symbols and aliases
	prefixToFactor  map[string]float64  // prefix symbols and aliases
	prefixNames     []string            // prefix spellings, longest first
	registrySymbols []string            // canonical symbols in table order
)

func init() {
	var table unitTable
	if err := toml.Unmarshal(unitsTOML, &table); err != nil {
		panic("unit: embedded units.toml is malformed: " + err.Error())
	}

	symbolToDef = make(map[string]*unitDef, len(table.Units)*2)
	for i := range table.Units {
		def := &table.Units[i]
		if def.Scale == 0 {
			panic("unit: registry entry " + def.Symbol + " has zero scale")
		}
		for name, exp := range def.Dims {
			idx, ok := dimNames[name]
			if !ok {
				panic("unit: registry entry " + def.Symbol + " has unknown dimension " + name)
			}
			def.dims[idx] = exp
		}
		for _, name := range append([]string{def.Symbol}, def.Aliases...) {
			if _, dup := symbolToDef[name]; dup {
				panic("unit: duplicate registry symbol " + name)
			}
			symbolToDef[name] = def
		}
		registrySymbols = append(registrySymbols, def.Symbol)
	}

	prefixToFactor = make(map[string]float64, len(table.Prefixes)*2)
	for _, p := range table.Prefixes {
		for _, name := range append([]string{p.Symbol}, p.Aliases...) {
			if _, dup := prefixToFactor[name]; dup {
				panic("unit: duplicate registry prefix " + name)
			}
			prefixToFactor[name] = p.Factor
			prefixNames = append(prefixNames, name)
		}
	}
	// Longest first so "da" is tried before "d"
	sort.Slice(prefixNames, func(i, j int) bool {
		if len(prefixNames[i]) != len(prefixNames[j]) {
			return len(prefixNames[i]) > len(prefixNames[j])
		}
		return prefixNames[i] < prefixNames[j]
	})
}

// resolveSymbol maps a bare unit word (no exponent) to its registry
// definition, trying an exact symbol or alias match before a prefix
// split. Exact matches win so that "cd" is candela, never centi-day.
func resolveSymbol(word string) (prefix string, factor float64, def *unitDef, ok bool) {
	if def, found := symbolToDef[word]; found {
		return "", 1, def, true
	}
	for _, p := range prefixNames {
		if len(word) <= len(p) || word[:len(p)] != p {
			continue
		}
		if def, found := symbolToDef[word[len(p):]]; found && def.Prefixable {
			return p, prefixToFactor[p], def, true
		}
	}
	return "", 0, nil, false
}

// Symbols returns the canonical registry symbols in table order.
func Symbols() []string {
	out := make([]string, len(registrySymbols))
	copy(out, registrySymbols)
	return out
}

// Describe returns aliases and the dimension vector of a registry
// symbol, for listings.
func Describe(symbol string) (aliases []string, dims Dims, ok bool) {
	def, found := symbolToDef[symbol]
	if !found {
		return nil, Dims{}, false
	}
	return append([]string(nil), def.Aliases...), def.dims, true
}
