// Package accessor provides the units accessor: a single-use handle
// over a DataArray that dispatches unit-aware methods and operators,
// optionally chained over a fixed number of calls and optionally
// targeted at named coordinates instead of the array itself.
//
// A handle is ARMED when calls remain and INERT once the chain is
// consumed. Every dispatch consumes the receiving handle and returns a
// fresh one carrying the result, so chain state is owned and explicit;
// reusing a consumed handle fails with ErrChainConfig rather than
// silently cross-talking between chains.
//
// Usage:
//
//	u, err := accessor.Of(da, accessor.WithChain(2))
//	u, err = u.Set("km")
//	u, err = u.To("m")     // chain consumed here
//	result := u.DataArray()
package accessor

import (
	"slices"

	"github.com/astropenguin/xarray-units/darray"
	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/operator"
	"github.com/astropenguin/xarray-units/quantity"
	"github.com/astropenguin/xarray-units/unit"
)

// Units is the accessor handle. The zero value is not usable; build
// handles with Of.
type Units struct {
	accessed *darray.DataArray
	chain    int      // remaining unit-aware calls
	of       []string // coordinate targets, empty means the array itself
	started  bool     // at least one call dispatched in this chain
	spent    bool     // this handle already dispatched its call
}

// Option configures an accessor handle.
type Option func(*Units) error

// WithChain sets the number of subsequent unit-aware calls the handle
// intercepts. Counts below one fail with ErrChainConfig.
func WithChain(n int) Option {
	return func(u *Units) error {
		if n < 1 {
			return errors.NewChainConfig("chain must be a positive integer, got %d", n)
		}
		u.chain = n
		return nil
	}
}

// WithCoords targets the named coordinates instead of the array
// itself: each dispatched call applies to every listed coordinate
// independently, and the result is the array with those coordinates
// updated.
func WithCoords(names ...string) Option {
	return func(u *Units) error {
		if len(names) == 0 {
			return errors.NewChainConfig("at least one coordinate name is required")
		}
		u.of = slices.Clone(names)
		return nil
	}
}

// Of builds a units accessor of a DataArray. The default chain length
// is one: a single unit-aware call, then the handle is inert.
func Of(da *darray.DataArray, opts ...Option) (*Units, error) {
	u := &Units{accessed: da, chain: 1}
	for _, opt := range opts {
		if err := opt(u); err != nil {
			return nil, err
		}
	}
	return u, nil
}

// With returns a reconfigured copy of the handle. Configuration is a
// one-time setup step: reconfiguring after the chain has started fails
// with ErrChainConfig.
func (u *Units) With(opts ...Option) (*Units, error) {
	if u.started || u.spent {
		return nil, errors.NewChainConfig("cannot reconfigure a chain that has started")
	}
	out := &Units{accessed: u.accessed, chain: u.chain, of: slices.Clone(u.of)}
	for _, opt := range opts {
		if err := opt(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DataArray unwraps the array the handle carries.
func (u *Units) DataArray() *darray.DataArray { return u.accessed }

// Remaining returns how many unit-aware calls the handle still
// intercepts.
func (u *Units) Remaining() int {
	if u.spent {
		return 0
	}
	return u.chain
}

// Armed reports whether the handle still intercepts calls.
func (u *Units) Armed() bool { return u.Remaining() > 0 }

// dispatch consumes the handle, applies fn to the array or to each
// targeted coordinate, and returns the successor handle. Calls are
// applied strictly in the order dispatched; a failing call leaves the
// input arrays untouched and the chain does not continue past it.
func (u *Units) dispatch(fn func(*darray.DataArray) (*darray.DataArray, error)) (*Units, error) {
	if u.spent {
		return nil, errors.NewChainConfig("accessor handle already consumed")
	}
	if u.chain < 1 {
		return nil, errors.NewChainConfig("chain is inert; invoke a fresh accessor")
	}
	u.spent = true

	da := u.accessed
	if len(u.of) == 0 {
		out, err := fn(da)
		if err != nil {
			return nil, err
		}
		da = out
	} else {
		for _, name := range u.of {
			coord, ok := da.Coord(name)
			if !ok {
				return nil, errors.Newf("coordinate %q not found in array %q", name, u.accessed.Name())
			}
			out, err := fn(coord)
			if err != nil {
				return nil, err
			}
			da = da.AssignCoord(name, out)
		}
	}

	return &Units{accessed: da, chain: u.chain - 1, of: u.of, started: true}, nil
}

// Set validates and attaches units, failing with ErrUnitsExist when
// units are already present.
func (u *Units) Set(text string) (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return quantity.Set(da, text, false)
	})
}

// SetOver attaches units, overwriting any existing ones.
func (u *Units) SetOver(text string) (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return quantity.Set(da, text, true)
	})
}

// Unset removes the units attribute; a no-op when absent.
func (u *Units) Unset() (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return quantity.Unset(da), nil
	})
}

// To converts into the given units.
func (u *Units) To(text string) (*Units, error) {
	return u.ToWith(text, nil)
}

// ToWith converts into the given units through an equivalency.
func (u *Units) ToWith(text string, eq *unit.Equivalency) (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return quantity.To(da, text, eq)
	})
}

// Decompose converts into the SI base form of the current units.
func (u *Units) Decompose() (*Units, error) {
	return u.dispatch(quantity.Decompose)
}

// Like converts into the units of another array.
func (u *Units) Like(other *darray.DataArray) (*Units, error) {
	return u.LikeWith(other, nil)
}

// LikeWith converts into the units of another array through an
// equivalency.
func (u *Units) LikeWith(other *darray.DataArray, eq *unit.Equivalency) (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return quantity.Like(da, other, eq)
	})
}

// Format re-tags with the units rendered in the named format. With
// coordinate targets, every listed coordinate is formatted in its own
// current units.
func (u *Units) Format(format unit.Format) (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return quantity.Format(da, format)
	})
}

// Do dispatches an arbitrary array transform through the chain, so
// transforms the surface does not name still consume a call and honor
// coordinate targets.
func (u *Units) Do(fn func(*darray.DataArray) (*darray.DataArray, error)) (*Units, error) {
	return u.dispatch(fn)
}

// Apply dispatches one binary operation by name; the operator methods
// below are ergonomic wrappers over it.
func (u *Units) Apply(op operator.Op, right operator.Operand) (*Units, error) {
	return u.dispatch(func(da *darray.DataArray) (*darray.DataArray, error) {
		return operator.Take(da, op, right)
	})
}

// Add performs accessed + right considering units.
func (u *Units) Add(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpAdd, right)
}

// Sub performs accessed - right considering units.
func (u *Units) Sub(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpSub, right)
}

// Mul performs accessed * right considering units.
func (u *Units) Mul(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpMul, right)
}

// Div performs accessed / right considering units.
func (u *Units) Div(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpDiv, right)
}

// FloorDiv performs floor(accessed / right) considering units.
func (u *Units) FloorDiv(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpFloorDiv, right)
}

// Mod performs accessed mod right considering units.
func (u *Units) Mod(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpMod, right)
}

// Pow performs accessed ** right; the exponent must be dimensionless.
func (u *Units) Pow(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpPow, right)
}

// Lt performs accessed < right considering units.
func (u *Units) Lt(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpLt, right)
}

// Le performs accessed <= right considering units.
func (u *Units) Le(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpLe, right)
}

// Eq performs accessed == right considering units.
func (u *Units) Eq(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpEq, right)
}

// Ne performs accessed != right considering units.
func (u *Units) Ne(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpNe, right)
}

// Ge performs accessed >= right considering units.
func (u *Units) Ge(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpGe, right)
}

// Gt performs accessed > right considering units.
func (u *Units) Gt(right operator.Operand) (*Units, error) {
	return u.Apply(operator.OpGt, right)
}
