// Package quantity implements the unit-aware methods over a DataArray:
// attaching and removing the units attribute, converting between units
// (optionally through an equivalency), decomposing into SI bases, and
// reformatting the units string.
//
// Every function returns a new array; inputs are never mutated, and a
// failing conversion performs no numeric work. Units ride in the
// array's attribute map under the key "units", so any serialization of
// the array carries them automatically.
package quantity

import (
	"github.com/astropenguin/xarray-units/darray"
	"github.com/astropenguin/xarray-units/errors"
	"github.com/astropenguin/xarray-units/logger"
	"github.com/astropenguin/xarray-units/unit"
)

// UnitsAttr is the attribute key units are stored under. This is the
// only serialized contract of the units layer.
const UnitsAttr = "units"

// UnitsOf returns the parsed units of an array. An absent attribute is
// a valid state (ok is false); a present but unparseable attribute
// fails with ErrUnitsNotValid.
func UnitsOf(da *darray.DataArray) (unit.Unit, bool, error) {
	text, found := da.Attr(UnitsAttr)
	if !found {
		return unit.Unit{}, false, nil
	}
	u, err := unit.Parse(text)
	if err != nil {
		return unit.Unit{}, false, errors.Wrapf(err, "array %q", da.Name())
	}
	return u, true, nil
}

// MustUnitsOf is the strict form of UnitsOf: an absent attribute fails
// with ErrUnitsNotFound.
func MustUnitsOf(da *darray.DataArray) (unit.Unit, error) {
	u, ok, err := UnitsOf(da)
	if err != nil {
		return unit.Unit{}, err
	}
	if !ok {
		return unit.Unit{}, errors.Wrapf(errors.ErrUnitsNotFound, "array %q", da.Name())
	}
	return u, nil
}

// Set attaches units to an array, storing the given text verbatim.
// It fails with ErrUnitsNotValid when the text does not parse, and with
// ErrUnitsExist when units are already present and overwrite is false.
func Set(da *darray.DataArray, text string, overwrite bool) (*darray.DataArray, error) {
	if _, err := unit.Parse(text); err != nil {
		return nil, errors.Wrapf(err, "array %q", da.Name())
	}
	if !overwrite {
		if existing, found := da.Attr(UnitsAttr); found {
			return nil, errors.Wrapf(errors.ErrUnitsExist,
				"array %q already has units %q", da.Name(), existing)
		}
	}
	return da.AssignAttrs(map[string]string{UnitsAttr: text}), nil
}

// Unset removes the units attribute. Idempotent, never fails.
func Unset(da *darray.DataArray) *darray.DataArray {
	return da.DropAttr(UnitsAttr)
}

// Rescale is the outcome Apply imposes on an array: the replacement
// units text and the conversion applied to the payload.
type Rescale struct {
	Units string
	Conv  unit.Conversion
}

// Apply is the generic unit-aware transform the named methods funnel
// through. fn receives the array's current units and decides the
// rescale; it runs before any payload element is touched, so a failing
// fn leaves everything untouched.
func Apply(da *darray.DataArray, fn func(current unit.Unit) (Rescale, error)) (*darray.DataArray, error) {
	current, err := MustUnitsOf(da)
	if err != nil {
		return nil, err
	}
	r, err := fn(current)
	if err != nil {
		return nil, err
	}
	return Set(da.Map(r.Conv.Apply), r.Units, true)
}

// To converts an array into the given units, storing the target text
// verbatim. Fails with ErrUnitsNotFound when the array carries no
// units and ErrUnitsConversion when no conversion path exists, even
// through the supplied equivalency.
func To(da *darray.DataArray, text string, eq *unit.Equivalency) (*darray.DataArray, error) {
	target, err := unit.Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "array %q", da.Name())
	}
	return Apply(da, func(current unit.Unit) (Rescale, error) {
		conv, err := unit.Convert(current, target, eq)
		if err != nil {
			return Rescale{}, errors.Wrapf(err, "array %q", da.Name())
		}
		if factor, ok := conv.Factor(); ok {
			logger.Logger.Debugw("converting units",
				logger.FieldFromUnits, current.String(),
				logger.FieldToUnits, text,
				logger.FieldFactor, factor,
			)
		}
		return Rescale{Units: text, Conv: conv}, nil
	})
}

// Decompose converts an array into the SI base form of its units,
// rescaling the payload by the decomposition factor and re-tagging
// with the canonical base string.
func Decompose(da *darray.DataArray) (*darray.DataArray, error) {
	return Apply(da, func(current unit.Unit) (Rescale, error) {
		dec := unit.Decompose(current)
		factor, err := unit.Factor(current, dec)
		if err != nil {
			return Rescale{}, errors.Wrapf(err, "array %q", da.Name())
		}
		return Rescale{Units: dec.String(), Conv: unit.Scalar(factor)}, nil
	})
}

// Like converts an array into the units of another array. Fails with
// ErrUnitsNotFound when either side lacks units.
func Like(da, other *darray.DataArray, eq *unit.Equivalency) (*darray.DataArray, error) {
	if _, err := MustUnitsOf(other); err != nil {
		return nil, err
	}
	text, _ := other.Attr(UnitsAttr)
	return To(da, text, eq)
}

// Format re-tags an array with its units rendered in the named format.
// The payload is untouched. Non-generic formats are display forms and
// are exempt from the attribute-reparses invariant.
func Format(da *darray.DataArray, format unit.Format) (*darray.DataArray, error) {
	current, err := MustUnitsOf(da)
	if err != nil {
		return nil, err
	}
	rendered, err := unit.Render(current, format)
	if err != nil {
		return nil, errors.Wrapf(err, "array %q", da.Name())
	}
	return da.AssignAttrs(map[string]string{UnitsAttr: rendered}), nil
}
