// Package darray provides the reference array container the units layer
// operates on: a dense float64 payload with named dimensions, a string
// attribute map, and named coordinate arrays carrying attribute maps of
// their own.
//
// DataArray values behave immutably: every operation returns a new
// array, copying the attribute and coordinate maps on write. Elementwise
// transforms are pure functions, so they compose with whatever execution
// model a real array backend brings.
package darray

import (
	"math"
	"slices"

	"github.com/astropenguin/xarray-units/errors"
)

// DataArray is a dense multidimensional array with attributes and
// named coordinates.
type DataArray struct {
	name   string
	data   []float64
	dims   []string
	shape  []int
	attrs  map[string]string
	coords map[string]*DataArray
}

// New creates a DataArray. The data length must match the shape
// product, and dims must name each axis of the shape.
func New(name string, data []float64, dims []string, shape []int) (*DataArray, error) {
	if len(dims) != len(shape) {
		return nil, errors.Newf("array %q: %d dims for %d axes", name, len(dims), len(shape))
	}
	size := 1
	for _, n := range shape {
		if n < 0 {
			return nil, errors.Newf("array %q: negative axis length %d", name, n)
		}
		size *= n
	}
	if len(data) != size {
		return nil, errors.Newf("array %q: %d values for shape %v", name, len(data), shape)
	}
	return &DataArray{
		name:  name,
		data:  slices.Clone(data),
		dims:  slices.Clone(dims),
		shape: slices.Clone(shape),
	}, nil
}

// FromValues creates a one-dimensional DataArray over dimension "x".
func FromValues(name string, values ...float64) *DataArray {
	da, err := New(name, values, []string{"x"}, []int{len(values)})
	if err != nil {
		panic(err) // unreachable: shape always matches
	}
	return da
}

// Name returns the array name.
func (da *DataArray) Name() string { return da.name }

// Shape returns a copy of the axis lengths.
func (da *DataArray) Shape() []int { return slices.Clone(da.shape) }

// Dims returns a copy of the axis names.
func (da *DataArray) Dims() []string { return slices.Clone(da.dims) }

// Dtype reports the element type of the payload.
func (da *DataArray) Dtype() string { return "float64" }

// Size returns the number of elements.
func (da *DataArray) Size() int { return len(da.data) }

// Values returns a copy of the flattened payload.
func (da *DataArray) Values() []float64 { return slices.Clone(da.data) }

// Attr reads one attribute.
func (da *DataArray) Attr(key string) (string, bool) {
	v, ok := da.attrs[key]
	return v, ok
}

// Attrs returns a copy of the attribute map.
func (da *DataArray) Attrs() map[string]string {
	out := make(map[string]string, len(da.attrs))
	for k, v := range da.attrs {
		out[k] = v
	}
	return out
}

// AssignAttrs returns a new array with the given attributes merged in.
func (da *DataArray) AssignAttrs(attrs map[string]string) *DataArray {
	out := da.shallow()
	out.attrs = da.Attrs()
	for k, v := range attrs {
		out.attrs[k] = v
	}
	return out
}

// DropAttr returns a new array without the given attribute. Dropping an
// absent attribute is a no-op.
func (da *DataArray) DropAttr(key string) *DataArray {
	out := da.shallow()
	out.attrs = da.Attrs()
	delete(out.attrs, key)
	return out
}

// Coord returns a named coordinate array.
func (da *DataArray) Coord(name string) (*DataArray, bool) {
	c, ok := da.coords[name]
	return c, ok
}

// CoordNames returns the coordinate names in sorted order.
func (da *DataArray) CoordNames() []string {
	names := make([]string, 0, len(da.coords))
	for name := range da.coords {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// AssignCoord returns a new array with the named coordinate replaced.
func (da *DataArray) AssignCoord(name string, coord *DataArray) *DataArray {
	out := da.shallow()
	out.coords = make(map[string]*DataArray, len(da.coords)+1)
	for k, v := range da.coords {
		out.coords[k] = v
	}
	out.coords[name] = coord
	return out
}

// Map returns a new array with fn applied to every element. fn must be
// a pure function of its argument.
func (da *DataArray) Map(fn func(float64) float64) *DataArray {
	out := da.shallow()
	out.data = make([]float64, len(da.data))
	for i, x := range da.data {
		out.data[i] = fn(x)
	}
	return out
}

// Zip returns a new array combining two same-shape arrays elementwise.
// The result keeps the receiver's name, attributes, and coordinates.
func (da *DataArray) Zip(other *DataArray, fn func(a, b float64) float64) (*DataArray, error) {
	if !slices.Equal(da.shape, other.shape) {
		return nil, errors.Newf("shape mismatch: %v vs %v", da.shape, other.shape)
	}
	out := da.shallow()
	out.data = make([]float64, len(da.data))
	for i, x := range da.data {
		out.data[i] = fn(x, other.data[i])
	}
	return out, nil
}

// ZipScalar returns a new array combining every element with a scalar.
func (da *DataArray) ZipScalar(x float64, fn func(a, b float64) float64) *DataArray {
	return da.Map(func(a float64) float64 { return fn(a, x) })
}

// Equal reports exact equality of payload, dims, shape, attributes,
// and coordinates.
func (da *DataArray) Equal(other *DataArray) bool {
	if !slices.Equal(da.data, other.data) ||
		!slices.Equal(da.dims, other.dims) ||
		!slices.Equal(da.shape, other.shape) {
		return false
	}
	if len(da.attrs) != len(other.attrs) {
		return false
	}
	for k, v := range da.attrs {
		if ov, ok := other.attrs[k]; !ok || ov != v {
			return false
		}
	}
	if len(da.coords) != len(other.coords) {
		return false
	}
	for k, c := range da.coords {
		oc, ok := other.coords[k]
		if !ok || !c.Equal(oc) {
			return false
		}
	}
	return true
}

// AllClose reports whether two arrays have the same shape and all
// elements within the absolute tolerance.
func (da *DataArray) AllClose(other *DataArray, atol float64) bool {
	if !slices.Equal(da.shape, other.shape) {
		return false
	}
	for i, x := range da.data {
		if math.Abs(x-other.data[i]) > atol {
			return false
		}
	}
	return true
}

// shallow copies the array value sharing payload, attrs, and coords.
// Callers replace whichever parts they change.
func (da *DataArray) shallow() *DataArray {
	out := *da
	return &out
}
