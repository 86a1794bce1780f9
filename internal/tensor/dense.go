// Package tensor implements the dense numeric arrays underlying the layer
// catalog: shapes, creation helpers, broadcasting element-wise arithmetic,
// and BLAS-backed matrix products.
//
// Tensors are immutable-by-convention: operations return new tensors (or
// explicit views) instead of writing through their receivers, which keeps
// layer evaluation referentially transparent.
package tensor

import (
	"fmt"
)

// Dense is a dense, row-major tensor with element type T.
//
// Data is laid out contiguously with the first axis outermost, so a slice of
// leading-axis rows is always a contiguous view.
type Dense[T Float] struct {
	shape  Shape
	data   []T
	device Device
}

func newDense[T Float](shape Shape) *Dense[T] {
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("tensor: invalid shape %v: %v", shape, err))
	}
	return &Dense[T]{
		shape:  shape.Clone(),
		data:   make([]T, shape.NumElements()),
		device: CPU,
	}
}

// Zeros creates a tensor filled with zeros.
func Zeros[T Float](shape Shape) *Dense[T] {
	return newDense[T](shape)
}

// Ones creates a tensor filled with ones.
func Ones[T Float](shape Shape) *Dense[T] {
	return Full[T](shape, 1)
}

// Full creates a tensor filled with a specific value.
func Full[T Float](shape Shape, value T) *Dense[T] {
	t := newDense[T](shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Eye creates an n×n identity matrix.
func Eye[T Float](n int) *Dense[T] {
	t := newDense[T](Shape{n, n})
	for i := 0; i < n; i++ {
		t.data[i*n+i] = 1
	}
	return t
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
//
// Returns an error when the slice length does not match the shape.
func FromSlice[T Float](data []T, shape Shape) (*Dense[T], error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, shape.NumElements())
	}
	t := newDense[T](shape)
	copy(t.data, data)
	return t, nil
}

// MustFromSlice is FromSlice that panics on error. Intended for literals in
// examples and tests.
func MustFromSlice[T Float](data []T, shape Shape) *Dense[T] {
	t, err := FromSlice(data, shape)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}
	return t
}

// Shape returns the tensor's shape. The caller must not mutate it.
func (t *Dense[T]) Shape() Shape {
	return t.shape
}

// Data returns the backing slice in row-major order.
func (t *Dense[T]) Data() []T {
	return t.data
}

// Device returns the device tag.
func (t *Dense[T]) Device() Device {
	return t.device
}

// NumElements returns the total number of elements.
func (t *Dense[T]) NumElements() int {
	return t.shape.NumElements()
}

// Rank returns the number of axes.
func (t *Dense[T]) Rank() int {
	return len(t.shape)
}

// At returns the element at the given indices.
func (t *Dense[T]) At(indices ...int) T {
	return t.data[t.offset(indices)]
}

// Set writes the element at the given indices.
func (t *Dense[T]) Set(value T, indices ...int) {
	t.data[t.offset(indices)] = value
}

func (t *Dense[T]) offset(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("tensor: expected %d indices for shape %v, got %d",
			len(t.shape), t.shape, len(indices)))
	}
	strides := t.shape.ComputeStrides()
	off := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("tensor: index %d out of range for axis %d of shape %v", idx, i, t.shape))
		}
		off += idx * strides[i]
	}
	return off
}

// Clone returns a deep copy.
func (t *Dense[T]) Clone() *Dense[T] {
	c := newDense[T](t.shape)
	copy(c.data, t.data)
	c.device = t.device
	return c
}

// To returns a copy of the tensor tagged with the given device.
//
// The core computes on CPU only; relocators for other targets live outside
// this package and replace the backing array as part of the copy.
func (t *Dense[T]) To(device Device) *Dense[T] {
	c := t.Clone()
	c.device = device
	return c
}

// String renders a compact description, not the full contents.
func (t *Dense[T]) String() string {
	return fmt.Sprintf("Dense%v@%s", t.shape, t.device)
}
