// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"github.com/ritz-ml/ritz/internal/tensor"
)

// Type aliases for public API

// Float is the constraint for tensor element types.
// Supported types: float32, float64.
type Float = tensor.Float

// Device tags where tensor data resides.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	CUDA   Device = tensor.CUDA
	Metal  Device = tensor.Metal
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{6, 128} is a matrix of 6 features by 128 samples.
type Shape = tensor.Shape

// Dense is a dense, row-major tensor of element type T.
//
// The layer catalog follows a column-sample convention: axis 0 indexes
// features and the remaining axes index batch samples, so a matrix
// input holds one sample per column.
//
// Example:
//
//	x := tensor.Zeros[float64](tensor.Shape{2, 3})
//	y := tensor.Ones[float64](tensor.Shape{2, 3})
//	z := x.Add(y) // Element-wise addition
type Dense[T Float] = tensor.Dense[T]

// Creation functions

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	x := tensor.Zeros[float64](tensor.Shape{2, 3})
func Zeros[T Float](shape Shape) *Dense[T] {
	return tensor.Zeros[T](shape)
}

// Ones creates a tensor filled with ones.
//
// Example:
//
//	x := tensor.Ones[float64](tensor.Shape{2, 3})
func Ones[T Float](shape Shape) *Dense[T] {
	return tensor.Ones[T](shape)
}

// Full creates a tensor with every element set to value.
//
// Example:
//
//	x := tensor.Full[float64](tensor.Shape{2, 3}, 3.14)
func Full[T Float](shape Shape, value T) *Dense[T] {
	return tensor.Full[T](shape, value)
}

// Eye creates an n by n identity matrix.
//
// Example:
//
//	identity := tensor.Eye[float64](3)
func Eye[T Float](n int) *Dense[T] {
	return tensor.Eye[T](n)
}

// FromSlice creates a tensor from a Go slice. The data is copied.
//
// Returns an error when the slice length does not match the shape.
//
// Example:
//
//	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
func FromSlice[T Float](data []T, shape Shape) (*Dense[T], error) {
	return tensor.FromSlice[T](data, shape)
}

// MustFromSlice is FromSlice that panics on error, for literals in
// tests and examples.
func MustFromSlice[T Float](data []T, shape Shape) *Dense[T] {
	return tensor.MustFromSlice[T](data, shape)
}

// Manipulation functions

// Cat concatenates tensors along a dimension.
//
// Example:
//
//	a := tensor.Ones[float64](tensor.Shape{2, 3})
//	b := tensor.Zeros[float64](tensor.Shape{2, 3})
//	c := tensor.Cat([]*tensor.Dense[float64]{a, b}, 0) // Shape: [4, 3]
func Cat[T Float](tensors []*Dense[T], dim int) *Dense[T] {
	return tensor.Cat(tensors, dim)
}

// BroadcastShapes computes the NumPy-style broadcast result of two
// shapes. The boolean reports whether broadcasting was required.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	return tensor.BroadcastShapes(a, b)
}
