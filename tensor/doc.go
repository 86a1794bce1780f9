// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense numeric arrays the Ritz layer
// catalog is built on.
//
// # Overview
//
// Tensors are row-major, CPU-resident arrays with a compile-time
// element type. This package provides:
//   - Generic type-safe tensors (Dense[T])
//   - NumPy-style broadcasting for elementwise operations
//   - BLAS-backed matrix multiplication
//   - Zero-copy reshapes and row views
//
// # Basic Usage
//
//	import "github.com/ritz-ml/ritz/tensor"
//
//	func main() {
//	    x := tensor.Zeros[float64](tensor.Shape{2, 3})
//	    y := tensor.Ones[float64](tensor.Shape{2, 3})
//
//	    z := x.Add(y)
//	    w := tensor.Eye[float64](2).MatMul(z)
//	    _ = w
//	}
//
// # Axis Convention
//
// Layers consume inputs feature-first: a shape (in_dims, n) matrix
// holds n samples as columns. Rank-1 inputs are treated as a single
// sample, higher-rank inputs as (in_dims, batch...) blocks.
//
// # Broadcasting
//
// Elementwise operations follow NumPy broadcasting rules:
//
//	a := tensor.Zeros[float64](tensor.Shape{3, 1}) // (3, 1)
//	b := tensor.Ones[float64](tensor.Shape{3, 4})  // (3, 4)
//	c := a.Add(b)                                  // (3, 4)
//
// # Element Types
//
// The Float constraint admits float32 and float64. Matrix products
// dispatch to gonum's blas32 or blas64 accordingly.
//
// # Devices
//
// Every tensor carries a Device tag. The numeric kernels in this
// package run on the CPU; the tag exists so higher-level containers
// can be traversed and relocated by a back-end outside the core.
package tensor
