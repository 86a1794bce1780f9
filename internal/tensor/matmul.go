package tensor

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

// MatMul performs 2-D matrix multiplication: (M, K) @ (K, N) → (M, N).
//
// The product is computed by gonum's BLAS reference implementation
// (single or double precision depending on T).
func (t *Dense[T]) MatMul(other *Dense[T]) *Dense[T] {
	if len(t.shape) != 2 || len(other.shape) != 2 {
		panic(fmt.Sprintf("MatMul: expected 2D operands, got %v and %v", t.shape, other.shape))
	}
	m, k := t.shape[0], t.shape[1]
	k2, n := other.shape[0], other.shape[1]
	if k != k2 {
		panic(fmt.Sprintf("MatMul: inner dimension mismatch: %v @ %v", t.shape, other.shape))
	}

	out := newDense[T](Shape{m, n})
	out.device = t.device

	// An empty operand makes the product an all-zero (possibly empty)
	// matrix; BLAS rejects zero-stride descriptors, so skip the call.
	if m == 0 || k == 0 || n == 0 {
		return out
	}

	switch a := any(t.data).(type) {
	case []float32:
		b := any(other.data).([]float32)
		c := any(out.data).([]float32)
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas32.General{Rows: m, Cols: k, Stride: k, Data: a},
			blas32.General{Rows: k, Cols: n, Stride: n, Data: b},
			0,
			blas32.General{Rows: m, Cols: n, Stride: n, Data: c})
	case []float64:
		b := any(other.data).([]float64)
		c := any(out.data).([]float64)
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1,
			blas64.General{Rows: m, Cols: k, Stride: k, Data: a},
			blas64.General{Rows: k, Cols: n, Stride: n, Data: b},
			0,
			blas64.General{Rows: m, Cols: n, Stride: n, Data: c})
	default:
		panic(fmt.Sprintf("MatMul: unsupported element type %T", t.data))
	}

	return out
}

// T returns the transpose of a 2-D tensor as a new tensor.
func (t *Dense[T]) T() *Dense[T] {
	if len(t.shape) != 2 {
		panic(fmt.Sprintf("T: expected 2D tensor, got %v", t.shape))
	}
	r, c := t.shape[0], t.shape[1]
	out := newDense[T](Shape{c, r})
	out.device = t.device
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.data[j*r+i] = t.data[i*c+j]
		}
	}
	return out
}
