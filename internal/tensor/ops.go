package tensor

import (
	"fmt"
	"math"

	"github.com/ritz-ml/ritz/internal/parallel"
)

// elementwiseCfg gates the worker pool behind Map and the same-shape
// binary kernel. The broadcast path stays sequential: it walks a shared
// index odometer.
var elementwiseCfg = parallel.DefaultConfig()

// Add performs element-wise addition with broadcasting.
//
// Example:
//
//	a := tensor.Ones[float32](Shape{3, 1})
//	b := tensor.Ones[float32](Shape{3, 5})
//	c := a.Add(b) // Shape: (3, 5)
func (t *Dense[T]) Add(other *Dense[T]) *Dense[T] {
	return broadcastBinary(t, other, func(a, b T) T { return a + b })
}

// Sub performs element-wise subtraction with broadcasting.
func (t *Dense[T]) Sub(other *Dense[T]) *Dense[T] {
	return broadcastBinary(t, other, func(a, b T) T { return a - b })
}

// Mul performs element-wise multiplication with broadcasting.
func (t *Dense[T]) Mul(other *Dense[T]) *Dense[T] {
	return broadcastBinary(t, other, func(a, b T) T { return a * b })
}

// Div performs element-wise division with broadcasting.
func (t *Dense[T]) Div(other *Dense[T]) *Dense[T] {
	return broadcastBinary(t, other, func(a, b T) T { return a / b })
}

// Scale multiplies every element by c.
func (t *Dense[T]) Scale(c T) *Dense[T] {
	return t.Map(func(v T) T { return c * v })
}

// AddScalar adds c to every element.
func (t *Dense[T]) AddScalar(c T) *Dense[T] {
	return t.Map(func(v T) T { return v + c })
}

// Map applies f to every element and returns the result as a new tensor.
// Large tensors are processed in parallel chunks, so f must be pure.
func (t *Dense[T]) Map(f func(T) T) *Dense[T] {
	out := newDense[T](t.shape)
	out.device = t.device
	parallel.For(len(t.data), func(i int) {
		out.data[i] = f(t.data[i])
	}, elementwiseCfg)
	return out
}

// Sin applies sin element-wise.
func (t *Dense[T]) Sin() *Dense[T] {
	return t.Map(func(v T) T { return T(math.Sin(float64(v))) })
}

// Cos applies cos element-wise.
func (t *Dense[T]) Cos() *Dense[T] {
	return t.Map(func(v T) T { return T(math.Cos(float64(v))) })
}

// Exp applies exp element-wise.
func (t *Dense[T]) Exp() *Dense[T] {
	return t.Map(func(v T) T { return T(math.Exp(float64(v))) })
}

// broadcastBinary applies op element-wise over the broadcast of a and b.
// Incompatible shapes panic: silent coercion is the main correctness hazard
// in numeric code, so mismatches must fail loudly.
func broadcastBinary[T Float](a, b *Dense[T], op func(T, T) T) *Dense[T] {
	if a.shape.Equal(b.shape) {
		out := newDense[T](a.shape)
		out.device = a.device
		parallel.For(len(out.data), func(i int) {
			out.data[i] = op(a.data[i], b.data[i])
		}, elementwiseCfg)
		return out
	}

	outShape, _, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		panic(fmt.Sprintf("tensor: %v", err))
	}

	out := newDense[T](outShape)
	out.device = a.device
	aStrides := broadcastStrides(a.shape, outShape)
	bStrides := broadcastStrides(b.shape, outShape)

	idx := make([]int, len(outShape))
	for i := range out.data {
		aOff, bOff := 0, 0
		for d := range idx {
			aOff += idx[d] * aStrides[d]
			bOff += idx[d] * bStrides[d]
		}
		out.data[i] = op(a.data[aOff], b.data[bOff])

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < outShape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

// broadcastStrides returns per-axis strides of shape viewed as out, with a
// stride of 0 on every broadcast (size-1 or missing) axis.
func broadcastStrides(shape, out Shape) []int {
	base := shape.ComputeStrides()
	strides := make([]int, len(out))
	pad := len(out) - len(shape)
	for i := range out {
		src := i - pad
		if src < 0 || shape[src] == 1 {
			strides[i] = 0
			continue
		}
		strides[i] = base[src]
	}
	return strides
}
