package nn

import (
	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// ScalarLayer owns a single learned scalar and combines it with every
// element of its input through a caller-supplied function. With
// ScalarAdd it acts as a learned global bias, the role it plays inside
// DeepONet.
type ScalarLayer[T tensor.Float] struct {
	combine func(scalar, x T) T
}

// ScalarAdd is the addition combination for ScalarLayer.
func ScalarAdd[T tensor.Float](scalar, x T) T { return scalar + x }

// ScalarMul is the multiplication combination for ScalarLayer.
func ScalarMul[T tensor.Float](scalar, x T) T { return scalar * x }

// NewScalarLayer creates a scalar combination layer.
//
// Panics if combine is nil.
func NewScalarLayer[T tensor.Float](combine func(scalar, x T) T) *ScalarLayer[T] {
	if combine == nil {
		panic("NewScalarLayer: combine function required")
	}
	return &ScalarLayer[T]{combine: combine}
}

// InitParams creates the scalar slot, initialized to zero.
func (l *ScalarLayer[T]) InitParams(_ *rand.Rand) *Params[T] {
	ps := NewParams[T]()
	ps.Set("scalar", tensor.Zeros[T](tensor.Shape{1}))
	return ps
}

// InitState returns an empty state.
func (l *ScalarLayer[T]) InitState(_ *rand.Rand) *State[T] {
	return NewState[T]()
}

// Apply combines the learned scalar with every input element.
func (l *ScalarLayer[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	s := ps.Get("scalar").At(0)
	y := x.Map(func(v T) T { return l.combine(s, v) })
	return y, st
}

// ConstantFunction ignores its input and returns its single learned
// scalar broadcast to the input's shape. It serves as a placeholder
// sub-network wherever an architecture slot must be filled.
type ConstantFunction[T tensor.Float] struct{}

// NewConstantFunction creates a constant placeholder layer.
func NewConstantFunction[T tensor.Float]() *ConstantFunction[T] {
	return &ConstantFunction[T]{}
}

// InitParams creates the constant slot, initialized to one.
func (l *ConstantFunction[T]) InitParams(_ *rand.Rand) *Params[T] {
	ps := NewParams[T]()
	ps.Set("constant", tensor.Ones[T](tensor.Shape{1}))
	return ps
}

// InitState returns an empty state.
func (l *ConstantFunction[T]) InitState(_ *rand.Rand) *State[T] {
	return NewState[T]()
}

// Apply returns the constant broadcast to x's shape. The input's
// values are never read, only its shape.
func (l *ConstantFunction[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	c := ps.Get("constant").At(0)
	return tensor.Full[T](x.Shape().Clone(), c), st
}
