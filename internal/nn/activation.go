package nn

import (
	"fmt"
	"math"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Activation is an elementwise nonlinearity together with the name
// used to select its weight-initialization gain. The zero value is the
// identity, so plain linear layers need no configuration.
type Activation[T tensor.Float] struct {
	name string
	fn   func(T) T
}

// Name returns the activation's name; the identity reports "identity".
func (a Activation[T]) Name() string {
	if a.name == "" {
		return "identity"
	}
	return a.name
}

// IsIdentity reports whether the activation is a no-op.
func (a Activation[T]) IsIdentity() bool {
	return a.fn == nil
}

// Apply evaluates the activation elementwise. The identity returns its
// input unchanged without copying.
func (a Activation[T]) Apply(x *tensor.Dense[T]) *tensor.Dense[T] {
	if a.fn == nil {
		return x
	}
	return x.Map(a.fn)
}

// Gain returns the recommended Kaiming initialization gain for
// layers feeding into this activation: sqrt(2) for relu and sin,
// 5/3 for tanh, 1 otherwise.
func (a Activation[T]) Gain() float64 {
	switch a.name {
	case "relu", "sin":
		return math.Sqrt2
	case "tanh":
		return 5.0 / 3.0
	default:
		return 1.0
	}
}

// Identity returns the no-op activation.
func Identity[T tensor.Float]() Activation[T] {
	return Activation[T]{}
}

// ReLU returns the rectified linear activation max(0, x).
func ReLU[T tensor.Float]() Activation[T] {
	return Activation[T]{name: "relu", fn: func(v T) T {
		if v < 0 {
			return 0
		}
		return v
	}}
}

// Tanh returns the hyperbolic tangent activation.
func Tanh[T tensor.Float]() Activation[T] {
	return Activation[T]{name: "tanh", fn: func(v T) T {
		return T(math.Tanh(float64(v)))
	}}
}

// Sigmoid returns the logistic activation 1 / (1 + exp(-x)).
func Sigmoid[T tensor.Float]() Activation[T] {
	return Activation[T]{name: "sigmoid", fn: func(v T) T {
		return T(1.0 / (1.0 + math.Exp(-float64(v))))
	}}
}

// Sin returns the sine activation used by sinusoidal networks.
func Sin[T tensor.Float]() Activation[T] {
	return Activation[T]{name: "sin", fn: func(v T) T {
		return T(math.Sin(float64(v)))
	}}
}

// ActivationByName looks up an activation by its name. Recognized
// names are "identity" (or the empty string), "relu", "tanh",
// "sigmoid" and "sin".
//
// Panics on an unknown name.
func ActivationByName[T tensor.Float](name string) Activation[T] {
	switch name {
	case "", "identity":
		return Identity[T]()
	case "relu":
		return ReLU[T]()
	case "tanh":
		return Tanh[T]()
	case "sigmoid":
		return Sigmoid[T]()
	case "sin":
		return Sin[T]()
	default:
		panic(fmt.Sprintf("ActivationByName: unknown activation %q", name))
	}
}
