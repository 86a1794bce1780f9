// Package nn implements neural network layers for the Ritz ML Framework.
//
// This package provides the building blocks used by physics-informed
// networks and neural operators:
//   - Layer interface: parameter/state initialization contract
//   - Dense, Sine, FactorizedDense: affine layers and variants
//   - FourierFeature, DiscreteFourierFeature: input embeddings
//   - RBF: normalized radial basis function layer
//   - Chain: sequential container with named stages
//   - DeepONet: branch/trunk operator network
//
// Layers are stateless values: all learnable tensors live in a Params
// tree and all non-trainable tensors in a State tree, both produced by
// the layer's init methods and threaded explicitly through Apply. The
// same layer value can therefore serve any number of parameter sets.
//
// Layers expect column-sample layout: the first axis of an input holds
// features and every remaining axis enumerates samples, so a matrix
// input is (in_dims, batch).
package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Layer is the base interface for all network components. It covers
// only initialization; the evaluation signature depends on the layer's
// arity (see UnaryLayer and PairLayer).
type Layer[T tensor.Float] interface {
	// InitParams draws the layer's trainable parameters.
	InitParams(rng *rand.Rand) *Params[T]

	// InitState draws the layer's non-trainable state. Layers without
	// state return an empty tree, never nil.
	InitState(rng *rand.Rand) *State[T]
}

// UnaryLayer is a layer evaluated on a single input tensor.
type UnaryLayer[T tensor.Float] interface {
	Layer[T]

	// Apply evaluates the layer. The returned state replaces st for
	// the next call; layers with constant state return st unchanged.
	Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T])
}

// PairLayer is a layer evaluated on two input tensors, such as the
// branch/trunk pair of a DeepONet.
type PairLayer[T tensor.Float] interface {
	Layer[T]

	// ApplyPair evaluates the layer on an input pair.
	ApplyPair(a, b *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T])
}

// Setup initializes a layer, drawing parameters first and state
// second from the same rng. The draw order is part of the contract:
// reseeding the rng and calling Setup again reproduces both trees.
func Setup[T tensor.Float](rng *rand.Rand, layer Layer[T]) (*Params[T], *State[T]) {
	ps := layer.InitParams(rng)
	st := layer.InitState(rng)
	return ps, st
}

// checkInDims panics unless the first axis of x has the expected
// feature count.
func checkInDims[T tensor.Float](layer string, x *tensor.Dense[T], inDims int) {
	shape := x.Shape()
	if len(shape) == 0 {
		panic(fmt.Sprintf("%s.Apply: expected input with %d features on the first axis, got a scalar", layer, inDims))
	}
	if shape[0] != inDims {
		panic(fmt.Sprintf("%s.Apply: expected input with %d features on the first axis, got shape %v", layer, inDims, shape))
	}
}

// applyMatrix evaluates f on a 2-D (features, batch) view of x and
// restores x's sample axes on the result. Vector inputs are treated
// as a single column and higher-rank inputs have their trailing axes
// folded into one batch axis, so f only ever sees matrices.
func applyMatrix[T tensor.Float](x *tensor.Dense[T], f func(m *tensor.Dense[T]) *tensor.Dense[T]) *tensor.Dense[T] {
	shape := x.Shape()
	switch len(shape) {
	case 0:
		panic("nn: expected an input with at least one axis, got a scalar")
	case 1:
		y := f(x.Reshape(shape[0], 1))
		return y.Reshape(y.Shape()[0])
	case 2:
		return f(x)
	default:
		y := f(x.FlattenTrailing())
		out := append(tensor.Shape{y.Shape()[0]}, shape[1:]...)
		return y.Reshape(out...)
	}
}
