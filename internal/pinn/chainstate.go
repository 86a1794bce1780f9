// Package pinn binds network architectures to their parameters and
// state for physics-informed training.
//
// The nn layer catalog is purely functional: layers take (input,
// params, state) and return (output, new state). This package adds the
// two thin containers a training harness works with:
//   - ChainState: one layer plus its current state, callable with just
//     (input, params)
//   - PINN: one or more named ChainStates plus the initial parameter
//     tree, created once per model and immutable afterwards
//
// Device placement stays out of the numeric core: Relocate rebuilds a
// PINN with every array moved by a Relocator implementation.
package pinn

import (
	"fmt"

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// ChainState pairs a layer with its current state tree and exposes
// the call contract a training loop wants: output for (input,
// params), with state threading handled internally.
//
// Call replaces the stored state with the state returned by the
// layer; the previous tree is discarded, not merged. This is the only
// mutation in the package, and it is the reason a ChainState must not
// be shared across concurrent callers.
type ChainState[T tensor.Float] struct {
	layer nn.Layer[T]
	state *nn.State[T]
}

// NewChainState wraps a layer with an explicit state tree.
func NewChainState[T tensor.Float](layer nn.Layer[T], state *nn.State[T]) *ChainState[T] {
	if layer == nil {
		panic("NewChainState: layer required")
	}
	if state == nil {
		panic("NewChainState: state required")
	}
	return &ChainState[T]{layer: layer, state: state}
}

// Layer returns the wrapped layer.
func (c *ChainState[T]) Layer() nn.Layer[T] { return c.layer }

// State returns the current state tree.
func (c *ChainState[T]) State() *nn.State[T] { return c.state }

// Call evaluates the wrapped layer on one input and replaces the
// stored state with the updated tree.
//
// Panics if the wrapped layer is not a unary layer.
func (c *ChainState[T]) Call(x *tensor.Dense[T], ps *nn.Params[T]) *tensor.Dense[T] {
	layer, ok := c.layer.(nn.UnaryLayer[T])
	if !ok {
		panic(fmt.Sprintf("ChainState.Call: layer %T takes an input pair, use CallPair", c.layer))
	}
	y, newSt := layer.Apply(x, ps, c.state)
	c.state = newSt
	return y
}

// CallPair evaluates the wrapped layer on an input pair and replaces
// the stored state with the updated tree.
//
// Panics if the wrapped layer is not a pair layer.
func (c *ChainState[T]) CallPair(a, b *tensor.Dense[T], ps *nn.Params[T]) *tensor.Dense[T] {
	layer, ok := c.layer.(nn.PairLayer[T])
	if !ok {
		panic(fmt.Sprintf("ChainState.CallPair: layer %T takes a single input, use Call", c.layer))
	}
	y, newSt := layer.ApplyPair(a, b, ps, c.state)
	c.state = newSt
	return y
}
