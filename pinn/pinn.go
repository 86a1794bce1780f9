// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package pinn

import (
	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/pinn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// ChainState pairs a layer with its current state tree, callable with
// just (input, params).
type ChainState[T tensor.Float] = pinn.ChainState[T]

// NewChainState wraps a layer with an explicit state tree.
func NewChainState[T tensor.Float](layer nn.Layer[T], state *nn.State[T]) *ChainState[T] {
	return pinn.NewChainState(layer, state)
}

// PINN binds one or more networks to their initial parameters,
// the model object a physics-informed training harness works with.
type PINN[T tensor.Float] = pinn.PINN[T]

// New binds a single network, drawing parameters and state from rng.
//
// Example:
//
//	model := pinn.New[float64](rand.New(rand.NewSource(1)), net)
//	y := model.Network().Call(x, model.InitParams())
func New[T tensor.Float](rng *rand.Rand, layer nn.Layer[T]) *PINN[T] {
	return pinn.New(rng, layer)
}

// NewNamed binds one network per dependent variable. Networks
// initialize in sorted name order so a fixed seed reproduces the same
// parameter tree.
//
// Example:
//
//	model := pinn.NewNamed[float64](rng, map[string]nn.Layer[float64]{
//	    "u": uNet,
//	    "v": vNet,
//	})
//	u := model.NetworkFor("u").Call(x, model.InitParams().Child("u"))
func NewNamed[T tensor.Float](rng *rand.Rand, networks map[string]nn.Layer[T]) *PINN[T] {
	return pinn.NewNamed(rng, networks)
}

// Relocator moves tensors to a compute target.
type Relocator[T tensor.Float] = pinn.Relocator[T]

// Relocate returns a new binding with every parameter and state array
// moved by r; the source binding is left untouched.
func Relocate[T tensor.Float](p *PINN[T], r Relocator[T]) *PINN[T] {
	return pinn.Relocate(p, r)
}

// CPURelocator is the reference Relocator: it copies tensors and tags
// them as CPU-resident.
type CPURelocator[T tensor.Float] = pinn.CPURelocator[T]
