// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the layer catalog for physics-informed
// networks.
//
// # Overview
//
// This package contains:
//   - Embeddings: FourierFeature (fixed and multi-scale random),
//     DiscreteFourierFeature (periodic harmonics)
//   - Dense layers: Dense, Sine (SIREN-style), FactorizedDense
//     (random weight factorization), RBF (normalized radial basis)
//   - Utilities: ScalarLayer, ConstantFunction, SplitFunction
//   - Containers: Chain, FullyConnected
//   - Operator learning: DeepONet
//   - Initialization: Uniform, Normal, LogNormal, KaimingUniform
//
// # Design
//
// Layers are immutable descriptions. Learned arrays live in a Params
// tree, non-learned arrays (fixed random frequencies, derived
// constants) in a State tree; both are drawn explicitly from a caller
// supplied random source, so initialization is reproducible:
//
//	rng := rand.New(rand.NewSource(seed))
//	ps, st := nn.Setup[float64](rng, model)
//
// Evaluation is pure: Apply(x, params, state) returns the output and
// a new state, never mutating shared data. Callers decide whether to
// keep the returned state.
//
// # Basic Usage
//
//	import (
//	    "golang.org/x/exp/rand"
//
//	    "github.com/ritz-ml/ritz/nn"
//	    "github.com/ritz-ml/ritz/tensor"
//	)
//
//	func main() {
//	    model := nn.NewChain[float64](
//	        nn.NewFourierFeature[float64](2, 1, 2, 4),
//	        nn.NewDense[float64](12, 16, nn.Tanh[float64]()),
//	        nn.NewDense[float64](16, 1, nn.Identity[float64]()),
//	    )
//
//	    rng := rand.New(rand.NewSource(1))
//	    ps, st := nn.Setup[float64](rng, model)
//
//	    x := tensor.MustFromSlice([]float64{0.5, 0.25}, tensor.Shape{2, 1})
//	    y, _ := model.Apply(x, ps, st)
//	    _ = y
//	}
//
// # Axis Convention
//
// Inputs are feature-first: shape (in_dims, batch...). A matrix input
// holds one sample per column; rank-1 inputs are a single sample.
// Every layer's declared OutDims equals the first-axis length of its
// output.
package nn
