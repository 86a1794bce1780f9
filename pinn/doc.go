// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pinn binds networks to their parameters and state for
// physics-informed training.
//
// # Overview
//
// The nn layer catalog is purely functional. This package adds the
// containers a training harness holds on to:
//   - ChainState: a layer plus its current state
//   - PINN: one or more named ChainStates plus the initial parameter
//     tree
//
// # Basic Usage
//
//	import (
//	    "golang.org/x/exp/rand"
//
//	    "github.com/ritz-ml/ritz/nn"
//	    "github.com/ritz-ml/ritz/pinn"
//	    "github.com/ritz-ml/ritz/tensor"
//	)
//
//	func main() {
//	    net := nn.NewChain[float64](
//	        nn.NewRandomFourierFeature[float64](2, 16, 5),
//	        nn.NewDense[float64](16, 1, nn.Identity[float64]()),
//	    )
//	    model := pinn.New[float64](rand.New(rand.NewSource(1)), net)
//
//	    x := tensor.Ones[float64](tensor.Shape{2, 100})
//	    u := model.Network().Call(x, model.InitParams())
//	    _ = u
//	}
//
// Multi-output problems bind one network per dependent variable with
// NewNamed; each network is addressed by name and owns a child of the
// parameter tree.
//
// # Device Placement
//
// Relocate(model, relocator) returns an equivalent binding with every
// array moved by the given Relocator. The core ships only the
// CPURelocator; accelerator back-ends implement Relocator outside the
// numeric core.
package pinn
