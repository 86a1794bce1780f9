// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pde describes boundary-value problems for display.
//
// A Problem records equations, boundary conditions, and variable
// lists as free-form text paired with domains. Nothing in it is
// parsed or evaluated numerically; it exists so experiments can print
// a faithful statement of the problem next to the network that
// approximates its solution:
//
//	problem := pde.NewProblem(pde.ProblemConfig{
//	    Equations: []pde.Equation{
//	        {Expression: "Dxx(u(x)) + sinpi(x) = 0", Domain: pde.On("x", 0, 1)},
//	    },
//	    BoundaryConditions: []pde.BoundaryCondition{
//	        {Expression: "u(0) = 0", Domain: pde.At("x", 0)},
//	        {Expression: "u(1) = 0", Domain: pde.At("x", 1)},
//	    },
//	    Independents: []string{"x"},
//	    Dependents:   []string{"u"},
//	})
//	fmt.Println(problem)
package pde
