// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package pde

import (
	"github.com/ritz-ml/ritz/internal/pde"
)

// Interval is a one-dimensional domain (lower, upper); a degenerate
// interval denotes a single point.
type Interval = pde.Interval

// NewInterval creates an interval. Panics if lower > upper.
func NewInterval(lower, upper float64) Interval {
	return pde.NewInterval(lower, upper)
}

// Domain binds an independent variable to the interval it ranges over.
type Domain = pde.Domain

// On creates the domain "variable ∈ (lower, upper)".
func On(variable string, lower, upper float64) Domain {
	return pde.On(variable, lower, upper)
}

// At creates the point domain "variable = value".
func At(variable string, value float64) Domain {
	return pde.At(variable, value)
}

// Equation pairs a governing-equation expression with its domain.
type Equation = pde.Equation

// BoundaryCondition pairs a constraint expression with the domain it
// applies on.
type BoundaryCondition = pde.BoundaryCondition

// ProblemConfig collects everything a Problem records.
type ProblemConfig = pde.ProblemConfig

// Problem is an immutable boundary-value-problem description used for
// display next to the model that approximates its solution.
type Problem = pde.Problem

// NewProblem validates and freezes a problem description.
//
// Example:
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
func NewProblem(cfg ProblemConfig) *Problem {
	return pde.NewProblem(cfg)
}
