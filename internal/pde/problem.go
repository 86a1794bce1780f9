// Package pde describes boundary-value problems.
//
// A Problem is a display-only record: the equations, boundary
// conditions, and variable lists a model was built for. Nothing in it
// is parsed or evaluated numerically. It exists so experiments can
// carry and print a faithful statement of the problem next to the
// network that approximates its solution.
package pde

import (
	"fmt"
	"strings"
)

// Interval is a one-dimensional domain (lower, upper). A degenerate
// interval with Lower == Upper denotes a single point, the usual
// domain of a boundary condition.
type Interval struct {
	Lower float64
	Upper float64
}

// NewInterval creates an interval.
//
// Panics if lower > upper.
func NewInterval(lower, upper float64) Interval {
	if lower > upper {
		panic(fmt.Sprintf("pde.NewInterval: lower bound %g exceeds upper bound %g", lower, upper))
	}
	return Interval{Lower: lower, Upper: upper}
}

// IsPoint reports whether the interval is a single point.
func (iv Interval) IsPoint() bool { return iv.Lower == iv.Upper }

// String renders the interval as "(lower, upper)", or "{value}" for a
// point.
func (iv Interval) String() string {
	if iv.IsPoint() {
		return fmt.Sprintf("{%g}", iv.Lower)
	}
	return fmt.Sprintf("(%g, %g)", iv.Lower, iv.Upper)
}

// Domain binds an independent variable to the interval it ranges
// over.
type Domain struct {
	Variable string
	Interval Interval
}

// On creates the domain "variable ∈ (lower, upper)".
func On(variable string, lower, upper float64) Domain {
	if variable == "" {
		panic("pde.On: variable name required")
	}
	return Domain{Variable: variable, Interval: NewInterval(lower, upper)}
}

// At creates the point domain "variable = value", used for boundary
// conditions.
func At(variable string, value float64) Domain {
	return On(variable, value, value)
}

// String renders the domain, e.g. "x ∈ (0, 1)" or "x = 0".
func (d Domain) String() string {
	if d.Interval.IsPoint() {
		return fmt.Sprintf("%s = %g", d.Variable, d.Interval.Lower)
	}
	return fmt.Sprintf("%s ∈ %s", d.Variable, d.Interval)
}

// Equation pairs a governing-equation expression with the domain it
// holds on. The expression is free-form text, conventionally written
// with a trailing "= 0" or an explicit right-hand side.
type Equation struct {
	Expression string
	Domain     Domain
}

// BoundaryCondition pairs a constraint expression with the (usually
// degenerate) domain it applies on.
type BoundaryCondition struct {
	Expression string
	Domain     Domain
}

// ProblemConfig collects everything a Problem records.
type ProblemConfig struct {
	// Equations are the governing equations with their domains. At
	// least one is required.
	Equations []Equation

	// BoundaryConditions constrain the solution on parts of the
	// domain boundary. Optional.
	BoundaryConditions []BoundaryCondition

	// Independents names the independent variables (coordinates). At
	// least one is required.
	Independents []string

	// Dependents names the unknown functions being solved for. At
	// least one is required.
	Dependents []string

	// Parameters names optional parametric variables the solution
	// additionally depends on.
	Parameters []string
}

// Problem is an immutable boundary-value-problem description.
// Construct it once with NewProblem; every accessor returns copies.
type Problem struct {
	equations    []Equation
	boundary     []BoundaryCondition
	independents []string
	dependents   []string
	parameters   []string
}

// NewProblem validates and freezes a problem description.
//
// Panics if the config has no equations, no independent variables, no
// dependent variables, or an empty expression.
func NewProblem(cfg ProblemConfig) *Problem {
	if len(cfg.Equations) == 0 {
		panic("pde.NewProblem: at least one equation required")
	}
	if len(cfg.Independents) == 0 {
		panic("pde.NewProblem: at least one independent variable required")
	}
	if len(cfg.Dependents) == 0 {
		panic("pde.NewProblem: at least one dependent variable required")
	}
	for i, eq := range cfg.Equations {
		if eq.Expression == "" {
			panic(fmt.Sprintf("pde.NewProblem: equation %d has an empty expression", i))
		}
	}
	for i, bc := range cfg.BoundaryConditions {
		if bc.Expression == "" {
			panic(fmt.Sprintf("pde.NewProblem: boundary condition %d has an empty expression", i))
		}
	}
	return &Problem{
		equations:    append([]Equation(nil), cfg.Equations...),
		boundary:     append([]BoundaryCondition(nil), cfg.BoundaryConditions...),
		independents: append([]string(nil), cfg.Independents...),
		dependents:   append([]string(nil), cfg.Dependents...),
		parameters:   append([]string(nil), cfg.Parameters...),
	}
}

// Equations returns the governing equations in declaration order.
func (p *Problem) Equations() []Equation {
	return append([]Equation(nil), p.equations...)
}

// BoundaryConditions returns the boundary conditions in declaration
// order.
func (p *Problem) BoundaryConditions() []BoundaryCondition {
	return append([]BoundaryCondition(nil), p.boundary...)
}

// Independents returns the independent variable names.
func (p *Problem) Independents() []string {
	return append([]string(nil), p.independents...)
}

// Dependents returns the dependent variable names.
func (p *Problem) Dependents() []string {
	return append([]string(nil), p.dependents...)
}

// Parameters returns the parametric variable names, possibly empty.
func (p *Problem) Parameters() []string {
	return append([]string(nil), p.parameters...)
}

// String renders a multi-line human-readable summary of the problem.
func (p *Problem) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Problem for %s(%s)\n",
		strings.Join(p.dependents, ", "),
		strings.Join(p.independents, ", "))

	sb.WriteString("Equations:\n")
	for _, eq := range p.equations {
		fmt.Fprintf(&sb, "  %s  on %s\n", eq.Expression, eq.Domain)
	}

	if len(p.boundary) > 0 {
		sb.WriteString("Boundary conditions:\n")
		for _, bc := range p.boundary {
			fmt.Fprintf(&sb, "  %s  on %s\n", bc.Expression, bc.Domain)
		}
	}

	fmt.Fprintf(&sb, "Independent variables: %s\n", strings.Join(p.independents, ", "))
	fmt.Fprintf(&sb, "Dependent variables: %s", strings.Join(p.dependents, ", "))
	if len(p.parameters) > 0 {
		fmt.Fprintf(&sb, "\nParameters: %s", strings.Join(p.parameters, ", "))
	}
	return sb.String()
}
