package nn

import (
	"fmt"
	"sort"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Params holds the trainable parameters of a layer as a tree of named
// tensor slots. Leaf slots store tensors; child nodes store the
// parameters of sub-layers (e.g. the stages of a Chain).
//
// A Params tree is produced by Layer.InitParams and then treated as an
// opaque value by the layers themselves: Apply reads slots but never
// writes them. Optimizers own mutation.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	ps := layer.InitParams(rng)
//	w := ps.Get("weight") // panics if the layer has no such slot
type Params[T tensor.Float] struct {
	tensors  map[string]*tensor.Dense[T]
	children map[string]*Params[T]
}

// NewParams creates an empty parameter tree.
func NewParams[T tensor.Float]() *Params[T] {
	return &Params[T]{
		tensors:  make(map[string]*tensor.Dense[T]),
		children: make(map[string]*Params[T]),
	}
}

// Set stores a tensor under the given slot name, replacing any
// previous value.
func (p *Params[T]) Set(name string, t *tensor.Dense[T]) {
	p.tensors[name] = t
}

// Get returns the tensor stored under the given slot name.
//
// Panics if the slot does not exist: a missing parameter slot is a
// configuration bug, not a runtime condition.
func (p *Params[T]) Get(name string) *tensor.Dense[T] {
	t, ok := p.tensors[name]
	if !ok {
		panic(fmt.Sprintf("Params.Get: no parameter slot %q (have %v)", name, p.Names()))
	}
	return t
}

// Has reports whether a tensor slot with the given name exists.
func (p *Params[T]) Has(name string) bool {
	_, ok := p.tensors[name]
	return ok
}

// SetChild stores the parameter tree of a sub-layer under the given
// name.
func (p *Params[T]) SetChild(name string, child *Params[T]) {
	p.children[name] = child
}

// Child returns the parameter tree of the named sub-layer.
//
// Panics if no such child exists.
func (p *Params[T]) Child(name string) *Params[T] {
	c, ok := p.children[name]
	if !ok {
		panic(fmt.Sprintf("Params.Child: no child %q (have %v)", name, p.ChildNames()))
	}
	return c
}

// HasChild reports whether a child with the given name exists.
func (p *Params[T]) HasChild(name string) bool {
	_, ok := p.children[name]
	return ok
}

// Names returns the tensor slot names in sorted order.
func (p *Params[T]) Names() []string {
	names := make([]string, 0, len(p.tensors))
	for name := range p.tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChildNames returns the child names in sorted order.
func (p *Params[T]) ChildNames() []string {
	names := make([]string, 0, len(p.children))
	for name := range p.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumParameters returns the total number of scalar parameters in the
// tree, including all children.
func (p *Params[T]) NumParameters() int {
	n := 0
	for _, t := range p.tensors {
		n += t.NumElements()
	}
	for _, c := range p.children {
		n += c.NumParameters()
	}
	return n
}

// Map applies f to every tensor in the tree and returns a new tree
// with the same structure. The receiver is not modified.
//
// This is the hook used for device relocation: f moves each leaf and
// Map rebuilds the surrounding structure.
func (p *Params[T]) Map(f func(*tensor.Dense[T]) *tensor.Dense[T]) *Params[T] {
	out := NewParams[T]()
	for name, t := range p.tensors {
		out.tensors[name] = f(t)
	}
	for name, c := range p.children {
		out.children[name] = c.Map(f)
	}
	return out
}

// State holds the non-trainable state of a layer: named tensor slots,
// named scalar slots, and the state of sub-layers. Unlike parameters,
// state is threaded through every Apply call and a fresh State is
// returned alongside the output.
//
// Layers that rerandomize nothing simply return the state they were
// given; every layer preserves the set of slot names it was
// initialized with.
type State[T tensor.Float] struct {
	tensors  map[string]*tensor.Dense[T]
	scalars  map[string]T
	children map[string]*State[T]
}

// NewState creates an empty state tree.
func NewState[T tensor.Float]() *State[T] {
	return &State[T]{
		tensors:  make(map[string]*tensor.Dense[T]),
		scalars:  make(map[string]T),
		children: make(map[string]*State[T]),
	}
}

// Set stores a tensor under the given slot name.
func (s *State[T]) Set(name string, t *tensor.Dense[T]) {
	s.tensors[name] = t
}

// Get returns the tensor stored under the given slot name.
//
// Panics if the slot does not exist.
func (s *State[T]) Get(name string) *tensor.Dense[T] {
	t, ok := s.tensors[name]
	if !ok {
		panic(fmt.Sprintf("State.Get: no state slot %q (have %v)", name, s.Names()))
	}
	return t
}

// Has reports whether a tensor slot with the given name exists.
func (s *State[T]) Has(name string) bool {
	_, ok := s.tensors[name]
	return ok
}

// SetScalar stores a scalar under the given slot name.
func (s *State[T]) SetScalar(name string, v T) {
	s.scalars[name] = v
}

// Scalar returns the scalar stored under the given slot name.
//
// Panics if the slot does not exist.
func (s *State[T]) Scalar(name string) T {
	v, ok := s.scalars[name]
	if !ok {
		panic(fmt.Sprintf("State.Scalar: no scalar slot %q", name))
	}
	return v
}

// HasScalar reports whether a scalar slot with the given name exists.
func (s *State[T]) HasScalar(name string) bool {
	_, ok := s.scalars[name]
	return ok
}

// SetChild stores the state of a sub-layer under the given name.
func (s *State[T]) SetChild(name string, child *State[T]) {
	s.children[name] = child
}

// Child returns the state of the named sub-layer.
//
// Panics if no such child exists.
func (s *State[T]) Child(name string) *State[T] {
	c, ok := s.children[name]
	if !ok {
		panic(fmt.Sprintf("State.Child: no child %q (have %v)", name, s.ChildNames()))
	}
	return c
}

// HasChild reports whether a child with the given name exists.
func (s *State[T]) HasChild(name string) bool {
	_, ok := s.children[name]
	return ok
}

// Names returns the tensor slot names in sorted order.
func (s *State[T]) Names() []string {
	names := make([]string, 0, len(s.tensors))
	for name := range s.tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ScalarNames returns the scalar slot names in sorted order.
func (s *State[T]) ScalarNames() []string {
	names := make([]string, 0, len(s.scalars))
	for name := range s.scalars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ChildNames returns the child names in sorted order.
func (s *State[T]) ChildNames() []string {
	names := make([]string, 0, len(s.children))
	for name := range s.children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Map applies f to every tensor in the tree and returns a new tree
// with the same structure. Scalar slots are copied unchanged.
func (s *State[T]) Map(f func(*tensor.Dense[T]) *tensor.Dense[T]) *State[T] {
	out := NewState[T]()
	for name, t := range s.tensors {
		out.tensors[name] = f(t)
	}
	for name, v := range s.scalars {
		out.scalars[name] = v
	}
	for name, c := range s.children {
		out.children[name] = c.Map(f)
	}
	return out
}
