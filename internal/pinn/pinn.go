package pinn

import (
	"fmt"
	"sort"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// PINN binds a network (or several, named by dependent variable) to
// the parameter tree drawn at construction. The binding itself is
// immutable: training owns the parameters it obtained from
// InitParams, and relocation produces a new binding rather than
// editing this one in place. Only the per-network ChainStates mutate,
// and only through their Call methods.
//
// Example:
//
//	net := nn.NewChain[float64](
//	    nn.NewFourierFeature[float64](2, 1, 2),
//	    nn.NewDense[float64](8, 8, nn.Tanh[float64]()),
//	    nn.NewDense[float64](8, 1, nn.Identity[float64]()),
//	)
//	model := pinn.New[float64](rng, net)
//	u := model.Network().Call(coords, model.InitParams())
type PINN[T tensor.Float] struct {
	networks   map[string]*ChainState[T]
	names      []string
	single     bool
	initParams *nn.Params[T]
}

// soloNetwork keys the unnamed network inside the networks map.
const soloNetwork = "__solo__"

// New binds a single network. Parameters are drawn before state,
// matching nn.Setup.
func New[T tensor.Float](rng *rand.Rand, layer nn.Layer[T]) *PINN[T] {
	if layer == nil {
		panic("pinn.New: layer required")
	}
	ps, st := nn.Setup(rng, layer)
	return &PINN[T]{
		networks:   map[string]*ChainState[T]{soloNetwork: NewChainState(layer, st)},
		names:      []string{soloNetwork},
		single:     true,
		initParams: ps,
	}
}

// NewNamed binds one network per dependent variable. Networks
// initialize in sorted name order, so a fixed seed reproduces the
// same parameter tree regardless of map iteration order. The
// parameter tree nests one child per name.
func NewNamed[T tensor.Float](rng *rand.Rand, networks map[string]nn.Layer[T]) *PINN[T] {
	if len(networks) == 0 {
		panic("pinn.NewNamed: at least one network required")
	}
	names := make([]string, 0, len(networks))
	for name, layer := range networks {
		if layer == nil {
			panic(fmt.Sprintf("pinn.NewNamed: network %q is nil", name))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	ps := nn.NewParams[T]()
	chains := make(map[string]*ChainState[T], len(names))
	for _, name := range names {
		layer := networks[name]
		sub, st := nn.Setup(rng, layer)
		ps.SetChild(name, sub)
		chains[name] = NewChainState(layer, st)
	}
	return &PINN[T]{
		networks:   chains,
		names:      names,
		initParams: ps,
	}
}

// Single reports whether the binding wraps exactly one unnamed
// network.
func (p *PINN[T]) Single() bool { return p.single }

// Names returns the dependent-variable names in sorted order, or nil
// for a single-network binding.
func (p *PINN[T]) Names() []string {
	if p.single {
		return nil
	}
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// Network returns the unnamed network of a single-network binding.
//
// Panics on a named binding.
func (p *PINN[T]) Network() *ChainState[T] {
	if !p.single {
		panic(fmt.Sprintf("PINN.Network: binding is named (%v), use NetworkFor", p.names))
	}
	return p.networks[soloNetwork]
}

// NetworkFor returns the network bound to the given dependent
// variable.
//
// Panics if no such network exists.
func (p *PINN[T]) NetworkFor(name string) *ChainState[T] {
	c, ok := p.networks[name]
	if !ok {
		panic(fmt.Sprintf("PINN.NetworkFor: no network %q (have %v)", name, p.Names()))
	}
	return c
}

// InitParams returns the parameter tree drawn at construction. For
// named bindings it nests one child per dependent variable.
//
// The tree is the binding's initial snapshot; training harnesses may
// mutate the returned tensors, the binding never reads them back.
func (p *PINN[T]) InitParams() *nn.Params[T] {
	return p.initParams
}
