package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Chain composes unary layers sequentially: each layer's output
// becomes the next layer's input. Parameters and state nest one child
// per stage, named "layer_1" through "layer_N" in evaluation order.
//
// Example:
//
//	model := nn.NewChain[float64](
//	    nn.NewFourierFeature[float64](2, 1, 2, 4),
//	    nn.NewDense[float64](12, 16, nn.Tanh[float64]()),
//	    nn.NewDense[float64](16, 1, nn.Identity[float64]()),
//	)
type Chain[T tensor.Float] struct {
	names  []string
	layers []UnaryLayer[T]
}

// NewChain creates a sequential container.
//
// Panics if no layer is given.
func NewChain[T tensor.Float](layers ...UnaryLayer[T]) *Chain[T] {
	if len(layers) == 0 {
		panic("NewChain: at least one layer required")
	}
	names := make([]string, len(layers))
	for i := range layers {
		names[i] = fmt.Sprintf("layer_%d", i+1)
	}
	ls := make([]UnaryLayer[T], len(layers))
	copy(ls, layers)
	return &Chain[T]{names: names, layers: ls}
}

// Len returns the number of stages.
func (c *Chain[T]) Len() int { return len(c.layers) }

// LayerNames returns the stage names in evaluation order.
func (c *Chain[T]) LayerNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// InitParams initializes every stage in evaluation order, nesting one
// child per stage name. The order is part of the reproducibility
// contract: stages consume the rng sequentially.
func (c *Chain[T]) InitParams(rng *rand.Rand) *Params[T] {
	ps := NewParams[T]()
	for i, layer := range c.layers {
		ps.SetChild(c.names[i], layer.InitParams(rng))
	}
	return ps
}

// InitState initializes every stage's state in evaluation order.
func (c *Chain[T]) InitState(rng *rand.Rand) *State[T] {
	st := NewState[T]()
	for i, layer := range c.layers {
		st.SetChild(c.names[i], layer.InitState(rng))
	}
	return st
}

// Apply threads the input through every stage and merges the updated
// sub-states into a fresh state tree keyed by stage name.
func (c *Chain[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	y := x
	newSt := NewState[T]()
	for i, layer := range c.layers {
		name := c.names[i]
		var sub *State[T]
		y, sub = layer.Apply(y, ps.Child(name), st.Child(name))
		newSt.SetChild(name, sub)
	}
	return y, newSt
}

// NewFullyConnected builds a Chain of Dense layers from a list of
// widths. sizes[0] is the input width and each following entry adds
// one layer. With outermostLinear the final layer skips the
// activation, the usual choice when the network's output feeds a
// bilinear combination rather than another layer.
//
// Panics if fewer than two sizes are given or any size is not
// positive.
func NewFullyConnected[T tensor.Float](sizes []int, activation Activation[T], outermostLinear bool) *Chain[T] {
	if len(sizes) < 2 {
		panic(fmt.Sprintf("NewFullyConnected: need at least input and output sizes, got %v", sizes))
	}
	for _, n := range sizes {
		if n < 1 {
			panic(fmt.Sprintf("NewFullyConnected: sizes must be positive, got %v", sizes))
		}
	}
	layers := make([]UnaryLayer[T], 0, len(sizes)-1)
	for i := 0; i < len(sizes)-1; i++ {
		act := activation
		if outermostLinear && i == len(sizes)-2 {
			act = Identity[T]()
		}
		layers = append(layers, NewDense[T](sizes[i], sizes[i+1], act))
	}
	return NewChain(layers...)
}
