package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Dense implements a fully connected layer.
//
// Performs the transformation: y = activation(W @ x + b)
// where:
//   - x is the input with shape (in_dims, batch)
//   - W is the weight matrix with shape (out_dims, in_dims)
//   - b is the bias column with shape (out_dims, 1)
//   - y is the output with shape (out_dims, batch)
//
// Weights default to Kaiming uniform initialization with the gain of
// the configured activation; biases default to zeros.
//
// Example:
//
//	layer := nn.NewDense[float32](2, 16, nn.Tanh[float32]())
//	ps, st := nn.Setup[float32](rng, layer)
//
//	x := tensor.MustFromSlice(coords, tensor.Shape{2, 128})
//	y, _ := layer.Apply(x, ps, st) // shape: (16, 128)
type Dense[T tensor.Float] struct {
	inDims     int
	outDims    int
	activation Activation[T]
	initWeight Initializer[T]
	initBias   Initializer[T]
	useBias    bool
}

// DenseConfig carries the optional knobs of a Dense layer. The zero
// value selects an identity activation, Kaiming uniform weights,
// zero biases and an enabled bias term.
type DenseConfig[T tensor.Float] struct {
	// Activation applied after the affine transform.
	Activation Activation[T]

	// InitWeight overrides the weight initializer.
	InitWeight Initializer[T]

	// InitBias overrides the bias initializer.
	InitBias Initializer[T]

	// NoBias drops the bias term entirely.
	NoBias bool
}

// NewDense creates a fully connected layer with default
// initialization.
//
// Parameters:
//   - inDims: number of input features (first axis of the input)
//   - outDims: number of output features
//   - activation: nonlinearity applied to the affine output
//
// Returns a new Dense layer.
func NewDense[T tensor.Float](inDims, outDims int, activation Activation[T]) *Dense[T] {
	return NewDenseWithConfig(inDims, outDims, DenseConfig[T]{Activation: activation})
}

// NewDenseWithConfig creates a fully connected layer with explicit
// configuration. Unset config fields fall back to the defaults
// documented on DenseConfig.
func NewDenseWithConfig[T tensor.Float](inDims, outDims int, cfg DenseConfig[T]) *Dense[T] {
	if inDims < 1 || outDims < 1 {
		panic(fmt.Sprintf("NewDense: dimensions must be positive, got in=%d out=%d", inDims, outDims))
	}
	initWeight := cfg.InitWeight
	if initWeight == nil {
		initWeight = KaimingUniform[T](cfg.Activation.Gain())
	}
	initBias := cfg.InitBias
	if initBias == nil {
		initBias = Constant[T](0)
	}
	return &Dense[T]{
		inDims:     inDims,
		outDims:    outDims,
		activation: cfg.Activation,
		initWeight: initWeight,
		initBias:   initBias,
		useBias:    !cfg.NoBias,
	}
}

// InDims returns the number of input features.
func (d *Dense[T]) InDims() int { return d.inDims }

// OutDims returns the number of output features.
func (d *Dense[T]) OutDims() int { return d.outDims }

// InitParams draws the weight (out_dims, in_dims) and, unless
// disabled, the bias (out_dims, 1).
func (d *Dense[T]) InitParams(rng *rand.Rand) *Params[T] {
	ps := NewParams[T]()
	ps.Set("weight", d.initWeight(rng, tensor.Shape{d.outDims, d.inDims}))
	if d.useBias {
		ps.Set("bias", d.initBias(rng, tensor.Shape{d.outDims, 1}))
	}
	return ps
}

// InitState returns an empty state: Dense is stateless.
func (d *Dense[T]) InitState(_ *rand.Rand) *State[T] {
	return NewState[T]()
}

// Apply computes activation(W @ x + b). The input may be a vector, a
// matrix or a higher-rank batch; sample axes are preserved.
func (d *Dense[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	checkInDims("Dense", x, d.inDims)
	w := ps.Get("weight")
	y := applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
		out := w.MatMul(m)
		if d.useBias {
			out = out.Add(ps.Get("bias"))
		}
		return out
	})
	return d.activation.Apply(y), st
}
