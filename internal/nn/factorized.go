package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// FactorizedDense is a fully connected layer with random weight
// factorization: the effective weight matrix is the elementwise
// product of a per-output-row scale column and a base matrix,
//
//	y = activation((scale ⊙ weight) @ x + bias)
//
// with scale of shape (out_dims, 1) and weight of shape
// (out_dims, in_dims). Training perturbs scale and weight separately,
// which reshapes the effective learning rate of large versus small
// weight rows.
//
// Initialization order is load-bearing: the base weight is drawn from
// the configured initializer, the scale is drawn log-normally (always
// positive), and the stored weight is then divided by the scale. The
// product scale ⊙ weight therefore reproduces the plain initializer's
// draw exactly.
type FactorizedDense[T tensor.Float] struct {
	inDims     int
	outDims    int
	activation Activation[T]
	initWeight Initializer[T]
	initBias   Initializer[T]
	scaleMean  float64
	scaleStd   float64
	useBias    bool
}

// FactorizedDenseConfig carries the optional knobs of a
// FactorizedDense layer. The zero value selects an identity
// activation, Kaiming uniform weights, zero biases, an enabled bias
// term and the standard exp(N(1.0, 0.1^2)) scale draw.
type FactorizedDenseConfig[T tensor.Float] struct {
	Activation Activation[T]
	InitWeight Initializer[T]
	InitBias   Initializer[T]

	// ScaleMean and ScaleStd parameterize the log-normal scale draw
	// exp(N(ScaleMean, ScaleStd^2)). A zero ScaleStd selects the
	// defaults 1.0 and 0.1.
	ScaleMean float64
	ScaleStd  float64

	NoBias bool
}

// NewFactorizedDense creates a factorized layer with default
// initialization.
//
// Parameters:
//   - inDims: number of input features
//   - outDims: number of output features
//   - activation: nonlinearity applied to the affine output
//
// Returns a new FactorizedDense layer.
func NewFactorizedDense[T tensor.Float](inDims, outDims int, activation Activation[T]) *FactorizedDense[T] {
	return NewFactorizedDenseWithConfig(inDims, outDims, FactorizedDenseConfig[T]{Activation: activation})
}

// NewFactorizedDenseWithConfig creates a factorized layer with
// explicit configuration.
func NewFactorizedDenseWithConfig[T tensor.Float](inDims, outDims int, cfg FactorizedDenseConfig[T]) *FactorizedDense[T] {
	if inDims < 1 || outDims < 1 {
		panic(fmt.Sprintf("NewFactorizedDense: dimensions must be positive, got in=%d out=%d", inDims, outDims))
	}
	initWeight := cfg.InitWeight
	if initWeight == nil {
		initWeight = KaimingUniform[T](cfg.Activation.Gain())
	}
	initBias := cfg.InitBias
	if initBias == nil {
		initBias = Constant[T](0)
	}
	mean, std := cfg.ScaleMean, cfg.ScaleStd
	if std == 0 {
		mean, std = 1.0, 0.1
	}
	return &FactorizedDense[T]{
		inDims:     inDims,
		outDims:    outDims,
		activation: cfg.Activation,
		initWeight: initWeight,
		initBias:   initBias,
		scaleMean:  mean,
		scaleStd:   std,
		useBias:    !cfg.NoBias,
	}
}

// InDims returns the number of input features.
func (d *FactorizedDense[T]) InDims() int { return d.inDims }

// OutDims returns the number of output features.
func (d *FactorizedDense[T]) OutDims() int { return d.outDims }

// InitParams draws weight, then scale, then rescales the stored
// weight by the scale. Changing this order changes what the effective
// weight reproduces, so it is fixed.
func (d *FactorizedDense[T]) InitParams(rng *rand.Rand) *Params[T] {
	weight := d.initWeight(rng, tensor.Shape{d.outDims, d.inDims})
	scale := LogNormal[T](d.scaleMean, d.scaleStd)(rng, tensor.Shape{d.outDims, 1})
	weight = weight.Div(scale)

	ps := NewParams[T]()
	ps.Set("scale", scale)
	ps.Set("weight", weight)
	if d.useBias {
		ps.Set("bias", d.initBias(rng, tensor.Shape{d.outDims, 1}))
	}
	return ps
}

// InitState returns an empty state: FactorizedDense is stateless.
func (d *FactorizedDense[T]) InitState(_ *rand.Rand) *State[T] {
	return NewState[T]()
}

// Apply recomputes the effective weight scale ⊙ weight and evaluates
// the affine transform. The factorization is never collapsed into a
// stored product, since scale and weight evolve independently.
func (d *FactorizedDense[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	checkInDims("FactorizedDense", x, d.inDims)
	w := ps.Get("scale").Mul(ps.Get("weight"))
	y := applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
		out := w.MatMul(m)
		if d.useBias {
			out = out.Add(ps.Get("bias"))
		}
		return out
	})
	return d.activation.Apply(y), st
}
