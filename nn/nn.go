// Copyright 2026 Ritz ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// Core contracts

// Layer is a structural description of a numeric transform: its
// dimensions and hyperparameters, independent of learned values.
// Layers are immutable after construction; all learned and derived
// arrays live in Params and State trees created by the Init methods.
type Layer[T tensor.Float] = nn.Layer[T]

// UnaryLayer is a Layer evaluated on a single input.
type UnaryLayer[T tensor.Float] = nn.UnaryLayer[T]

// PairLayer is a Layer evaluated on an input pair, such as DeepONet's
// (function samples, query coordinates).
type PairLayer[T tensor.Float] = nn.PairLayer[T]

// Params is the tree of learned arrays for a layer: named tensors
// plus one child subtree per sub-layer.
type Params[T tensor.Float] = nn.Params[T]

// State is the tree of non-learned arrays and scalars for a layer,
// such as fixed random frequencies or derived constants.
type State[T tensor.Float] = nn.State[T]

// NewParams creates an empty parameter tree.
func NewParams[T tensor.Float]() *Params[T] {
	return nn.NewParams[T]()
}

// NewState creates an empty state tree.
func NewState[T tensor.Float]() *State[T] {
	return nn.NewState[T]()
}

// Setup initializes a layer, drawing parameters before state. Use it
// wherever both trees are needed; the order is part of the
// reproducibility contract.
//
// Example:
//
//	rng := rand.New(rand.NewSource(1))
//	ps, st := nn.Setup[float64](rng, layer)
func Setup[T tensor.Float](rng *rand.Rand, layer Layer[T]) (*Params[T], *State[T]) {
	return nn.Setup(rng, layer)
}

// Activations

// Activation is a named elementwise nonlinearity. The zero value is
// the identity.
type Activation[T tensor.Float] = nn.Activation[T]

// Identity returns the identity activation.
func Identity[T tensor.Float]() Activation[T] { return nn.Identity[T]() }

// ReLU returns the rectified linear activation.
func ReLU[T tensor.Float]() Activation[T] { return nn.ReLU[T]() }

// Tanh returns the hyperbolic tangent activation.
func Tanh[T tensor.Float]() Activation[T] { return nn.Tanh[T]() }

// Sigmoid returns the logistic activation.
func Sigmoid[T tensor.Float]() Activation[T] { return nn.Sigmoid[T]() }

// Sin returns the sine activation used by sinusoidal representation
// networks.
func Sin[T tensor.Float]() Activation[T] { return nn.Sin[T]() }

// ActivationByName resolves "identity", "relu", "tanh", "sigmoid" or
// "sin". The empty string is the identity. Panics on unknown names.
func ActivationByName[T tensor.Float](name string) Activation[T] {
	return nn.ActivationByName[T](name)
}

// Initializers

// Initializer draws a tensor of the given shape from a distribution.
type Initializer[T tensor.Float] = nn.Initializer[T]

// Uniform draws from U(-scale, scale).
func Uniform[T tensor.Float](scale float64) Initializer[T] {
	return nn.Uniform[T](scale)
}

// UniformRange draws from U(min, max).
func UniformRange[T tensor.Float](min, max float64) Initializer[T] {
	return nn.UniformRange[T](min, max)
}

// Normal draws from N(mean, std²).
func Normal[T tensor.Float](mean, std float64) Initializer[T] {
	return nn.Normal[T](mean, std)
}

// LogNormal draws exp(N(mean, std²)), always positive.
func LogNormal[T tensor.Float](mean, std float64) Initializer[T] {
	return nn.LogNormal[T](mean, std)
}

// KaimingUniform draws from the variance-scaling uniform distribution
// with the given activation gain, using the shape's last dimension as
// fan-in.
func KaimingUniform[T tensor.Float](gain float64) Initializer[T] {
	return nn.KaimingUniform[T](gain)
}

// Constant fills with a fixed value, ignoring the random source.
func Constant[T tensor.Float](v T) Initializer[T] {
	return nn.Constant[T](v)
}

// Dense layers

// Dense is the affine layer activation(W·x + b).
type Dense[T tensor.Float] = nn.Dense[T]

// DenseConfig customizes a Dense layer's initializers and bias.
type DenseConfig[T tensor.Float] = nn.DenseConfig[T]

// NewDense creates an affine layer with Kaiming-uniform weight
// initialization tuned by the activation's gain.
//
// Example:
//
//	layer := nn.NewDense[float64](2, 16, nn.Tanh[float64]())
func NewDense[T tensor.Float](inDims, outDims int, activation Activation[T]) *Dense[T] {
	return nn.NewDense[T](inDims, outDims, activation)
}

// NewDenseWithConfig creates an affine layer with explicit
// configuration.
func NewDenseWithConfig[T tensor.Float](inDims, outDims int, cfg DenseConfig[T]) *Dense[T] {
	return nn.NewDenseWithConfig[T](inDims, outDims, cfg)
}

// NewSine creates a Dense layer with sine activation and the
// frequency-aware weight initialization of sinusoidal representation
// networks: omega > 0 draws first-layer weights from U(±omega/in),
// omega == 0 selects the variance-scaling rule for hidden layers.
//
// Example:
//
//	first := nn.NewSine[float64](1, 32, 30) // first layer, omega_0 = 30
//	hidden := nn.NewSine[float64](32, 32, 0)
func NewSine[T tensor.Float](inDims, outDims int, omega float64) *Dense[T] {
	return nn.NewSine[T](inDims, outDims, omega)
}

// FactorizedDense factorizes the weight into a per-row scale vector
// and a base matrix; the effective weight is scale ⊙ weight.
type FactorizedDense[T tensor.Float] = nn.FactorizedDense[T]

// FactorizedDenseConfig customizes a FactorizedDense layer.
type FactorizedDenseConfig[T tensor.Float] = nn.FactorizedDenseConfig[T]

// NewFactorizedDense creates a random-weight-factorization layer with
// default scale distribution exp(N(1.0, 0.1²)).
func NewFactorizedDense[T tensor.Float](inDims, outDims int, activation Activation[T]) *FactorizedDense[T] {
	return nn.NewFactorizedDense[T](inDims, outDims, activation)
}

// NewFactorizedDenseWithConfig creates a random-weight-factorization
// layer with explicit configuration.
func NewFactorizedDenseWithConfig[T tensor.Float](inDims, outDims int, cfg FactorizedDenseConfig[T]) *FactorizedDense[T] {
	return nn.NewFactorizedDenseWithConfig[T](inDims, outDims, cfg)
}

// Embeddings

// FourierFeature embeds coordinates through sines and cosines, either
// of fixed frequencies or of random multi-scale projections.
type FourierFeature[T tensor.Float] = nn.FourierFeature[T]

// FrequencyBand describes one scale of a multi-scale random Fourier
// embedding: Count rows of frequencies drawn from N(0, Std²).
type FrequencyBand = nn.FrequencyBand

// NewFourierFeature creates the fixed-frequency embedding
// [sin(2π·f·x); cos(2π·f·x)] stacked per frequency.
//
// Example:
//
//	ff := nn.NewFourierFeature[float64](2, 1, 2, 4) // out_dims = 2*2*3
func NewFourierFeature[T tensor.Float](inDims int, frequencies ...float64) *FourierFeature[T] {
	return nn.NewFourierFeature[T](inDims, frequencies...)
}

// NewMultiScaleFourierFeature creates the random embedding
// [sin(W·x); cos(W·x)] with W drawn bandwise at initialization and
// kept fixed in state.
func NewMultiScaleFourierFeature[T tensor.Float](inDims int, bands ...FrequencyBand) *FourierFeature[T] {
	return nn.NewMultiScaleFourierFeature[T](inDims, bands...)
}

// NewRandomFourierFeature creates a single-band random embedding with
// an explicit output width, which must be even.
func NewRandomFourierFeature[T tensor.Float](inDims, outDims int, std float64) *FourierFeature[T] {
	return nn.NewRandomFourierFeature[T](inDims, outDims, std)
}

// DiscreteFourierFeature embeds inputs into a basis of integer
// harmonics with an explicit period, exactly periodic by
// construction.
type DiscreteFourierFeature[T tensor.Float] = nn.DiscreteFourierFeature[T]

// NewDiscreteFourierFeature creates a periodic harmonic embedding of
// N harmonics with period P.
//
// Example:
//
//	dff := nn.NewDiscreteFourierFeature[float64](1, 16, 8, 2.0)
func NewDiscreteFourierFeature[T tensor.Float](inDims, outDims, harmonics int, period float64) *DiscreteFourierFeature[T] {
	return nn.NewDiscreteFourierFeature[T](inDims, outDims, harmonics, period)
}

// RBF is the normalized radial-basis layer: softmax-normalized
// center similarities mapped through a weight matrix.
type RBF[T tensor.Float] = nn.RBF[T]

// NewRBF creates a normalized RBF layer with numCenters learned
// centers and kernel width sigma.
func NewRBF[T tensor.Float](inDims, outDims, numCenters int, sigma float64) *RBF[T] {
	return nn.NewRBF[T](inDims, outDims, numCenters, sigma)
}

// Utility layers

// ScalarLayer owns a single learned scalar combined elementwise with
// its input.
type ScalarLayer[T tensor.Float] = nn.ScalarLayer[T]

// ScalarAdd is the addition combine function for ScalarLayer.
func ScalarAdd[T tensor.Float](scalar, x T) T { return nn.ScalarAdd(scalar, x) }

// ScalarMul is the multiplication combine function for ScalarLayer.
func ScalarMul[T tensor.Float](scalar, x T) T { return nn.ScalarMul(scalar, x) }

// NewScalarLayer creates a layer applying combine(scalar, x)
// elementwise, with the scalar initialized to zero.
func NewScalarLayer[T tensor.Float](combine func(scalar, x T) T) *ScalarLayer[T] {
	return nn.NewScalarLayer[T](combine)
}

// ConstantFunction ignores its input and returns its learned scalar
// broadcast to the input's shape.
type ConstantFunction[T tensor.Float] = nn.ConstantFunction[T]

// NewConstantFunction creates a constant layer with the scalar
// initialized to one.
func NewConstantFunction[T tensor.Float]() *ConstantFunction[T] {
	return nn.NewConstantFunction[T]()
}

// IndexRange selects rows [From, To) of an input's feature axis.
type IndexRange = nn.IndexRange

// Index is the length-1 range selecting row i.
func Index(i int) IndexRange { return nn.Index(i) }

// Span is the range selecting rows [from, to).
func Span(from, to int) IndexRange { return nn.Span(from, to) }

// SplitFunction partitions an input's feature axis into views, one
// per declared range.
type SplitFunction[T tensor.Float] = nn.SplitFunction[T]

// NewSplitFunction creates a feature-axis splitter.
//
// Example:
//
//	split := nn.NewSplitFunction[float64](nn.Index(0), nn.Span(1, 3))
func NewSplitFunction[T tensor.Float](ranges ...IndexRange) *SplitFunction[T] {
	return nn.NewSplitFunction[T](ranges...)
}

// Containers

// Chain composes unary layers sequentially.
type Chain[T tensor.Float] = nn.Chain[T]

// NewChain creates a sequential container. Parameters and state nest
// one child per stage, named "layer_1" through "layer_N".
//
// Example:
//
//	model := nn.NewChain[float64](
//	    nn.NewFourierFeature[float64](2, 1, 2),
//	    nn.NewDense[float64](8, 16, nn.Tanh[float64]()),
//	    nn.NewDense[float64](16, 1, nn.Identity[float64]()),
//	)
func NewChain[T tensor.Float](layers ...UnaryLayer[T]) *Chain[T] {
	return nn.NewChain[T](layers...)
}

// NewFullyConnected builds a Chain of Dense layers from a width list.
// With outermostLinear the final layer skips the activation.
func NewFullyConnected[T tensor.Float](sizes []int, activation Activation[T], outermostLinear bool) *Chain[T] {
	return nn.NewFullyConnected[T](sizes, activation, outermostLinear)
}

// Operator learning

// DeepONet combines a branch network over function samples with a
// trunk network over query coordinates through a bilinear product
// plus a learned scalar bias.
type DeepONet[T tensor.Float] = nn.DeepONet[T]

// DeepONetConfig customizes a DeepONet's projection layer and bias
// combination.
type DeepONetConfig[T tensor.Float] = nn.DeepONetConfig[T]

// NewDeepONet composes branch and trunk networks whose output widths
// already match.
func NewDeepONet[T tensor.Float](branch, trunk UnaryLayer[T]) *DeepONet[T] {
	return nn.NewDeepONet[T](branch, trunk)
}

// NewDeepONetWithConfig composes branch and trunk networks with
// explicit configuration, including an optional projection layer for
// mismatched widths.
func NewDeepONetWithConfig[T tensor.Float](branch, trunk UnaryLayer[T], cfg DeepONetConfig[T]) *DeepONet[T] {
	return nn.NewDeepONetWithConfig[T](branch, trunk, cfg)
}

// NewDeepONetFromSizes builds branch and trunk as fully connected
// networks from width lists; the final widths must match. The branch
// ends linear, the trunk keeps its activation on the last layer.
//
// Example:
//
//	don := nn.NewDeepONetFromSizes[float64](
//	    []int{3, 5, 4}, "relu",
//	    []int{2, 6, 4, 4}, "tanh",
//	)
func NewDeepONetFromSizes[T tensor.Float](branchSizes []int, branchActivation string, trunkSizes []int, trunkActivation string) *DeepONet[T] {
	return nn.NewDeepONetFromSizes[T](branchSizes, branchActivation, trunkSizes, trunkActivation)
}
