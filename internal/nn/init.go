package nn

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Initializer draws a tensor of the given shape from some
// distribution. Layers take initializers as configuration so that the
// sampling scheme can be swapped without touching the layer.
type Initializer[T tensor.Float] func(rng *rand.Rand, shape tensor.Shape) *tensor.Dense[T]

// fill creates a tensor of the given shape and populates it from draw.
func fill[T tensor.Float](shape tensor.Shape, draw func() float64) *tensor.Dense[T] {
	out := tensor.Zeros[T](shape)
	data := out.Data()
	for i := range data {
		data[i] = T(draw())
	}
	return out
}

// Uniform returns an initializer drawing from U(-scale, scale).
func Uniform[T tensor.Float](scale float64) Initializer[T] {
	return UniformRange[T](-scale, scale)
}

// UniformRange returns an initializer drawing from U(min, max).
func UniformRange[T tensor.Float](min, max float64) Initializer[T] {
	return func(rng *rand.Rand, shape tensor.Shape) *tensor.Dense[T] {
		dist := distuv.Uniform{Min: min, Max: max, Src: rng}
		return fill[T](shape, dist.Rand)
	}
}

// Normal returns an initializer drawing from N(mean, std^2).
func Normal[T tensor.Float](mean, std float64) Initializer[T] {
	return func(rng *rand.Rand, shape tensor.Shape) *tensor.Dense[T] {
		dist := distuv.Normal{Mu: mean, Sigma: std, Src: rng}
		return fill[T](shape, dist.Rand)
	}
}

// LogNormal returns an initializer whose draws are exp(N(mean, std^2)).
// All draws are strictly positive, which makes it the default for
// multiplicative scale parameters.
func LogNormal[T tensor.Float](mean, std float64) Initializer[T] {
	return func(rng *rand.Rand, shape tensor.Shape) *tensor.Dense[T] {
		dist := distuv.LogNormal{Mu: mean, Sigma: std, Src: rng}
		return fill[T](shape, dist.Rand)
	}
}

// KaimingUniform returns the He fan-in initializer used for weight
// matrices: U(-bound, bound) with bound = gain * sqrt(3 / fan_in),
// where fan_in is the last axis of the shape.
//
// Gains follow the usual convention, see Activation.Gain.
func KaimingUniform[T tensor.Float](gain float64) Initializer[T] {
	return func(rng *rand.Rand, shape tensor.Shape) *tensor.Dense[T] {
		if len(shape) == 0 {
			panic(fmt.Sprintf("KaimingUniform: expected a shape with at least one axis, got %v", shape))
		}
		fanIn := shape[len(shape)-1]
		bound := 0.0
		if fanIn > 0 {
			bound = gain * math.Sqrt(3.0/float64(fanIn))
		}
		dist := distuv.Uniform{Min: -bound, Max: bound, Src: rng}
		return fill[T](shape, dist.Rand)
	}
}

// Constant returns an initializer that ignores the rng and fills the
// tensor with v. Constant(0) is the default bias initializer.
func Constant[T tensor.Float](v T) Initializer[T] {
	return func(_ *rand.Rand, shape tensor.Shape) *tensor.Dense[T] {
		return tensor.Full[T](shape, v)
	}
}
