package nn

import (
	"fmt"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// NewSine creates a fully connected layer with sine activation and the
// weight-initialization rule of sinusoidal representation networks.
//
// Performs the transformation: y = sin(W @ x + b)
//
// A positive omega selects the first-layer rule, drawing weights from
// U(-omega/in_dims, omega/in_dims) so that the layer spans a wide
// frequency range. Passing omega = 0 selects the hidden-layer rule,
// the Kaiming uniform initializer with the sin gain.
//
// Parameters:
//   - inDims: number of input features
//   - outDims: number of output features
//   - omega: angular frequency of the first-layer rule, or 0
//
// Returns a Dense layer configured for sinusoidal use.
func NewSine[T tensor.Float](inDims, outDims int, omega float64) *Dense[T] {
	if omega < 0 {
		panic(fmt.Sprintf("NewSine: omega must be >= 0, got %v", omega))
	}
	cfg := DenseConfig[T]{Activation: Sin[T]()}
	if omega > 0 {
		cfg.InitWeight = Uniform[T](omega / float64(inDims))
	}
	return NewDenseWithConfig(inDims, outDims, cfg)
}
