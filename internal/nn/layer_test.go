package nn

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// TestSetupDrawOrder checks that Setup draws parameters before state,
// so replaying the seed through the individual init calls reproduces
// both trees.
func TestSetupDrawOrder(t *testing.T) {
	layer := NewDiscreteFourierFeature[float64](2, 4, 3, 2)

	ps, st := Setup[float64](rand.New(rand.NewSource(5)), layer)

	rng := rand.New(rand.NewSource(5))
	wantPs := layer.InitParams(rng)
	wantSt := layer.InitState(rng)

	require.Equal(t, wantPs.Get("bias").Data(), ps.Get("bias").Data())
	require.Equal(t, wantSt.Get("weight").Data(), st.Get("weight").Data())
	assert.Equal(t, wantSt.Scalar("fundamental_freq"), st.Scalar("fundamental_freq"))
}

func TestApplyRejectsScalarInput(t *testing.T) {
	layer := NewDense[float64](1, 1, Identity[float64]())
	ps, st := Setup[float64](rand.New(rand.NewSource(1)), layer)

	scalar := tensor.Ones[float64](tensor.Shape{})
	assert.Panics(t, func() { layer.Apply(scalar, ps, st) })
}

// TestLayerInterfaces pins which catalog types satisfy which call
// contracts.
func TestLayerInterfaces(t *testing.T) {
	var _ UnaryLayer[float32] = (*Dense[float32])(nil)
	var _ UnaryLayer[float32] = (*FactorizedDense[float32])(nil)
	var _ UnaryLayer[float32] = (*FourierFeature[float32])(nil)
	var _ UnaryLayer[float32] = (*DiscreteFourierFeature[float32])(nil)
	var _ UnaryLayer[float32] = (*RBF[float32])(nil)
	var _ UnaryLayer[float32] = (*ScalarLayer[float32])(nil)
	var _ UnaryLayer[float32] = (*ConstantFunction[float32])(nil)
	var _ UnaryLayer[float32] = (*Chain[float32])(nil)
	var _ PairLayer[float32] = (*DeepONet[float32])(nil)

	// SplitFunction initializes like any layer but fans out, so it
	// satisfies only the base contract.
	var _ Layer[float32] = (*SplitFunction[float32])(nil)
}
