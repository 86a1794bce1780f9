package nn

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

func TestChainNamesAndNesting(t *testing.T) {
	chain := NewChain[float64](
		NewFourierFeature[float64](2, 1.0),
		NewDense[float64](4, 3, Tanh[float64]()),
	)
	require.Equal(t, 2, chain.Len())
	require.Equal(t, []string{"layer_1", "layer_2"}, chain.LayerNames())

	ps, st := Setup[float64](rand.New(rand.NewSource(1)), chain)
	require.Equal(t, []string{"layer_1", "layer_2"}, ps.ChildNames())
	require.Equal(t, []string{"layer_1", "layer_2"}, st.ChildNames())

	// Fourier stage carries no parameters; the dense stage does.
	assert.Empty(t, ps.Child("layer_1").Names())
	assert.Equal(t, []string{"bias", "weight"}, ps.Child("layer_2").Names())
}

func TestChainForward(t *testing.T) {
	chain := NewChain[float64](
		NewDense[float64](2, 2, Identity[float64]()),
		NewDense[float64](2, 1, Identity[float64]()),
	)
	st := chain.InitState(rand.New(rand.NewSource(1)))

	ps := NewParams[float64]()
	first := NewParams[float64]()
	first.Set("weight", tensor.MustFromSlice([]float64{1, 1, 1, -1}, tensor.Shape{2, 2}))
	first.Set("bias", tensor.MustFromSlice([]float64{0, 0}, tensor.Shape{2, 1}))
	second := NewParams[float64]()
	second.Set("weight", tensor.MustFromSlice([]float64{2, 3}, tensor.Shape{1, 2}))
	second.Set("bias", tensor.MustFromSlice([]float64{-1}, tensor.Shape{1, 1}))
	ps.SetChild("layer_1", first)
	ps.SetChild("layer_2", second)

	// x = (1, 2): stage 1 → (3, -1), stage 2 → 2*3 + 3*(-1) - 1 = 2.
	x := tensor.MustFromSlice([]float64{1, 2}, tensor.Shape{2, 1})
	y, newSt := chain.Apply(x, ps, st)

	assert.InDelta(t, 2.0, y.At(0, 0), 1e-12)
	require.Equal(t, []string{"layer_1", "layer_2"}, newSt.ChildNames())
}

// TestChainStateThreading runs a chain whose first stage owns state
// and checks the merged state keeps every stage's slot set.
func TestChainStateThreading(t *testing.T) {
	chain := NewChain[float64](
		NewRandomFourierFeature[float64](2, 6, 1.0),
		NewDense[float64](6, 1, Tanh[float64]()),
	)
	ps, st := Setup[float64](rand.New(rand.NewSource(3)), chain)

	x := tensor.Ones[float64](tensor.Shape{2, 4})
	_, newSt := chain.Apply(x, ps, st)

	require.Equal(t, []string{"layer_1", "layer_2"}, newSt.ChildNames())
	assert.Equal(t, []string{"frequencies"}, newSt.Child("layer_1").Names())
	assert.Empty(t, newSt.Child("layer_2").Names())

	// The stateless evaluation reuses the same frequency matrix.
	assert.Same(t, st.Child("layer_1").Get("frequencies"), newSt.Child("layer_1").Get("frequencies"))
}

func TestChainInitDeterminism(t *testing.T) {
	build := func() *Params[float64] {
		chain := NewFullyConnected([]int{2, 8, 8, 1}, Tanh[float64](), true)
		return chain.InitParams(rand.New(rand.NewSource(99)))
	}
	a, b := build(), build()

	for _, name := range []string{"layer_1", "layer_2", "layer_3"} {
		wa := a.Child(name).Get("weight").Data()
		wb := b.Child(name).Get("weight").Data()
		assert.Equal(t, wa, wb, "stage %s", name)
	}
}

func TestFullyConnectedShapes(t *testing.T) {
	chain := NewFullyConnected([]int{3, 5, 4}, ReLU[float64](), true)
	require.Equal(t, 2, chain.Len())

	ps := chain.InitParams(rand.New(rand.NewSource(1)))
	require.True(t, ps.Child("layer_1").Get("weight").Shape().Equal(tensor.Shape{5, 3}))
	require.True(t, ps.Child("layer_2").Get("weight").Shape().Equal(tensor.Shape{4, 5}))
}

// TestFullyConnectedOutermostLinear forces negative pre-activations
// through the final stage: with outermostLinear the sign survives,
// without it relu clamps to zero.
func TestFullyConnectedOutermostLinear(t *testing.T) {
	negParams := func(chain *Chain[float64]) *Params[float64] {
		ps := NewParams[float64]()
		l1 := NewParams[float64]()
		l1.Set("weight", tensor.Full[float64](tensor.Shape{2, 1}, 1))
		l1.Set("bias", tensor.Zeros[float64](tensor.Shape{2, 1}))
		l2 := NewParams[float64]()
		l2.Set("weight", tensor.Full[float64](tensor.Shape{1, 2}, -1))
		l2.Set("bias", tensor.Zeros[float64](tensor.Shape{1, 1}))
		ps.SetChild("layer_1", l1)
		ps.SetChild("layer_2", l2)
		return ps
	}

	x := tensor.MustFromSlice([]float64{1}, tensor.Shape{1, 1})

	linear := NewFullyConnected([]int{1, 2, 1}, ReLU[float64](), true)
	y, _ := linear.Apply(x, negParams(linear), linear.InitState(rand.New(rand.NewSource(1))))
	assert.InDelta(t, -2.0, y.At(0, 0), 1e-12)

	activated := NewFullyConnected([]int{1, 2, 1}, ReLU[float64](), false)
	y, _ = activated.Apply(x, negParams(activated), activated.InitState(rand.New(rand.NewSource(1))))
	assert.Zero(t, y.At(0, 0))
}

func TestFullyConnectedTanhGain(t *testing.T) {
	chain := NewFullyConnected([]int{4, 16}, Tanh[float64](), false)
	ps := chain.InitParams(rand.New(rand.NewSource(12)))

	bound := (5.0 / 3.0) * math.Sqrt(3.0/4.0)
	for _, v := range ps.Child("layer_1").Get("weight").Data() {
		require.LessOrEqual(t, math.Abs(v), bound)
	}
}

func TestChainConstructionPanics(t *testing.T) {
	assert.Panics(t, func() { NewChain[float64]() })
	assert.Panics(t, func() { NewFullyConnected([]int{3}, Tanh[float64](), true) })
	assert.Panics(t, func() { NewFullyConnected([]int{3, 0, 1}, Tanh[float64](), true) })
}
