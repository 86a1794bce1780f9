package nn

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

func TestFourierFeatureFixed(t *testing.T) {
	// in_dims=2, frequencies (1, 2): out_dims = 2*2*2 = 8.
	layer := NewFourierFeature[float64](2, 1, 2)
	require.Equal(t, 8, layer.OutDims())

	ps, st := Setup[float64](rand.New(rand.NewSource(1)), layer)
	assert.Empty(t, ps.Names())
	assert.Empty(t, st.Names())

	x := tensor.MustFromSlice([]float64{0.25, 0.5}, tensor.Shape{2, 1})
	y, _ := layer.Apply(x, ps, st)
	require.True(t, y.Shape().Equal(tensor.Shape{8, 1}))

	// Rows per frequency f: sin(2π f x) then cos(2π f x).
	want := []float64{
		math.Sin(2 * math.Pi * 0.25), math.Sin(2 * math.Pi * 0.5),
		math.Cos(2 * math.Pi * 0.25), math.Cos(2 * math.Pi * 0.5),
		math.Sin(4 * math.Pi * 0.25), math.Sin(4 * math.Pi * 0.5),
		math.Cos(4 * math.Pi * 0.25), math.Cos(4 * math.Pi * 0.5),
	}
	for i, w := range want {
		assert.InDelta(t, w, y.At(i, 0), 1e-12, "row %d", i)
	}
}

// TestFourierFeatureOutDims checks the out_dims declaration against
// the realized first-axis length across constructions and input
// ranks.
func TestFourierFeatureOutDims(t *testing.T) {
	tests := []struct {
		name  string
		layer *FourierFeature[float64]
		x     *tensor.Dense[float64]
	}{
		{"fixed vector", NewFourierFeature[float64](3, 1.0), tensor.Ones[float64](tensor.Shape{3})},
		{"fixed matrix", NewFourierFeature[float64](2, 1, 5, 10), tensor.Ones[float64](tensor.Shape{2, 7})},
		{"random matrix", NewRandomFourierFeature[float64](2, 10, 1.5), tensor.Ones[float64](tensor.Shape{2, 4})},
		{"multi-scale rank3", NewMultiScaleFourierFeature[float64](2,
			FrequencyBand{Std: 1, Count: 3},
			FrequencyBand{Std: 10, Count: 2},
		), tensor.Ones[float64](tensor.Shape{2, 3, 4})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ps, st := Setup[float64](rand.New(rand.NewSource(5)), tt.layer)
			y, _ := tt.layer.Apply(tt.x, ps, st)
			assert.Equal(t, tt.layer.OutDims(), y.Shape()[0])
		})
	}
}

func TestFourierFeatureMultiScale(t *testing.T) {
	layer := NewMultiScaleFourierFeature[float64](2,
		FrequencyBand{Std: 1, Count: 3},
		FrequencyBand{Std: 10, Count: 2},
	)
	require.Equal(t, 10, layer.OutDims())

	rng := rand.New(rand.NewSource(21))
	ps, st := Setup[float64](rng, layer)

	w := st.Get("frequencies")
	require.True(t, w.Shape().Equal(tensor.Shape{5, 2}))

	x := tensor.MustFromSlice([]float64{0.3, -0.7, 1.1, 0.2}, tensor.Shape{2, 2})
	y, newSt := layer.Apply(x, ps, st)
	require.True(t, y.Shape().Equal(tensor.Shape{10, 2}))
	assert.Same(t, st, newSt)

	// Recompute [sin(Wx); cos(Wx)] from the stored frequency matrix.
	wx := w.MatMul(x)
	for j := 0; j < 2; j++ {
		for i := 0; i < 5; i++ {
			assert.InDelta(t, math.Sin(wx.At(i, j)), y.At(i, j), 1e-12)
			assert.InDelta(t, math.Cos(wx.At(i, j)), y.At(5+i, j), 1e-12)
		}
	}
}

// TestFourierFeatureSeedDeterminism checks that reseeding reproduces
// both the frequency matrix and the evaluation output.
func TestFourierFeatureSeedDeterminism(t *testing.T) {
	build := func() (*tensor.Dense[float64], *tensor.Dense[float64]) {
		layer := NewRandomFourierFeature[float64](3, 16, 2.0)
		ps, st := Setup[float64](rand.New(rand.NewSource(123)), layer)
		x := tensor.MustFromSlice([]float64{0.1, 0.2, 0.3}, tensor.Shape{3, 1})
		y, _ := layer.Apply(x, ps, st)
		return st.Get("frequencies"), y
	}

	w1, y1 := build()
	w2, y2 := build()
	assert.Equal(t, w1.Data(), w2.Data())
	assert.Equal(t, y1.Data(), y2.Data())
}

func TestFourierFeatureBandStds(t *testing.T) {
	// With wildly separated stds the two blocks must be visibly
	// different in scale.
	layer := NewMultiScaleFourierFeature[float64](4,
		FrequencyBand{Std: 0.01, Count: 50},
		FrequencyBand{Std: 100, Count: 50},
	)
	st := layer.InitState(rand.New(rand.NewSource(2)))
	w := st.Get("frequencies")

	var lowSum, highSum float64
	for i := 0; i < 50; i++ {
		for j := 0; j < 4; j++ {
			lowSum += math.Abs(w.At(i, j))
			highSum += math.Abs(w.At(50+i, j))
		}
	}
	assert.Less(t, lowSum*100, highSum)
}

func TestFourierFeatureConstructionPanics(t *testing.T) {
	assert.Panics(t, func() { NewFourierFeature[float64](0, 1) })
	assert.Panics(t, func() { NewFourierFeature[float64](2) })
	assert.Panics(t, func() { NewMultiScaleFourierFeature[float64](2) })
	assert.Panics(t, func() {
		NewMultiScaleFourierFeature[float64](2, FrequencyBand{Std: -1, Count: 4})
	})
	assert.Panics(t, func() {
		NewMultiScaleFourierFeature[float64](2, FrequencyBand{Std: 1, Count: 0})
	})

	// The convenience constructor rejects odd widths.
	assert.Panics(t, func() { NewRandomFourierFeature[float64](2, 7, 1.0) })
	assert.NotPanics(t, func() { NewRandomFourierFeature[float64](2, 8, 1.0) })
}

func TestFourierFeatureInDimsMismatch(t *testing.T) {
	layer := NewFourierFeature[float64](2, 1.0)
	ps, st := Setup[float64](rand.New(rand.NewSource(1)), layer)
	x := tensor.Ones[float64](tensor.Shape{3, 4})
	assert.Panics(t, func() { layer.Apply(x, ps, st) })
}
