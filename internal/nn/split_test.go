package nn

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// TestSplitFunctionVector routes a length-5 vector through a single
// index and a two-element span.
func TestSplitFunctionVector(t *testing.T) {
	layer := NewSplitFunction[float64](Index(0), Span(2, 4))
	ps, st := Setup[float64](rand.New(rand.NewSource(1)), layer)
	require.Equal(t, 2, layer.NumOutputs())

	x := tensor.MustFromSlice([]float64{10, 20, 30, 40, 50}, tensor.Shape{5})
	views, newSt := layer.Apply(x, ps, st)
	require.Len(t, views, 2)
	assert.Same(t, st, newSt)

	require.True(t, views[0].Shape().Equal(tensor.Shape{1}))
	require.True(t, views[1].Shape().Equal(tensor.Shape{2}))
	assert.Equal(t, []float64{10}, views[0].Data())
	assert.Equal(t, []float64{30, 40}, views[1].Data())
}

func TestSplitFunctionMatrix(t *testing.T) {
	// Coordinates (x, y, t) split into spatial and temporal parts.
	layer := NewSplitFunction[float64](Span(0, 2), Index(2))

	x := tensor.MustFromSlice([]float64{
		1, 2,
		3, 4,
		5, 6,
	}, tensor.Shape{3, 2})
	views, _ := layer.Apply(x, NewParams[float64](), NewState[float64]())

	require.True(t, views[0].Shape().Equal(tensor.Shape{2, 2}))
	require.True(t, views[1].Shape().Equal(tensor.Shape{1, 2}))
	assert.Equal(t, []float64{1, 2, 3, 4}, views[0].Data())
	assert.Equal(t, []float64{5, 6}, views[1].Data())
}

// TestSplitFunctionViewsAlias checks the outputs share storage with
// the input rather than copying.
func TestSplitFunctionViewsAlias(t *testing.T) {
	layer := NewSplitFunction[float64](Span(1, 3))
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4})
	views, _ := layer.Apply(x, NewParams[float64](), NewState[float64]())

	x.Set(99, 1)
	assert.Equal(t, 99.0, views[0].At(0))
}

func TestSplitFunctionOverlappingRanges(t *testing.T) {
	// Overlap is allowed: ranges need not partition the axis.
	layer := NewSplitFunction[float64](Span(0, 3), Span(1, 4))
	x := tensor.MustFromSlice([]float64{1, 2, 3, 4}, tensor.Shape{4})
	views, _ := layer.Apply(x, NewParams[float64](), NewState[float64]())

	assert.Equal(t, []float64{1, 2, 3}, views[0].Data())
	assert.Equal(t, []float64{2, 3, 4}, views[1].Data())
}

func TestSplitFunctionChecks(t *testing.T) {
	assert.Panics(t, func() { NewSplitFunction[float64]() })
	assert.Panics(t, func() { NewSplitFunction[float64](Span(2, 2)) })
	assert.Panics(t, func() { NewSplitFunction[float64](Span(3, 1)) })
	assert.Panics(t, func() { NewSplitFunction[float64](Span(-1, 2)) })

	// Upper bounds are validated against the actual input.
	layer := NewSplitFunction[float64](Span(0, 6))
	x := tensor.Ones[float64](tensor.Shape{4})
	assert.Panics(t, func() {
		layer.Apply(x, NewParams[float64](), NewState[float64]())
	})
}
