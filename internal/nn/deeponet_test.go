package nn

import (
	"testing"

	"golang.org/x/exp/rand"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// TestDeepONetEndToEnd builds the reference operator network (branch
// 3→5→4 relu, trunk 2→6→4→4 tanh) and verifies the output against a
// direct recomputation from the returned parameters.
func TestDeepONetEndToEnd(t *testing.T) {
	don := NewDeepONetFromSizes[float64](
		[]int{3, 5, 4}, "relu",
		[]int{2, 6, 4, 4}, "tanh",
	)
	ps, st := Setup[float64](rand.New(rand.NewSource(42)), don)

	v := tensor.MustFromSlice([]float64{0.5, -1.0, 2.0}, tensor.Shape{3, 1})
	xi := tensor.MustFromSlice([]float64{0.25, 0.75}, tensor.Shape{2, 1})

	out, newSt := don.ApplyPair(v, xi, ps, st)
	require.True(t, out.Shape().Equal(tensor.Shape{1, 1}))

	// Recompute transpose(branch(v)) @ trunk(xi) + bias by hand.
	b, _ := don.branch.Apply(v, ps.Child("branch"), st.Child("branch"))
	tr, _ := don.trunk.Apply(xi, ps.Child("trunk"), st.Child("trunk"))
	want := b.T().MatMul(tr).At(0, 0) + ps.Child("bias").Get("scalar").At(0)

	assert.InDelta(t, want, out.At(0, 0), 1e-12)
	assert.Equal(t, []string{"bias", "branch", "trunk"}, newSt.ChildNames())
}

func TestDeepONetBatchShapes(t *testing.T) {
	don := NewDeepONetFromSizes[float64](
		[]int{3, 5, 4}, "relu",
		[]int{2, 6, 4, 4}, "tanh",
	)
	ps, st := Setup[float64](rand.New(rand.NewSource(1)), don)

	// m=2 input functions, n=3 query points.
	v := tensor.Ones[float64](tensor.Shape{3, 2})
	xi := tensor.Ones[float64](tensor.Shape{2, 3})
	out, _ := don.ApplyPair(v, xi, ps, st)

	assert.True(t, out.Shape().Equal(tensor.Shape{2, 3}))
}

// TestDeepONetBiasShifts checks the learned global bias reaches every
// output entry.
func TestDeepONetBiasShifts(t *testing.T) {
	don := NewDeepONetFromSizes[float64](
		[]int{3, 4}, "relu",
		[]int{2, 4}, "tanh",
	)
	ps, st := Setup[float64](rand.New(rand.NewSource(7)), don)

	v := tensor.Ones[float64](tensor.Shape{3, 2})
	xi := tensor.Ones[float64](tensor.Shape{2, 2})

	base, _ := don.ApplyPair(v, xi, ps, st)
	ps.Child("bias").Get("scalar").Set(10, 0)
	shifted, _ := don.ApplyPair(v, xi, ps, st)

	for i := range base.Data() {
		assert.InDelta(t, base.Data()[i]+10, shifted.Data()[i], 1e-12)
	}
}

func TestDeepONetMismatchedWidthsPanicAtConstruction(t *testing.T) {
	assert.Panics(t, func() {
		NewDeepONetFromSizes[float64](
			[]int{3, 5, 4}, "relu",
			[]int{2, 6, 4, 5}, "tanh",
		)
	})
	assert.Panics(t, func() {
		NewDeepONetFromSizes[float64]([]int{3}, "relu", []int{2, 4}, "tanh")
	})
}

func TestDeepONetMismatchedWidthsPanicAtEvaluation(t *testing.T) {
	// Hand-assembled networks bypass the constructor's width check;
	// the evaluation check still refuses the bilinear product.
	don := NewDeepONet[float64](
		NewFullyConnected([]int{3, 4}, ReLU[float64](), true),
		NewFullyConnected([]int{2, 5}, Tanh[float64](), false),
	)
	ps, st := Setup[float64](rand.New(rand.NewSource(1)), don)

	v := tensor.Ones[float64](tensor.Shape{3, 1})
	xi := tensor.Ones[float64](tensor.Shape{2, 1})
	assert.Panics(t, func() { don.ApplyPair(v, xi, ps, st) })
}

// TestDeepONetNoOpProjectionParity compares the projection-free fast
// path against an identity projection: the two evaluation paths must
// agree numerically.
func TestDeepONetNoOpProjectionParity(t *testing.T) {
	build := func(cfg DeepONetConfig[float64]) (*DeepONet[float64], *Params[float64], *State[float64]) {
		don := NewDeepONetWithConfig(
			NewFullyConnected([]int{3, 5, 4}, ReLU[float64](), true),
			NewFullyConnected([]int{2, 6, 4}, Tanh[float64](), false),
			cfg,
		)
		ps, st := Setup[float64](rand.New(rand.NewSource(17)), don)
		return don, ps, st
	}

	plain, psPlain, stPlain := build(DeepONetConfig[float64]{})
	proj, psProj, stProj := build(DeepONetConfig[float64]{
		Projection: NewDense[float64](4, 4, Identity[float64]()),
	})

	// Make the projection an exact no-op.
	pp := psProj.Child("projection")
	pp.Set("weight", tensor.Eye[float64](4))
	pp.Set("bias", tensor.Zeros[float64](tensor.Shape{4, 1}))

	v := tensor.MustFromSlice([]float64{0.3, 1.4, -0.8, 2.2, 0.0, -1.1}, tensor.Shape{3, 2})
	xi := tensor.MustFromSlice([]float64{0.5, -0.5, 1.5, 0.25}, tensor.Shape{2, 2})

	a, _ := plain.ApplyPair(v, xi, psPlain, stPlain)
	b, stOut := proj.ApplyPair(v, xi, psProj, stProj)

	require.True(t, a.Shape().Equal(b.Shape()))
	for i := range a.Data() {
		assert.InDelta(t, a.Data()[i], b.Data()[i], 1e-12)
	}
	assert.Equal(t, []string{"bias", "branch", "projection", "trunk"}, stOut.ChildNames())
}

// reshapedBranch wraps a network and regroups its (p, m) output into
// (d0, d1, m), exercising DeepONet's flatten step.
type reshapedBranch struct {
	inner  UnaryLayer[float64]
	d0, d1 int
}

func (r reshapedBranch) InitParams(rng *rand.Rand) *Params[float64] {
	return r.inner.InitParams(rng)
}

func (r reshapedBranch) InitState(rng *rand.Rand) *State[float64] {
	return r.inner.InitState(rng)
}

func (r reshapedBranch) Apply(x *tensor.Dense[float64], ps *Params[float64], st *State[float64]) (*tensor.Dense[float64], *State[float64]) {
	y, newSt := r.inner.Apply(x, ps, st)
	batch := y.Shape()[1]
	return y.Reshape(r.d0, r.d1, batch), newSt
}

// TestDeepONetFlattenHighRankBranch checks that a (2, 2, m) branch
// output flattens to (4, m) and reproduces the plain matrix path.
func TestDeepONetFlattenHighRankBranch(t *testing.T) {
	branchNet := func() UnaryLayer[float64] {
		return NewFullyConnected([]int{3, 4}, ReLU[float64](), true)
	}
	trunkNet := func() UnaryLayer[float64] {
		return NewFullyConnected([]int{2, 4}, Tanh[float64](), false)
	}

	flat := NewDeepONet[float64](branchNet(), trunkNet())
	stacked := NewDeepONet[float64](reshapedBranch{inner: branchNet(), d0: 2, d1: 2}, trunkNet())

	psFlat, stFlat := Setup[float64](rand.New(rand.NewSource(23)), flat)
	psStacked, stStacked := Setup[float64](rand.New(rand.NewSource(23)), stacked)

	v := tensor.MustFromSlice([]float64{1, 2, 3, -1, -2, -3}, tensor.Shape{3, 2})
	xi := tensor.MustFromSlice([]float64{0.1, 0.9}, tensor.Shape{2, 1})

	a, _ := flat.ApplyPair(v, xi, psFlat, stFlat)
	b, _ := stacked.ApplyPair(v, xi, psStacked, stStacked)

	require.True(t, a.Shape().Equal(tensor.Shape{2, 1}))
	assert.Equal(t, a.Data(), b.Data())
}

func TestDeepONetVectorInputs(t *testing.T) {
	don := NewDeepONetFromSizes[float64](
		[]int{3, 4}, "relu",
		[]int{2, 4}, "tanh",
	)
	ps, st := Setup[float64](rand.New(rand.NewSource(2)), don)

	v := tensor.MustFromSlice([]float64{1, 0, -1}, tensor.Shape{3})
	xi := tensor.MustFromSlice([]float64{0.5, 0.5}, tensor.Shape{2})
	out, _ := don.ApplyPair(v, xi, ps, st)

	// One function, one query point.
	assert.True(t, out.Shape().Equal(tensor.Shape{1, 1}))
}

func TestDeepONetInitDeterminism(t *testing.T) {
	build := func() *Params[float64] {
		don := NewDeepONetFromSizes[float64](
			[]int{3, 5, 4}, "relu",
			[]int{2, 6, 4, 4}, "tanh",
		)
		return don.InitParams(rand.New(rand.NewSource(5)))
	}
	a, b := build(), build()
	assert.Equal(t,
		a.Child("branch").Child("layer_1").Get("weight").Data(),
		b.Child("branch").Child("layer_1").Get("weight").Data(),
	)
	assert.Equal(t,
		a.Child("trunk").Child("layer_3").Get("weight").Data(),
		b.Child("trunk").Child("layer_3").Get("weight").Data(),
	)
}
