package nn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

func TestParamsSetGet(t *testing.T) {
	ps := NewParams[float64]()
	w := tensor.Ones[float64](tensor.Shape{2, 3})
	ps.Set("weight", w)

	require.True(t, ps.Has("weight"))
	assert.Same(t, w, ps.Get("weight"))
	assert.Equal(t, []string{"weight"}, ps.Names())
}

func TestParamsGetMissingPanics(t *testing.T) {
	ps := NewParams[float32]()
	assert.Panics(t, func() { ps.Get("weight") })
	assert.Panics(t, func() { ps.Child("branch") })
}

func TestParamsChildren(t *testing.T) {
	ps := NewParams[float64]()
	child := NewParams[float64]()
	child.Set("bias", tensor.Zeros[float64](tensor.Shape{4, 1}))
	ps.SetChild("layer_1", child)

	require.True(t, ps.HasChild("layer_1"))
	assert.Same(t, child, ps.Child("layer_1"))
	assert.False(t, ps.HasChild("layer_2"))
}

func TestParamsNamesSorted(t *testing.T) {
	ps := NewParams[float64]()
	ps.Set("weight", tensor.Ones[float64](tensor.Shape{1}))
	ps.Set("bias", tensor.Ones[float64](tensor.Shape{1}))
	ps.Set("scale", tensor.Ones[float64](tensor.Shape{1}))

	assert.Equal(t, []string{"bias", "scale", "weight"}, ps.Names())
}

func TestParamsNumParameters(t *testing.T) {
	ps := NewParams[float64]()
	ps.Set("weight", tensor.Zeros[float64](tensor.Shape{4, 3}))
	ps.Set("bias", tensor.Zeros[float64](tensor.Shape{4, 1}))

	child := NewParams[float64]()
	child.Set("scalar", tensor.Zeros[float64](tensor.Shape{1}))
	ps.SetChild("bias_layer", child)

	assert.Equal(t, 12+4+1, ps.NumParameters())
}

func TestParamsMap(t *testing.T) {
	ps := NewParams[float64]()
	ps.Set("weight", tensor.Ones[float64](tensor.Shape{2, 2}))
	child := NewParams[float64]()
	child.Set("bias", tensor.Ones[float64](tensor.Shape{2, 1}))
	ps.SetChild("inner", child)

	doubled := ps.Map(func(d *tensor.Dense[float64]) *tensor.Dense[float64] {
		return d.Scale(2)
	})

	// The original is untouched and the copy has the same structure.
	assert.Equal(t, 1.0, ps.Get("weight").At(0, 0))
	assert.Equal(t, 2.0, doubled.Get("weight").At(0, 0))
	assert.Equal(t, 2.0, doubled.Child("inner").Get("bias").At(0, 0))
}

func TestStateSlots(t *testing.T) {
	st := NewState[float64]()
	st.Set("weight", tensor.Ones[float64](tensor.Shape{3, 2}))
	st.SetScalar("fundamental_freq", 2.0)

	require.True(t, st.Has("weight"))
	require.True(t, st.HasScalar("fundamental_freq"))
	assert.Equal(t, 2.0, st.Scalar("fundamental_freq"))
	assert.Equal(t, []string{"weight"}, st.Names())
	assert.Equal(t, []string{"fundamental_freq"}, st.ScalarNames())

	assert.Panics(t, func() { st.Get("frequencies") })
	assert.Panics(t, func() { st.Scalar("period") })
}

func TestStateChildrenAndMap(t *testing.T) {
	st := NewState[float32]()
	inner := NewState[float32]()
	inner.Set("frequencies", tensor.Ones[float32](tensor.Shape{4, 2}))
	inner.SetScalar("fundamental_freq", 0.5)
	st.SetChild("layer_1", inner)

	moved := st.Map(func(d *tensor.Dense[float32]) *tensor.Dense[float32] {
		return d.To(tensor.WebGPU)
	})

	assert.Equal(t, tensor.WebGPU, moved.Child("layer_1").Get("frequencies").Device())
	assert.Equal(t, float32(0.5), moved.Child("layer_1").Scalar("fundamental_freq"))
	// Source tree still on CPU.
	assert.Equal(t, tensor.CPU, st.Child("layer_1").Get("frequencies").Device())
}
