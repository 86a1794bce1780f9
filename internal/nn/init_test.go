package nn

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritz-ml/ritz/internal/tensor"
)

func TestInitializersDeterministic(t *testing.T) {
	shape := tensor.Shape{8, 4}
	inits := map[string]Initializer[float64]{
		"uniform":  Uniform[float64](0.5),
		"normal":   Normal[float64](0, 1),
		"lognorm":  LogNormal[float64](1.0, 0.1),
		"kaiming":  KaimingUniform[float64](math.Sqrt2),
		"constant": Constant[float64](3),
	}

	for name, init := range inits {
		t.Run(name, func(t *testing.T) {
			a := init(rand.New(rand.NewSource(42)), shape)
			b := init(rand.New(rand.NewSource(42)), shape)
			require.True(t, a.Shape().Equal(shape))
			assert.True(t, floats.Equal(a.Data(), b.Data()),
				"same seed must reproduce the same draw")
		})
	}
}

func TestUniformBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := Uniform[float64](0.25)(rng, tensor.Shape{1000})
	for _, v := range d.Data() {
		if v < -0.25 || v > 0.25 {
			t.Fatalf("draw %v outside [-0.25, 0.25]", v)
		}
	}
}

func TestKaimingUniformBound(t *testing.T) {
	// fan_in is the last axis: bound = gain * sqrt(3 / 16).
	gain := math.Sqrt2
	bound := gain * math.Sqrt(3.0/16.0)

	rng := rand.New(rand.NewSource(7))
	d := KaimingUniform[float64](gain)(rng, tensor.Shape{64, 16})
	for _, v := range d.Data() {
		if math.Abs(v) > bound {
			t.Fatalf("draw %v outside ±%v", v, bound)
		}
	}
}

func TestLogNormalPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d := LogNormal[float64](1.0, 0.1)(rng, tensor.Shape{500})
	for _, v := range d.Data() {
		require.Greater(t, v, 0.0)
	}
	// exp(N(1.0, 0.1)) concentrates near e.
	mean := floats.Sum(d.Data()) / 500
	assert.InDelta(t, math.E, mean, 0.2)
}

func TestNormalMoments(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	d := Normal[float64](2.0, 0.5)(rng, tensor.Shape{10000})
	mean := floats.Sum(d.Data()) / 10000
	assert.InDelta(t, 2.0, mean, 0.05)

	varsum := 0.0
	for _, v := range d.Data() {
		varsum += (v - mean) * (v - mean)
	}
	assert.InDelta(t, 0.25, varsum/10000, 0.02)
}

func TestConstantIgnoresRNG(t *testing.T) {
	d := Constant[float32](1.5)(nil, tensor.Shape{3, 3})
	for _, v := range d.Data() {
		assert.Equal(t, float32(1.5), v)
	}
}
