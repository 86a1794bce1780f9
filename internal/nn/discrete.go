package nn

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// DiscreteFourierFeature embeds inputs into a periodic basis of N
// harmonics with an explicit period P. Every output unit computes
//
//	sin(2π/P * (w · x) + phase)
//
// where the weight row w holds integer harmonic indices drawn
// uniformly from {0, ..., N} and kept fixed in state. Because the
// harmonics are integer multiples of the fundamental frequency, the
// output is periodic in every input coordinate with period P.
//
// When the period is an integer the layer specializes: the
// fundamental frequency becomes 2/P (snapped to an exact integer when
// within floating tolerance of one) and evaluation uses the π-scaled
// sine sin(π·z) with the argument reduced modulo 2, so periodicity
// holds exactly rather than up to rounding. Non-integer periods keep
// the real-valued fundamental 2π/P and the ordinary sine; the bias is
// scaled by π at initialization so both forms draw the same phase
// distribution. The two forms are behaviorally equivalent up to
// floating-point rounding.
//
// The integer weight matrix and the fundamental frequency live in
// state; only the bias is a trainable parameter.
type DiscreteFourierFeature[T tensor.Float] struct {
	inDims      int
	outDims     int
	harmonics   int
	period      float64
	piScaled    bool
	fundamental float64
	initBias    Initializer[T]
}

// intTol is the floating tolerance for treating a period or a derived
// fundamental frequency as an exact integer.
const intTol = 1e-8

func nearInt(v float64) bool {
	return math.Abs(v-math.Round(v)) <= intTol*math.Max(1, math.Abs(v))
}

// sinPi computes sin(π·v), reducing the argument modulo 2 first so
// that integer shifts of v map to bit-identical outputs.
func sinPi[T tensor.Float](v T) T {
	r := math.Mod(float64(v), 2)
	return T(math.Sin(math.Pi * r))
}

// NewDiscreteFourierFeature creates a periodic harmonic embedding.
//
// Parameters:
//   - inDims: number of input features
//   - outDims: number of output features
//   - harmonics: highest harmonic index N; weights draw from {0,...,N}
//   - period: the period P of the basis in input units
//
// Returns a new DiscreteFourierFeature layer.
func NewDiscreteFourierFeature[T tensor.Float](inDims, outDims, harmonics int, period float64) *DiscreteFourierFeature[T] {
	if inDims < 1 || outDims < 1 {
		panic(fmt.Sprintf("NewDiscreteFourierFeature: dimensions must be positive, got in=%d out=%d", inDims, outDims))
	}
	if harmonics < 1 {
		panic(fmt.Sprintf("NewDiscreteFourierFeature: harmonics must be >= 1, got %d", harmonics))
	}
	if !(period > 0) {
		panic(fmt.Sprintf("NewDiscreteFourierFeature: period must be positive, got %v", period))
	}

	d := &DiscreteFourierFeature[T]{
		inDims:    inDims,
		outDims:   outDims,
		harmonics: harmonics,
		period:    period,
		initBias:  Uniform[T](1),
	}
	if nearInt(period) {
		d.piScaled = true
		d.fundamental = 2 / math.Round(period)
		if nearInt(d.fundamental) {
			d.fundamental = math.Round(d.fundamental)
		}
	} else {
		d.fundamental = 2 * math.Pi / period
	}
	return d
}

// InDims returns the number of input features.
func (d *DiscreteFourierFeature[T]) InDims() int { return d.inDims }

// OutDims returns the number of output features.
func (d *DiscreteFourierFeature[T]) OutDims() int { return d.outDims }

// InitParams draws the phase bias (out_dims, 1) from U(-1, 1). In the
// general (non-integer-period) form the draw is scaled by π, matching
// the phase range of the π-scaled form.
func (d *DiscreteFourierFeature[T]) InitParams(rng *rand.Rand) *Params[T] {
	bias := d.initBias(rng, tensor.Shape{d.outDims, 1})
	if !d.piScaled {
		bias = bias.Scale(T(math.Pi))
	}
	ps := NewParams[T]()
	ps.Set("bias", bias)
	return ps
}

// InitState draws the integer harmonic matrix (out_dims, in_dims) and
// records the fundamental frequency derived from the period. The
// frequency is computed here once and never recomputed during
// evaluation.
func (d *DiscreteFourierFeature[T]) InitState(rng *rand.Rand) *State[T] {
	w := tensor.Zeros[T](tensor.Shape{d.outDims, d.inDims})
	data := w.Data()
	for i := range data {
		data[i] = T(rng.Intn(d.harmonics + 1))
	}
	st := NewState[T]()
	st.Set("weight", w)
	st.SetScalar("fundamental_freq", T(d.fundamental))
	return st
}

// Apply computes sin-like(weight @ x * fundamental_freq + bias) with
// the sine variant chosen at construction.
func (d *DiscreteFourierFeature[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	checkInDims("DiscreteFourierFeature", x, d.inDims)
	w := st.Get("weight")
	freq := st.Scalar("fundamental_freq")
	bias := ps.Get("bias")

	y := applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
		z := w.MatMul(m).Scale(freq).Add(bias)
		if d.piScaled {
			return z.Map(sinPi[T])
		}
		return z.Sin()
	})
	return y, st
}
