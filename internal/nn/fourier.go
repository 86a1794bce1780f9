package nn

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// FrequencyBand describes one scale of a multi-scale random Fourier
// feature: Count frequency rows drawn from N(0, Std^2), contributing
// 2*Count output features (a sine and a cosine per row).
type FrequencyBand struct {
	Std   float64
	Count int
}

type fourierMode int

const (
	fourierFixed fourierMode = iota
	fourierRandom
)

// FourierFeature embeds coordinates into a sinusoidal basis, giving
// coordinate networks access to higher-frequency content than a plain
// dense first layer.
//
// The layer has two modes:
//
//   - Fixed mode (NewFourierFeature): an explicit list of frequencies.
//     The input is scaled by 2π and each frequency f contributes the
//     rows [sin(f·x); cos(f·x)], stacked in frequency order. There is
//     no random state; out_dims = 2 * in_dims * len(frequencies).
//
//   - Multi-scale random mode (NewMultiScaleFourierFeature): one or
//     more FrequencyBands. At state initialization every band draws a
//     (Count, in_dims) Gaussian matrix; the matrices are concatenated
//     row-wise into a single frequency matrix W kept in state, fixed
//     but not learned. Evaluation produces [sin(W x); cos(W x)];
//     out_dims = sum of 2 * Count over the bands.
//
// Both modes are deterministic given the initialization seed, and the
// frequency matrix is read-only during evaluation.
//
// Example:
//
//	// γ(x) for 2-D coordinates with frequencies 1 and 2.
//	ff := nn.NewFourierFeature[float64](2, 1, 2)
//
//	// Two bands: 16 smooth modes (std 1) and 16 sharp ones (std 10).
//	rff := nn.NewMultiScaleFourierFeature[float64](2,
//	    nn.FrequencyBand{Std: 1, Count: 16},
//	    nn.FrequencyBand{Std: 10, Count: 16},
//	)
type FourierFeature[T tensor.Float] struct {
	inDims      int
	outDims     int
	mode        fourierMode
	frequencies []float64
	bands       []FrequencyBand
}

// NewFourierFeature creates a fixed-frequency Fourier embedding.
//
// Panics if inDims is not positive or no frequency is given.
func NewFourierFeature[T tensor.Float](inDims int, frequencies ...float64) *FourierFeature[T] {
	if inDims < 1 {
		panic(fmt.Sprintf("NewFourierFeature: in_dims must be positive, got %d", inDims))
	}
	if len(frequencies) == 0 {
		panic("NewFourierFeature: at least one frequency required")
	}
	freqs := make([]float64, len(frequencies))
	copy(freqs, frequencies)
	return &FourierFeature[T]{
		inDims:      inDims,
		outDims:     2 * inDims * len(freqs),
		mode:        fourierFixed,
		frequencies: freqs,
	}
}

// NewMultiScaleFourierFeature creates a random Fourier embedding whose
// frequency matrix mixes one Gaussian scale per band.
//
// Panics if inDims is not positive, no band is given, or a band has a
// non-positive Std or Count.
func NewMultiScaleFourierFeature[T tensor.Float](inDims int, bands ...FrequencyBand) *FourierFeature[T] {
	if inDims < 1 {
		panic(fmt.Sprintf("NewMultiScaleFourierFeature: in_dims must be positive, got %d", inDims))
	}
	if len(bands) == 0 {
		panic("NewMultiScaleFourierFeature: at least one frequency band required")
	}
	outDims := 0
	for _, b := range bands {
		if b.Std <= 0 {
			panic(fmt.Sprintf("NewMultiScaleFourierFeature: band std must be positive, got %v", b.Std))
		}
		if b.Count < 1 {
			panic(fmt.Sprintf("NewMultiScaleFourierFeature: band count must be positive, got %d", b.Count))
		}
		outDims += 2 * b.Count
	}
	bs := make([]FrequencyBand, len(bands))
	copy(bs, bands)
	return &FourierFeature[T]{
		inDims:  inDims,
		outDims: outDims,
		mode:    fourierRandom,
		bands:   bs,
	}
}

// NewRandomFourierFeature creates a single-band random Fourier
// embedding with outDims total features, drawing frequencies from
// N(0, std^2).
//
// Panics if outDims is odd: every frequency row yields a sine/cosine
// pair, so only even widths are representable.
func NewRandomFourierFeature[T tensor.Float](inDims, outDims int, std float64) *FourierFeature[T] {
	if outDims < 2 || outDims%2 != 0 {
		panic(fmt.Sprintf("NewRandomFourierFeature: out_dims must be a positive even number, got %d", outDims))
	}
	return NewMultiScaleFourierFeature[T](inDims, FrequencyBand{Std: std, Count: outDims / 2})
}

// InDims returns the number of input features.
func (f *FourierFeature[T]) InDims() int { return f.inDims }

// OutDims returns the number of output features.
func (f *FourierFeature[T]) OutDims() int { return f.outDims }

// InitParams returns an empty tree: the embedding is not learned.
func (f *FourierFeature[T]) InitParams(_ *rand.Rand) *Params[T] {
	return NewParams[T]()
}

// InitState draws the frequency matrix in multi-scale mode, one
// (Count, in_dims) Gaussian block per band, concatenated row-wise in
// band order. Fixed mode has no state.
func (f *FourierFeature[T]) InitState(rng *rand.Rand) *State[T] {
	st := NewState[T]()
	if f.mode == fourierFixed {
		return st
	}
	blocks := make([]*tensor.Dense[T], len(f.bands))
	for i, b := range f.bands {
		blocks[i] = Normal[T](0, b.Std)(rng, tensor.Shape{b.Count, f.inDims})
	}
	st.Set("frequencies", tensor.Cat(blocks, 0))
	return st
}

// Apply computes the sinusoidal embedding. The input may be a vector,
// a matrix or a higher-rank batch; sample axes are preserved and the
// first axis of the output has length OutDims.
func (f *FourierFeature[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	checkInDims("FourierFeature", x, f.inDims)

	var y *tensor.Dense[T]
	switch f.mode {
	case fourierFixed:
		y = applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
			scaled := m.Scale(T(2 * math.Pi))
			blocks := make([]*tensor.Dense[T], 0, 2*len(f.frequencies))
			for _, freq := range f.frequencies {
				fx := scaled.Scale(T(freq))
				blocks = append(blocks, fx.Sin(), fx.Cos())
			}
			return tensor.Cat(blocks, 0)
		})
	default:
		w := st.Get("frequencies")
		y = applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
			wx := w.MatMul(m)
			return tensor.Cat([]*tensor.Dense[T]{wx.Sin(), wx.Cos()}, 0)
		})
	}
	return y, st
}
