package nn

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/parallel"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// softmaxCfg gates the per-column workers in softmaxColumns. Each column
// runs a full exp pass, so far fewer items fill a chunk than in the
// elementwise tensor kernels.
var softmaxCfg = func() parallel.Config {
	cfg := parallel.DefaultConfig()
	cfg.MinChunkSize = 256
	return cfg
}()

// RBF is a normalized radial basis function layer. Each input column
// is compared against num_centers learned center vectors; the
// negative scaled squared distances pass through a softmax over
// centers, producing basis weights that sum to one per column (a
// partition of unity), which a weight matrix then maps to the output:
//
//	d_kj = ‖x_j - c_k‖²           (expanded, never formed pairwise)
//	φ_j  = softmax_k(-d_kj / σ)
//	y_j  = W @ φ_j
//
// The normalization distinguishes this layer from classic RBF
// networks: responses are relative similarities, not absolute kernel
// values. σ = 0.2 is the customary smoothing value.
type RBF[T tensor.Float] struct {
	inDims     int
	outDims    int
	numCenters int
	sigma      float64
	initCenter Initializer[T]
	initWeight Initializer[T]
}

// NewRBF creates a normalized RBF layer.
//
// Parameters:
//   - inDims: number of input features
//   - outDims: number of output features
//   - numCenters: number of learned centers (required, no default)
//   - sigma: distance smoothing factor, must be positive
//
// Centers initialize uniformly in [0, 1) per coordinate; the output
// weights use Kaiming uniform initialization.
func NewRBF[T tensor.Float](inDims, outDims, numCenters int, sigma float64) *RBF[T] {
	if inDims < 1 || outDims < 1 {
		panic(fmt.Sprintf("NewRBF: dimensions must be positive, got in=%d out=%d", inDims, outDims))
	}
	if numCenters < 1 {
		panic(fmt.Sprintf("NewRBF: num_centers must be positive, got %d", numCenters))
	}
	if !(sigma > 0) {
		panic(fmt.Sprintf("NewRBF: sigma must be positive, got %v", sigma))
	}
	return &RBF[T]{
		inDims:     inDims,
		outDims:    outDims,
		numCenters: numCenters,
		sigma:      sigma,
		initCenter: UniformRange[T](0, 1),
		initWeight: KaimingUniform[T](1),
	}
}

// InDims returns the number of input features.
func (r *RBF[T]) InDims() int { return r.inDims }

// OutDims returns the number of output features.
func (r *RBF[T]) OutDims() int { return r.outDims }

// NumCenters returns the number of learned centers.
func (r *RBF[T]) NumCenters() int { return r.numCenters }

// InitParams draws the centers (num_centers, in_dims) and the output
// weight matrix (out_dims, num_centers).
func (r *RBF[T]) InitParams(rng *rand.Rand) *Params[T] {
	ps := NewParams[T]()
	ps.Set("center", r.initCenter(rng, tensor.Shape{r.numCenters, r.inDims}))
	ps.Set("weight", r.initWeight(rng, tensor.Shape{r.outDims, r.numCenters}))
	return ps
}

// InitState returns an empty state: RBF is stateless.
func (r *RBF[T]) InitState(_ *rand.Rand) *State[T] {
	return NewState[T]()
}

// Basis computes the normalized basis responses (num_centers, batch)
// for a matrix input, the values Apply feeds through the weight
// matrix. Each column sums to one.
func (r *RBF[T]) Basis(x *tensor.Dense[T], ps *Params[T]) *tensor.Dense[T] {
	checkInDims("RBF", x, r.inDims)
	c := ps.Get("center")
	return applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
		return r.basisMatrix(m, c)
	})
}

// basisMatrix computes softmax_k(-‖x_j - c_k‖² / σ) for matrix input
// m (in_dims, batch) against centers c (num_centers, in_dims).
//
// The squared distance expands to ‖x‖² + ‖c‖² - 2 c·x, avoiding an
// explicit (num_centers, in_dims, batch) difference tensor.
func (r *RBF[T]) basisMatrix(m, c *tensor.Dense[T]) *tensor.Dense[T] {
	batch := m.Shape()[1]

	// c·x: (num_centers, batch)
	cx := c.MatMul(m)

	// ‖c‖² per center: (num_centers, 1)
	csq := tensor.Zeros[T](tensor.Shape{r.numCenters, 1})
	cd, cs := c.Data(), csq.Data()
	for k := 0; k < r.numCenters; k++ {
		var s T
		for i := 0; i < r.inDims; i++ {
			v := cd[k*r.inDims+i]
			s += v * v
		}
		cs[k] = s
	}

	// ‖x‖² per column: (1, batch)
	xsq := tensor.Zeros[T](tensor.Shape{1, batch})
	md, xs := m.Data(), xsq.Data()
	for j := 0; j < batch; j++ {
		var s T
		for i := 0; i < r.inDims; i++ {
			v := md[i*batch+j]
			s += v * v
		}
		xs[j] = s
	}

	dist := csq.Add(xsq).Sub(cx.Scale(2))
	return softmaxColumns(dist.Scale(T(-1.0 / r.sigma)))
}

// Apply maps the normalized basis responses through the weight
// matrix.
func (r *RBF[T]) Apply(x *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	checkInDims("RBF", x, r.inDims)
	c := ps.Get("center")
	w := ps.Get("weight")
	y := applyMatrix(x, func(m *tensor.Dense[T]) *tensor.Dense[T] {
		return w.MatMul(r.basisMatrix(m, c))
	})
	return y, st
}

// softmaxColumns applies a numerically stabilized softmax down each
// column of a matrix. The per-column maximum is subtracted before
// exponentiating, so arbitrarily large magnitudes cannot overflow.
// Columns are independent, so wide batches run on the worker pool.
func softmaxColumns[T tensor.Float](z *tensor.Dense[T]) *tensor.Dense[T] {
	shape := z.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("softmaxColumns: expected a matrix, got shape %v", shape))
	}
	rows, cols := shape[0], shape[1]
	out := tensor.Zeros[T](shape.Clone())
	zd, od := z.Data(), out.Data()
	parallel.For(cols, func(j int) {
		max := math.Inf(-1)
		for i := 0; i < rows; i++ {
			if v := float64(zd[i*cols+j]); v > max {
				max = v
			}
		}
		sum := 0.0
		for i := 0; i < rows; i++ {
			e := math.Exp(float64(zd[i*cols+j]) - max)
			od[i*cols+j] = T(e)
			sum += e
		}
		for i := 0; i < rows; i++ {
			od[i*cols+j] = T(float64(od[i*cols+j]) / sum)
		}
	}, softmaxCfg)
	return out
}
