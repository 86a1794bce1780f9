package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// DeepONet is the branch/trunk operator-learning architecture. The
// branch network encodes a sampled input function, the trunk network
// encodes query coordinates, and the two encodings combine bilinearly:
//
//	output = transpose(b) @ t + bias
//
// where b is the (possibly projected) branch output of shape (q, m),
// t is the trunk output of shape (q, n), m counts input functions and
// n counts query points. The output has shape (m, n): one row per
// function, one column per coordinate.
//
// Between the branch network and the product sits a flatten step that
// collapses a higher-rank branch output (*, m) into a matrix
// (prod(*), m), and an optional linear projection that reconciles the
// flattened width with the trunk width. Without a projection the
// widths must already agree. Finally a ScalarLayer adds one learned
// global bias to every output entry.
//
// Example:
//
//	don := nn.NewDeepONetFromSizes[float64](
//	    []int{3, 5, 4}, "relu",
//	    []int{2, 6, 4, 4}, "tanh",
//	)
//	ps, st := nn.Setup[float64](rng, don)
//	out, _ := don.ApplyPair(v, xi, ps, st) // (m, n)
type DeepONet[T tensor.Float] struct {
	branch     UnaryLayer[T]
	trunk      UnaryLayer[T]
	projection *Dense[T]
	bias       *ScalarLayer[T]
}

// DeepONetConfig carries the optional pieces of a DeepONet. The zero
// value means no projection and an additive bias.
type DeepONetConfig[T tensor.Float] struct {
	// Projection reconciles the flattened branch width with the trunk
	// width. Leave nil when the widths already match.
	Projection *Dense[T]

	// BiasCombine merges the learned global scalar into the bilinear
	// product. Defaults to addition.
	BiasCombine func(scalar, x T) T
}

// NewDeepONet composes a branch and a trunk network with no
// projection and an additive bias.
func NewDeepONet[T tensor.Float](branch, trunk UnaryLayer[T]) *DeepONet[T] {
	return NewDeepONetWithConfig(branch, trunk, DeepONetConfig[T]{})
}

// NewDeepONetWithConfig composes a branch and a trunk network with
// explicit configuration.
func NewDeepONetWithConfig[T tensor.Float](branch, trunk UnaryLayer[T], cfg DeepONetConfig[T]) *DeepONet[T] {
	if branch == nil || trunk == nil {
		panic("NewDeepONet: branch and trunk networks required")
	}
	combine := cfg.BiasCombine
	if combine == nil {
		combine = ScalarAdd[T]
	}
	return &DeepONet[T]{
		branch:     branch,
		trunk:      trunk,
		projection: cfg.Projection,
		bias:       NewScalarLayer(combine),
	}
}

// NewDeepONetFromSizes builds both sub-networks as fully connected
// chains from explicit width lists. The branch keeps its final layer
// linear; the trunk applies its activation throughout.
//
// The final widths must match, since this constructor configures no
// projection. A mismatch panics here, never at evaluation time.
//
// Parameters:
//   - branchSizes: layer widths of the branch network
//   - branchActivation: activation name for the branch (see ActivationByName)
//   - trunkSizes: layer widths of the trunk network
//   - trunkActivation: activation name for the trunk
//
// Returns a new DeepONet.
func NewDeepONetFromSizes[T tensor.Float](branchSizes []int, branchActivation string, trunkSizes []int, trunkActivation string) *DeepONet[T] {
	if len(branchSizes) < 2 || len(trunkSizes) < 2 {
		panic(fmt.Sprintf("NewDeepONetFromSizes: need at least input and output sizes, got branch=%v trunk=%v", branchSizes, trunkSizes))
	}
	bw := branchSizes[len(branchSizes)-1]
	tw := trunkSizes[len(trunkSizes)-1]
	if bw != tw {
		panic(fmt.Sprintf("NewDeepONetFromSizes: branch output width %d does not match trunk output width %d", bw, tw))
	}
	branch := NewFullyConnected(branchSizes, ActivationByName[T](branchActivation), true)
	trunk := NewFullyConnected(trunkSizes, ActivationByName[T](trunkActivation), false)
	return NewDeepONet[T](branch, trunk)
}

// InitParams initializes the sub-networks in the fixed order branch,
// trunk, projection, bias, nesting one child per sub-layer name.
func (d *DeepONet[T]) InitParams(rng *rand.Rand) *Params[T] {
	ps := NewParams[T]()
	ps.SetChild("branch", d.branch.InitParams(rng))
	ps.SetChild("trunk", d.trunk.InitParams(rng))
	if d.projection != nil {
		ps.SetChild("projection", d.projection.InitParams(rng))
	}
	ps.SetChild("bias", d.bias.InitParams(rng))
	return ps
}

// InitState initializes the sub-networks' state in the same fixed
// order as InitParams.
func (d *DeepONet[T]) InitState(rng *rand.Rand) *State[T] {
	st := NewState[T]()
	st.SetChild("branch", d.branch.InitState(rng))
	st.SetChild("trunk", d.trunk.InitState(rng))
	if d.projection != nil {
		st.SetChild("projection", d.projection.InitState(rng))
	}
	st.SetChild("bias", d.bias.InitState(rng))
	return st
}

// ApplyPair evaluates the operator network on a (branch input, trunk
// input) pair. The branch input carries the sampled functions, one
// column per function; the trunk input carries the query coordinates,
// one column per point.
//
// Sub-layers evaluate in the fixed order branch, trunk, projection,
// bias, and their updated states merge into a fresh state tree under
// the same names.
func (d *DeepONet[T]) ApplyPair(branchInput, trunkInput *tensor.Dense[T], ps *Params[T], st *State[T]) (*tensor.Dense[T], *State[T]) {
	newSt := NewState[T]()

	b, branchSt := d.branch.Apply(branchInput, ps.Child("branch"), st.Child("branch"))
	newSt.SetChild("branch", branchSt)

	t, trunkSt := d.trunk.Apply(trunkInput, ps.Child("trunk"), st.Child("trunk"))
	newSt.SetChild("trunk", trunkSt)
	tm := asMatrix(t)

	var bm *tensor.Dense[T]
	if d.projection == nil && len(b.Shape()) == 2 {
		// Matrix-shaped branch output and no projection: the bilinear
		// product applies directly, no flatten bookkeeping.
		bm = b
	} else {
		bm = flattenBranch(b)
		if d.projection != nil {
			var projSt *State[T]
			bm, projSt = d.projection.Apply(bm, ps.Child("projection"), st.Child("projection"))
			newSt.SetChild("projection", projSt)
		}
	}

	if bm.Shape()[0] != tm.Shape()[0] {
		panic(fmt.Sprintf("DeepONet.ApplyPair: branch width %d does not match trunk width %d; configure a projection layer", bm.Shape()[0], tm.Shape()[0]))
	}

	out := bm.T().MatMul(tm)

	out, biasSt := d.bias.Apply(out, ps.Child("bias"), st.Child("bias"))
	newSt.SetChild("bias", biasSt)

	return out, newSt
}

// asMatrix views a network output as a (features, batch) matrix:
// vectors become single columns and higher-rank outputs collapse
// their trailing axes.
func asMatrix[T tensor.Float](t *tensor.Dense[T]) *tensor.Dense[T] {
	switch len(t.Shape()) {
	case 1:
		return t.Reshape(t.Shape()[0], 1)
	case 2:
		return t
	default:
		return t.FlattenTrailing()
	}
}

// flattenBranch collapses a branch output (*, m) into the matrix
// (prod(*), m), keeping the last axis as the function index. Vectors
// are treated as a single function's features.
func flattenBranch[T tensor.Float](b *tensor.Dense[T]) *tensor.Dense[T] {
	switch len(b.Shape()) {
	case 1:
		return b.Reshape(b.Shape()[0], 1)
	case 2:
		return b
	default:
		return b.FlattenLeading()
	}
}
