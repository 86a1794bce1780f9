package nn

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// IndexRange selects rows [From, To) of an input's first axis.
// Ranges may overlap; SplitFunction does not require them to cover
// the input.
type IndexRange struct {
	From int
	To   int
}

// Index returns the length-1 range selecting row i.
func Index(i int) IndexRange { return IndexRange{From: i, To: i + 1} }

// Span returns the half-open range [from, to).
func Span(from, to int) IndexRange { return IndexRange{From: from, To: to} }

// SplitFunction partitions an input's first axis into the configured
// index ranges and returns one view per range, in declaration order.
// It routes slices of a shared input to different sub-networks, e.g.
// coordinates to one chain and time to another.
//
// The layer is stateless and parameter-free; the returned tensors are
// views sharing the input's backing storage.
type SplitFunction[T tensor.Float] struct {
	ranges []IndexRange
}

// NewSplitFunction creates a first-axis splitter.
//
// Panics if no range is given or a range is empty, inverted or starts
// below zero. Upper bounds are checked against the input at
// evaluation time.
func NewSplitFunction[T tensor.Float](ranges ...IndexRange) *SplitFunction[T] {
	if len(ranges) == 0 {
		panic("NewSplitFunction: at least one index range required")
	}
	for i, r := range ranges {
		if r.From < 0 || r.To <= r.From {
			panic(fmt.Sprintf("NewSplitFunction: invalid range %d: [%d, %d)", i, r.From, r.To))
		}
	}
	rs := make([]IndexRange, len(ranges))
	copy(rs, ranges)
	return &SplitFunction[T]{ranges: rs}
}

// NumOutputs returns the number of views Apply produces.
func (s *SplitFunction[T]) NumOutputs() int { return len(s.ranges) }

// InitParams returns an empty tree: SplitFunction is parameter-free.
func (s *SplitFunction[T]) InitParams(_ *rand.Rand) *Params[T] {
	return NewParams[T]()
}

// InitState returns an empty state.
func (s *SplitFunction[T]) InitState(_ *rand.Rand) *State[T] {
	return NewState[T]()
}

// Apply returns one first-axis view per configured range, ordered as
// declared.
//
// Panics if a range reaches past the input's first axis.
func (s *SplitFunction[T]) Apply(x *tensor.Dense[T], _ *Params[T], st *State[T]) ([]*tensor.Dense[T], *State[T]) {
	shape := x.Shape()
	if len(shape) == 0 {
		panic("SplitFunction.Apply: expected an input with at least one axis, got a scalar")
	}
	views := make([]*tensor.Dense[T], len(s.ranges))
	for i, r := range s.ranges {
		if r.To > shape[0] {
			panic(fmt.Sprintf("SplitFunction.Apply: range [%d, %d) exceeds first axis of length %d", r.From, r.To, shape[0]))
		}
		views[i] = x.RowsView(r.From, r.To)
	}
	return views, st
}
