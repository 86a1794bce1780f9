package tensor

import (
	"fmt"
)

// Reshape returns a view over the same data with a new shape. The new shape
// must describe the same number of elements.
//
// Because tensors are contiguous row-major, a reshape never moves data.
func (t *Dense[T]) Reshape(dims ...int) *Dense[T] {
	shape := Shape(dims)
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("Reshape: invalid shape %v: %v", shape, err))
	}
	if shape.NumElements() != t.shape.NumElements() {
		panic(fmt.Sprintf("Reshape: cannot view %v (%d elements) as %v (%d elements)",
			t.shape, t.shape.NumElements(), shape, shape.NumElements()))
	}
	return &Dense[T]{shape: shape.Clone(), data: t.data, device: t.device}
}

// FlattenTrailing views (d0, d1, ..., dn) as (d0, d1*...*dn), collapsing all
// batch axes into one. Rank-2 tensors are returned as an equal-shape view.
func (t *Dense[T]) FlattenTrailing() *Dense[T] {
	if len(t.shape) < 2 {
		panic(fmt.Sprintf("FlattenTrailing: expected rank >= 2, got %v", t.shape))
	}
	batch := 1
	for _, d := range t.shape[1:] {
		batch *= d
	}
	return t.Reshape(t.shape[0], batch)
}

// FlattenLeading views (d0, ..., dn-1, m) as (d0*...*dn-1, m), collapsing all
// feature axes into one while keeping the trailing batch axis.
func (t *Dense[T]) FlattenLeading() *Dense[T] {
	if len(t.shape) < 2 {
		panic(fmt.Sprintf("FlattenLeading: expected rank >= 2, got %v", t.shape))
	}
	features := 1
	for _, d := range t.shape[:len(t.shape)-1] {
		features *= d
	}
	return t.Reshape(features, t.shape[len(t.shape)-1])
}

// RowsView returns a view of the leading-axis range [from, to).
//
// Leading-axis rows are contiguous in memory, so the result shares the
// receiver's backing array without copying.
func (t *Dense[T]) RowsView(from, to int) *Dense[T] {
	if len(t.shape) == 0 {
		panic("RowsView: cannot slice a scalar tensor")
	}
	if from < 0 || to > t.shape[0] || from >= to {
		panic(fmt.Sprintf("RowsView: range [%d, %d) out of bounds for axis of length %d",
			from, to, t.shape[0]))
	}
	rowSize := 1
	for _, d := range t.shape[1:] {
		rowSize *= d
	}
	shape := t.shape.Clone()
	shape[0] = to - from
	return &Dense[T]{
		shape:  shape,
		data:   t.data[from*rowSize : to*rowSize],
		device: t.device,
	}
}

// Cat concatenates tensors along the specified axis.
//
// All tensors must have the same shape except along the concatenation axis.
func Cat[T Float](tensors []*Dense[T], dim int) *Dense[T] {
	if len(tensors) == 0 {
		panic("Cat: at least one tensor required")
	}
	first := tensors[0]
	if dim < 0 || dim >= len(first.shape) {
		panic(fmt.Sprintf("Cat: axis %d out of range for shape %v", dim, first.shape))
	}
	if len(tensors) == 1 {
		return first.Clone()
	}

	total := 0
	for _, t := range tensors {
		if len(t.shape) != len(first.shape) {
			panic(fmt.Sprintf("Cat: rank mismatch: %v vs %v", first.shape, t.shape))
		}
		for d := range t.shape {
			if d != dim && t.shape[d] != first.shape[d] {
				panic(fmt.Sprintf("Cat: shape mismatch on axis %d: %v vs %v", d, first.shape, t.shape))
			}
		}
		total += t.shape[dim]
	}

	outShape := first.shape.Clone()
	outShape[dim] = total
	out := newDense[T](outShape)
	out.device = first.device

	// Copy block-wise: for each leading index, each tensor contributes a
	// contiguous run of shape[dim]*inner elements.
	outer := 1
	for _, d := range first.shape[:dim] {
		outer *= d
	}
	inner := 1
	for _, d := range first.shape[dim+1:] {
		inner *= d
	}

	outRun := total * inner
	for o := 0; o < outer; o++ {
		dst := o * outRun
		for _, t := range tensors {
			run := t.shape[dim] * inner
			copy(out.data[dst:dst+run], t.data[o*run:(o+1)*run])
			dst += run
		}
	}
	return out
}
