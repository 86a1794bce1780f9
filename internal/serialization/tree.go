package serialization

import (
	"sort"
	"strings"

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// slotSep joins tree paths in the tensor index. Slot and child names
// must not contain it.
const slotSep = "."

func joinPath(prefix, name string) (string, error) {
	if name == "" || strings.Contains(name, slotSep) {
		return "", &ValidationError{Tensor: prefix + slotSep + name, Details: "slot names must be non-empty and must not contain " + slotSep}
	}
	if prefix == "" {
		return name, nil
	}
	return prefix + slotSep + name, nil
}

func flattenParams[T tensor.Float](ps *nn.Params[T]) (map[string]*tensor.Dense[T], error) {
	flat := make(map[string]*tensor.Dense[T])
	if err := walkParams(ps, "", flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func walkParams[T tensor.Float](ps *nn.Params[T], prefix string, flat map[string]*tensor.Dense[T]) error {
	for _, name := range ps.Names() {
		path, err := joinPath(prefix, name)
		if err != nil {
			return err
		}
		flat[path] = ps.Get(name)
	}
	for _, name := range ps.ChildNames() {
		path, err := joinPath(prefix, name)
		if err != nil {
			return err
		}
		if err := walkParams(ps.Child(name), path, flat); err != nil {
			return err
		}
	}
	return nil
}

func flattenState[T tensor.Float](st *nn.State[T]) (map[string]*tensor.Dense[T], error) {
	flat := make(map[string]*tensor.Dense[T])
	if err := walkState(st, "", flat); err != nil {
		return nil, err
	}
	return flat, nil
}

func walkState[T tensor.Float](st *nn.State[T], prefix string, flat map[string]*tensor.Dense[T]) error {
	for _, name := range st.Names() {
		path, err := joinPath(prefix, name)
		if err != nil {
			return err
		}
		flat[path] = st.Get(name)
	}
	for _, name := range st.ScalarNames() {
		path, err := joinPath(prefix, name)
		if err != nil {
			return err
		}
		// Rank-0 marks the slot as a scalar for LoadState.
		flat[path] = tensor.Full[T](tensor.Shape{}, st.Scalar(name))
	}
	for _, name := range st.ChildNames() {
		path, err := joinPath(prefix, name)
		if err != nil {
			return err
		}
		if err := walkState(st.Child(name), path, flat); err != nil {
			return err
		}
	}
	return nil
}

func unflattenParams[T tensor.Float](flat map[string]*tensor.Dense[T]) (*nn.Params[T], error) {
	root := nn.NewParams[T]()
	for _, path := range sortedPaths(flat) {
		node := root
		segments := strings.Split(path, slotSep)
		for _, seg := range segments[:len(segments)-1] {
			if seg == "" {
				return nil, &ValidationError{Tensor: path, Details: "empty path segment"}
			}
			if !node.HasChild(seg) {
				node.SetChild(seg, nn.NewParams[T]())
			}
			node = node.Child(seg)
		}
		slot := segments[len(segments)-1]
		if slot == "" {
			return nil, &ValidationError{Tensor: path, Details: "empty slot name"}
		}
		node.Set(slot, flat[path])
	}
	return root, nil
}

func unflattenState[T tensor.Float](flat map[string]*tensor.Dense[T]) (*nn.State[T], error) {
	root := nn.NewState[T]()
	for _, path := range sortedPaths(flat) {
		node := root
		segments := strings.Split(path, slotSep)
		for _, seg := range segments[:len(segments)-1] {
			if seg == "" {
				return nil, &ValidationError{Tensor: path, Details: "empty path segment"}
			}
			if !node.HasChild(seg) {
				node.SetChild(seg, nn.NewState[T]())
			}
			node = node.Child(seg)
		}
		slot := segments[len(segments)-1]
		if slot == "" {
			return nil, &ValidationError{Tensor: path, Details: "empty slot name"}
		}
		t := flat[path]
		if t.Rank() == 0 {
			node.SetScalar(slot, t.Data()[0])
			continue
		}
		node.Set(slot, t)
	}
	return root, nil
}

func sortedPaths[T tensor.Float](flat map[string]*tensor.Dense[T]) []string {
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
