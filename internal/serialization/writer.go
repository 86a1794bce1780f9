package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

const ritzVersion = "0.1.0"

// Write emits a tensor map as a .ritz container. Tensors are laid out
// in sorted name order, contiguously, with the data section starting
// on a HeaderAlignment boundary.
func Write[T tensor.Float](w io.Writer, tensors map[string]*tensor.Dense[T], metadata map[string]string) error {
	names := make([]string, 0, len(tensors))
	for name := range tensors {
		names = append(names, name)
	}
	sort.Strings(names)

	var data bytes.Buffer
	metas := make([]TensorMeta, 0, len(names))
	for _, name := range names {
		t := tensors[name]
		size := int64(t.NumElements()) * elemSize[T]()
		metas = append(metas, TensorMeta{
			Name:   name,
			DType:  dtypeOf[T](),
			Shape:  []int(t.Shape()),
			Offset: int64(data.Len()),
			Size:   size,
		})
		if err := binary.Write(&data, binary.LittleEndian, t.Data()); err != nil {
			return fmt.Errorf("failed to encode tensor %q: %w", name, err)
		}
	}

	sum := sha256.Sum256(data.Bytes())
	header := Header{
		FormatVersion: FormatVersion,
		RitzVersion:   ritzVersion,
		CreatedAt:     time.Now().UTC(),
		Checksum:      hex.EncodeToString(sum[:]),
		Tensors:       metas,
		Metadata:      metadata,
	}
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	if _, err := io.WriteString(w, MagicBytes); err != nil {
		return fmt.Errorf("failed to write magic bytes: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(FormatVersion)); err != nil {
		return fmt.Errorf("failed to write version: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	pos := int64(4+4+8) + int64(len(headerJSON))
	if padding := (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment; padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}

	if _, err := w.Write(data.Bytes()); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

// WriteFile writes a tensor map to a .ritz file at path.
func WriteFile[T tensor.Float](path string, tensors map[string]*tensor.Dense[T], metadata map[string]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, tensors, metadata); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// SaveParams writes a parameter tree to a .ritz file, slots flattened
// to dotted paths.
func SaveParams[T tensor.Float](path string, ps *nn.Params[T]) error {
	flat, err := flattenParams(ps)
	if err != nil {
		return err
	}
	return WriteFile(path, flat, map[string]string{"tree": "params"})
}

// SaveState writes a state tree to a .ritz file. Scalar slots are
// encoded as rank-0 tensors.
func SaveState[T tensor.Float](path string, st *nn.State[T]) error {
	flat, err := flattenState(st)
	if err != nil {
		return err
	}
	return WriteFile(path, flat, map[string]string{"tree": "state"})
}
