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

	"github.com/ritz-ml/ritz/internal/nn"
	"github.com/ritz-ml/ritz/internal/tensor"
)

// MaxHeaderSize caps the JSON header; larger values indicate a
// corrupt or hostile file.
const MaxHeaderSize = 100 * 1024 * 1024

// Read parses a .ritz container, verifying the data checksum and the
// tensor index before decoding.
func Read[T tensor.Float](r io.Reader) (map[string]*tensor.Dense[T], Header, error) {
	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(magic) != MagicBytes {
		return nil, Header{}, ErrInvalidMagic
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read version: %w", err)
	}
	if version != FormatVersion {
		return nil, Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header size: %w", err)
	}
	if headerSize > MaxHeaderSize {
		return nil, Header{}, ErrHeaderTooLarge
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, Header{}, fmt.Errorf("failed to read header: %w", err)
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, Header{}, fmt.Errorf("failed to parse header: %w", err)
	}

	pos := int64(4+4+8) + int64(headerSize)
	if padding := (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment; padding > 0 {
		if _, err := io.CopyN(io.Discard, r, padding); err != nil {
			return nil, Header{}, fmt.Errorf("failed to skip padding: %w", err)
		}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to read tensor data: %w", err)
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != header.Checksum {
		return nil, Header{}, ErrChecksumMismatch
	}

	out := make(map[string]*tensor.Dense[T], len(header.Tensors))
	for _, meta := range header.Tensors {
		if meta.DType != dtypeOf[T]() {
			return nil, Header{}, fmt.Errorf("tensor %q has dtype %s: %w", meta.Name, meta.DType, ErrDTypeMismatch)
		}
		if _, ok := out[meta.Name]; ok {
			return nil, Header{}, &ValidationError{Tensor: meta.Name, Details: "duplicate tensor name"}
		}
		if meta.Offset < 0 || meta.Size < 0 || meta.Offset+meta.Size > int64(len(data)) {
			return nil, Header{}, &ValidationError{
				Tensor:  meta.Name,
				Details: fmt.Sprintf("offset %d size %d outside data section of %d bytes", meta.Offset, meta.Size, len(data)),
			}
		}

		shape := tensor.Shape(append([]int(nil), meta.Shape...))
		n := shape.NumElements()
		if int64(n)*elemSize[T]() != meta.Size {
			return nil, Header{}, &ValidationError{
				Tensor:  meta.Name,
				Details: fmt.Sprintf("size %d does not match shape %v", meta.Size, shape),
			}
		}

		vals := make([]T, n)
		if n > 0 {
			section := bytes.NewReader(data[meta.Offset : meta.Offset+meta.Size])
			if err := binary.Read(section, binary.LittleEndian, vals); err != nil {
				return nil, Header{}, fmt.Errorf("failed to decode tensor %q: %w", meta.Name, err)
			}
		}
		t, err := tensor.FromSlice(vals, shape)
		if err != nil {
			return nil, Header{}, fmt.Errorf("tensor %q: %w", meta.Name, err)
		}
		out[meta.Name] = t
	}
	return out, header, nil
}

// ReadFile reads a tensor map from a .ritz file at path.
func ReadFile[T tensor.Float](path string) (map[string]*tensor.Dense[T], Header, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Header{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()
	return Read[T](file)
}

// LoadParams reads a parameter tree saved with SaveParams.
func LoadParams[T tensor.Float](path string) (*nn.Params[T], error) {
	flat, _, err := ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return unflattenParams(flat)
}

// LoadState reads a state tree saved with SaveState; rank-0 tensors
// become scalar slots.
func LoadState[T tensor.Float](path string) (*nn.State[T], error) {
	flat, _, err := ReadFile[T](path)
	if err != nil {
		return nil, err
	}
	return unflattenState(flat)
}
