package serialization

import (
	"fmt"
	"time"

	"github.com/ritz-ml/ritz/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "RITZ"
	FormatVersion   = 1
	HeaderAlignment = 64 // Tensor data starts on a 64-byte boundary.
)

// Data type string constants for the tensor index.
const (
	DTypeFloat32 = "float32"
	DTypeFloat64 = "float64"
)

// Header is the JSON header of a .ritz file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	RitzVersion   string            `json:"ritz_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Checksum      string            `json:"checksum"` // SHA-256 of the data section, hex
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`   // Dotted slot path, e.g. "layer_1.weight"
	DType  string `json:"dtype"`  // "float32" or "float64"
	Shape  []int  `json:"shape"`  // [] encodes a rank-0 scalar slot
	Offset int64  `json:"offset"` // Bytes from the start of the data section
	Size   int64  `json:"size"`   // Bytes
}

// dtypeOf returns the index string for the element type T.
func dtypeOf[T tensor.Float]() string {
	var zero T
	switch any(zero).(type) {
	case float32:
		return DTypeFloat32
	case float64:
		return DTypeFloat64
	default:
		panic(fmt.Sprintf("serialization: unsupported element type %T", zero))
	}
}

// elemSize returns the byte size of the element type T.
func elemSize[T tensor.Float]() int64 {
	var zero T
	if _, ok := any(zero).(float32); ok {
		return 4
	}
	return 8
}
