package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrDTypeMismatch      = errors.New("tensor dtype does not match requested element type")
)

// ValidationError reports a malformed tensor index entry.
type ValidationError struct {
	Tensor  string
	Details string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tensor %q: %s", e.Tensor, e.Details)
}
