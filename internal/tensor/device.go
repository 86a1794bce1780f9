package tensor

// Device tags where a tensor's data lives.
//
// The numeric core only ever computes on CPU; the tag exists so that the
// container types stay traversable by an external relocator, which replaces
// arrays wholesale rather than mutating them in place.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	CUDA
	Metal
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case CUDA:
		return "CUDA"
	case Metal:
		return "Metal"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Float is the constraint for tensor element types.
//
// The layer catalog is generic over the element type so that models can run
// in float32 (the conventional training dtype) or float64 (useful when PDE
// residuals demand the extra precision).
type Float interface {
	~float32 | ~float64
}
