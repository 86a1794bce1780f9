package pinn

import (
	"github.com/ritz-ml/ritz/internal/tensor"
)

// Relocator moves tensors to a compute target. Implementations live
// with the back-ends; the containers here only promise to be
// traversable, replacing arrays wholesale and never mutating them in
// place.
type Relocator[T tensor.Float] interface {
	// Device returns the target this relocator moves tensors to.
	Device() tensor.Device

	// Move returns t relocated to the target device. Implementations
	// return a new tensor; the input stays valid on its old device.
	Move(t *tensor.Dense[T]) *tensor.Dense[T]
}

// Relocate returns a new binding with every parameter and state array
// moved by r. The source binding is left untouched, so a model can be
// bound to several devices at once.
func Relocate[T tensor.Float](p *PINN[T], r Relocator[T]) *PINN[T] {
	networks := make(map[string]*ChainState[T], len(p.networks))
	for name, c := range p.networks {
		networks[name] = NewChainState(c.layer, c.state.Map(r.Move))
	}
	names := make([]string, len(p.names))
	copy(names, p.names)
	return &PINN[T]{
		networks:   networks,
		names:      names,
		single:     p.single,
		initParams: p.initParams.Map(r.Move),
	}
}

// CPURelocator is the reference Relocator: it copies tensors and tags
// them as CPU-resident.
type CPURelocator[T tensor.Float] struct{}

// Device returns tensor.CPU.
func (CPURelocator[T]) Device() tensor.Device { return tensor.CPU }

// Move copies t onto the CPU.
func (CPURelocator[T]) Move(t *tensor.Dense[T]) *tensor.Dense[T] {
	return t.To(tensor.CPU)
}
