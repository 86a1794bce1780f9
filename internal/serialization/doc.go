// Package serialization provides the native .ritz format for saving
// and loading parameter and state trees.
//
// The .ritz format is a simple binary container:
//
//	Format Structure:
//	  [4 bytes: Magic "RITZ"]
//	  [4 bytes: Version (uint32 LE)]
//	  [8 bytes: Header Size (uint64 LE)]
//	  [Header: JSON tensor index + metadata]
//	  [Tensor data: raw little-endian values, 64-byte aligned start]
//
// Tree slots are flattened to dotted paths ("layer_2.weight") in the
// tensor index; state scalars are encoded as rank-0 tensors. The
// header records a SHA-256 checksum of the data section, verified on
// load.
//
// Example usage:
//
//	ps, st := nn.Setup[float64](rng, model)
//	if err := serialization.SaveParams("model.ritz", ps); err != nil {
//	    return err
//	}
//
//	loaded, err := serialization.LoadParams[float64]("model.ritz")
//	if err != nil {
//	    return err
//	}
package serialization
