// Package models holds the dense grid types shared between the interpolator,
// the visualization viewer, and the command-line binding.
package models

import "fmt"

// Volume represents a dense 3D scalar grid as a 1D array in row-major order,
// indexed by non-negative integer triples (i, j, k) with the linear index
// (i*Nj + j)*Nk + k. During interpolation two parallel volumes exist: one
// accumulates scattered values and one counts contributions per cell.
type Volume struct {
	// Data is the 3D grid data as a 1D array in row-major order
	Data []float64

	// Ni, Nj, Nk are the grid extents along each axis in cells
	Ni, Nj, Nk int
}

// NewVolume allocates a zero-initialized volume with the given extents.
// Zero extents are valid and produce an empty volume; negative extents are
// rejected.
func NewVolume(ni, nj, nk int) (*Volume, error) {
	if ni < 0 || nj < 0 || nk < 0 {
		return nil, fmt.Errorf("volume extents must be non-negative, got (%d, %d, %d)", ni, nj, nk)
	}
	return &Volume{
		Data: make([]float64, ni*nj*nk),
		Ni:   ni,
		Nj:   nj,
		Nk:   nk,
	}, nil
}

// Len returns the total number of cells in the volume.
func (v *Volume) Len() int {
	return v.Ni * v.Nj * v.Nk
}

// Index returns the linear index of cell (i, j, k).
func (v *Volume) Index(i, j, k int) int {
	return (i*v.Nj+j)*v.Nk + k
}

// At returns the value stored at cell (i, j, k).
func (v *Volume) At(i, j, k int) float64 {
	return v.Data[v.Index(i, j, k)]
}

// Set stores a value at cell (i, j, k).
func (v *Volume) Set(i, j, k int, value float64) {
	v.Data[v.Index(i, j, k)] = value
}

// Add adds a value to the cell (i, j, k) in place.
func (v *Volume) Add(i, j, k int, value float64) {
	v.Data[v.Index(i, j, k)] += value
}

// SameShape reports whether two volumes have identical extents.
func (v *Volume) SameShape(o *Volume) bool {
	return v.Ni == o.Ni && v.Nj == o.Nj && v.Nk == o.Nk
}
