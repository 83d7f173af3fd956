// Package interpolation implements discrete natural-neighbor (Sibson-style)
// interpolation of sparse known samples onto a regular 3D grid.
//
// The algorithm is a scatter rather than a gather: each grid cell's
// natural-neighbor region is only implicitly known through the distance to
// its nearest known point, so every cell pushes that point's value into all
// grid cells within a sphere of that radius, and a final pass divides each
// cell's accumulated sum by its contribution count. The ROI bounding box is
// a coarse prefilter; the exact squared-distance test inside it is what
// gives the footprint its roughly spherical shape.
package interpolation

import (
	"errors"
	"fmt"
	"math"

	"naturalneighbor/internal/models"
	"naturalneighbor/pkg/geometry"
	"naturalneighbor/pkg/spatial"
)

// ErrInvalidShape is returned when grid extents or input array lengths are
// inconsistent with the interpolation contract.
var ErrInvalidShape = errors.New("invalid grid or input shape")

// ProgressCallback is a function that reports progress during interpolation
type ProgressCallback func(completed, total int, message string)

// Interpolator performs discrete natural-neighbor interpolation of a fixed
// set of known points and values. The point and value slices are referenced,
// not copied, and must remain valid and unmodified while the interpolator
// is in use.
type Interpolator struct {
	points           []geometry.Point
	values           []float64
	progressCallback ProgressCallback
}

// NewInterpolator creates an interpolator over parallel slices of known
// point coordinates and their scalar values.
func NewInterpolator(points []geometry.Point, values []float64) *Interpolator {
	return &Interpolator{
		points: points,
		values: values,
	}
}

// SetProgressCallback sets an optional callback for progress reporting
// during long interpolation runs.
func (n *Interpolator) SetProgressCallback(callback ProgressCallback) {
	n.progressCallback = callback
}

func (n *Interpolator) reportProgress(completed, total int, message string) {
	if n.progressCallback != nil {
		n.progressCallback(completed, total, message)
	}
}

// Interpolate fills the caller-allocated, zero-initialized interp and counts
// volumes in place. On return interp holds the normalized interpolated field
// and counts the number of contributions each cell received.
//
// The two volumes must have identical non-negative extents; zero-sized
// extents are valid and produce empty output. An empty known-point set fails
// with spatial.ErrEmptyIndex before any cell is written; inconsistent shapes
// fail with ErrInvalidShape before any work begins.
func (n *Interpolator) Interpolate(interp, counts *models.Volume) error {
	if err := n.checkShapes(interp, counts); err != nil {
		return err
	}
	if len(n.points) == 0 {
		return fmt.Errorf("interpolate: %w", spatial.ErrEmptyIndex)
	}

	n.reportProgress(0, interp.Len(), "Building spatial index...")
	tree, err := spatial.NewTree(n.points, n.values)
	if err != nil {
		return fmt.Errorf("building spatial index: %w", err)
	}

	ni, nj, nk := interp.Ni, interp.Nj, interp.Nk
	total := interp.Len()

	// Scatter pass. Each cell queries its nearest known point, then pushes
	// that point's value into every cell of the clamped ROI box that lies
	// within the nearest-neighbor sphere. The sphere test compares integer
	// squared grid distances against the floating squared distance with <=,
	// and the radius is ceil(sqrt(d2)); both choices define the exact
	// footprint shape and must not change.
	for i := 0; i < ni; i++ {
		for j := 0; j < nj; j++ {
			for k := 0; k < nk; k++ {
				query := geometry.NewPoint(float64(i), float64(j), float64(k))
				nearest, err := tree.Nearest(query)
				if err != nil {
					return fmt.Errorf("querying cell (%d, %d, %d): %w", i, j, k, err)
				}

				d2 := nearest.DistanceSq
				radius := int(math.Ceil(math.Sqrt(d2)))

				iMin, iMax := clampROI(i, radius, ni)
				jMin, jMax := clampROI(j, radius, nj)
				kMin, kMax := clampROI(k, radius, nk)

				for iROI := iMin; iROI <= iMax; iROI++ {
					di := i - iROI
					for jROI := jMin; jROI <= jMax; jROI++ {
						dj := j - jROI
						for kROI := kMin; kROI <= kMax; kROI++ {
							dk := k - kROI
							if float64(di*di+dj*dj+dk*dk) <= d2 {
								idx := interp.Index(iROI, jROI, kROI)
								interp.Data[idx] += nearest.Value
								counts.Data[idx]++
							}
						}
					}
				}
			}
		}
		n.reportProgress((i+1)*nj*nk, total, "Scattering nearest-neighbor contributions...")
	}

	// Normalization pass, applied exactly once per cell. Cells that received
	// no contribution keep their initial value; self-scatter makes that
	// impossible for cells that were themselves query points, but the guard
	// stays in place.
	for idx, count := range counts.Data {
		if count != 0 {
			interp.Data[idx] /= count
		}
	}

	n.reportProgress(total, total, "Interpolation complete")
	return nil
}

// checkShapes rejects impossible inputs before any work begins.
func (n *Interpolator) checkShapes(interp, counts *models.Volume) error {
	if len(n.points) != len(n.values) {
		return fmt.Errorf("%w: %d points but %d values", ErrInvalidShape,
			len(n.points), len(n.values))
	}
	if interp == nil || counts == nil {
		return fmt.Errorf("%w: output volumes must be non-nil", ErrInvalidShape)
	}
	for _, v := range []*models.Volume{interp, counts} {
		if v.Ni < 0 || v.Nj < 0 || v.Nk < 0 {
			return fmt.Errorf("%w: negative extents (%d, %d, %d)", ErrInvalidShape,
				v.Ni, v.Nj, v.Nk)
		}
		if len(v.Data) != v.Len() {
			return fmt.Errorf("%w: volume has %d cells but extents imply %d",
				ErrInvalidShape, len(v.Data), v.Len())
		}
	}
	if !interp.SameShape(counts) {
		return fmt.Errorf("%w: accumulator extents (%d, %d, %d) != counter extents (%d, %d, %d)",
			ErrInvalidShape, interp.Ni, interp.Nj, interp.Nk, counts.Ni, counts.Nj, counts.Nk)
	}
	return nil
}

// clampROI intersects [center-radius, center+radius] with the valid index
// range [0, extent-1].
func clampROI(center, radius, extent int) (lo, hi int) {
	lo = center - radius
	if lo < 0 {
		lo = 0
	}
	hi = center + radius
	if hi > extent-1 {
		hi = extent - 1
	}
	return lo, hi
}

// GridData interpolates the known samples onto a freshly allocated grid of
// the given extents and returns the normalized result. It is the convenience
// entry used by bindings that do not manage their own output buffers.
func GridData(points []geometry.Point, values []float64, ni, nj, nk int) (*models.Volume, error) {
	interp, err := models.NewVolume(ni, nj, nk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	counts, err := models.NewVolume(ni, nj, nk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}

	if err := NewInterpolator(points, values).Interpolate(interp, counts); err != nil {
		return nil, err
	}
	return interp, nil
}
