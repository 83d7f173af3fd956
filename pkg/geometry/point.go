// Package geometry provides the fixed three-dimensional point type used by
// the spatial index and the interpolator.
package geometry

// Dims is the dimensionality of the points in this package.
// The interpolation pipeline is fixed at three spatial dimensions.
const Dims = 3

// Point is a location in 3D space. Points are value types and are
// immutable once constructed.
type Point [Dims]float64

// NewPoint creates a point from its three coordinates.
func NewPoint(x, y, z float64) Point {
	return Point{x, y, z}
}

// Coord returns the coordinate of the point along the given axis
// (0 = x, 1 = y, 2 = z).
func (p Point) Coord(axis int) float64 {
	return p[axis]
}

// SquaredDistance returns the squared Euclidean distance between two points.
// The square root is deliberately not taken; nearest-neighbor comparisons
// only need relative ordering, which squared distances preserve.
func (p Point) SquaredDistance(q Point) float64 {
	dx := p[0] - q[0]
	dy := p[1] - q[1]
	dz := p[2] - q[2]
	return dx*dx + dy*dy + dz*dz
}
