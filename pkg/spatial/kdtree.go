// Package spatial implements the kd-tree spatial index used to answer exact
// nearest-neighbor queries against the set of known sample points.
//
// The tree is built once from the full point set, queried read-only, and
// discarded; it supports no insertion or deletion after construction.
package spatial

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"naturalneighbor/pkg/geometry"
)

// ErrEmptyIndex is returned by nearest-neighbor queries against an index
// built from zero points.
var ErrEmptyIndex = errors.New("spatial index is empty")

// nilNode marks an absent child in the node arena.
const nilNode = -1

// NearestResult is the outcome of a nearest-neighbor query.
type NearestResult struct {
	// Index is the position of the nearest point in the slices the tree
	// was built from.
	Index int

	// DistanceSq is the squared Euclidean distance to the nearest point.
	DistanceSq float64

	// Value is the scalar value associated with the nearest point.
	Value float64
}

// node is a splitting hyperplane in the tree. Children are arena indices,
// nilNode when absent. Every point in the left subtree has a coordinate on
// the split axis <= the pivot's; every point in the right subtree has a
// coordinate >= the pivot's.
type node struct {
	point int // index into the caller's point slice
	axis  int
	left  int
	right int
}

// Tree is a kd-tree over a caller-supplied pair of parallel slices: point
// coordinates and their associated scalar values. The tree stores indices
// into those slices rather than copies, so both slices must remain valid
// and unmodified for the lifetime of the tree.
type Tree struct {
	points []geometry.Point
	values []float64
	nodes  []node
	root   int
}

// NewTree builds a kd-tree from parallel point and value slices. The point
// set may be empty; the resulting tree is valid but fails every nearest
// query with ErrEmptyIndex. Mismatched slice lengths are rejected.
//
// Construction recursively partitions the points, cycling the split axis
// with tree depth and picking the median along that axis as the pivot,
// which keeps the tree balanced.
func NewTree(points []geometry.Point, values []float64) (*Tree, error) {
	if len(points) != len(values) {
		return nil, fmt.Errorf("point and value counts differ: %d points, %d values",
			len(points), len(values))
	}

	t := &Tree{
		points: points,
		values: values,
		root:   nilNode,
	}
	if len(points) == 0 {
		return t, nil
	}

	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}

	t.nodes = make([]node, 0, len(points))
	t.root = t.build(order, 0)
	return t, nil
}

// build recursively partitions the points referenced by order and returns
// the arena index of the subtree root. The points strictly before the
// median position form the left subtree, the points strictly after it the
// right subtree.
func (t *Tree) build(order []int, depth int) int {
	if len(order) == 0 {
		return nilNode
	}

	axis := depth % geometry.Dims

	// Median selection via a full sort along the split axis. A quickselect
	// partition would shave the constant factor, but the guaranteed
	// O(n log n) sort is simpler to get right and build cost is dwarfed by
	// the ni*nj*nk queries that follow.
	sort.Slice(order, func(a, b int) bool {
		return t.points[order[a]].Coord(axis) < t.points[order[b]].Coord(axis)
	})
	mid := len(order) / 2

	id := len(t.nodes)
	t.nodes = append(t.nodes, node{
		point: order[mid],
		axis:  axis,
		left:  nilNode,
		right: nilNode,
	})

	// Children are attached after the recursive calls because appends
	// during recursion may relocate the arena.
	left := t.build(order[:mid], depth+1)
	right := t.build(order[mid+1:], depth+1)
	t.nodes[id].left = left
	t.nodes[id].right = right
	return id
}

// Len returns the number of points in the index.
func (t *Tree) Len() int {
	return len(t.points)
}

// Nearest returns the exact nearest known point to the query point: its
// index, squared distance, and associated value. Querying an empty index
// fails with ErrEmptyIndex.
//
// When several points are at equal minimal distance the first one
// encountered in traversal order wins. That choice is deterministic for a
// fixed tree shape but may differ between trees built with different
// balancing, so callers must not rely on a particular winner among ties.
func (t *Tree) Nearest(query geometry.Point) (NearestResult, error) {
	if t.root == nilNode {
		return NearestResult{}, fmt.Errorf("nearest query: %w", ErrEmptyIndex)
	}

	best := NearestResult{Index: -1, DistanceSq: math.Inf(1)}
	t.search(t.root, query, &best)
	best.Value = t.values[best.Index]
	return best, nil
}

// search descends toward the half-space containing the query point and
// prunes the sibling subtree whenever the squared perpendicular distance
// from the query to the splitting hyperplane already exceeds the best
// squared distance found.
func (t *Tree) search(id int, query geometry.Point, best *NearestResult) {
	n := &t.nodes[id]
	pivot := t.points[n.point]

	if d2 := query.SquaredDistance(pivot); d2 < best.DistanceSq {
		best.DistanceSq = d2
		best.Index = n.point
	}

	delta := query.Coord(n.axis) - pivot.Coord(n.axis)
	near, far := n.left, n.right
	if delta > 0 {
		near, far = n.right, n.left
	}

	if near != nilNode {
		t.search(near, query, best)
	}
	// Any point beyond the hyperplane is at least |delta| away, so the far
	// subtree can only matter while delta^2 is within the current best.
	if far != nilNode && delta*delta <= best.DistanceSq {
		t.search(far, query, best)
	}
}
