package bvh

import (
	"fmt"

	"github.com/dhconnelly/rtreego"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// minRectExtent guards against rtreego.NewRect rejecting a degenerate
// (zero-width) axis, which happens for perfectly planar meshes or
// single-triangle leaves aligned to an axis.
const minRectExtent = 1e-9

// Build constructs a Tree over mesh's triangles, splitting top-down along
// each node's box center until a leaf's triangle count is at or below
// maxLeafSize or maxDepth is reached.
func Build[T numeric.Scalar](mesh *geom.Mesh[T], opts ...Option) (*Tree[T], error) {
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("%w: mesh has no triangles", ierrors.ErrInvalidBounds)
	}

	cfg := config{maxLeafSize: defaultMaxLeafSize, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Tree[T]{mesh: mesh}
	t.precomputePseudoNormals()

	indices := make([]int, mesh.TriangleCount())
	for i := range indices {
		indices[i] = i
	}

	root, err := t.buildNode(indices, mesh.Bounds(), cfg, 0)
	if err != nil {
		return nil, err
	}
	t.root = root

	return t, nil
}

func (t *Tree[T]) buildNode(indices []int, bounds geom.BoundingBox[T], cfg config, depth int) (*node[T], error) {
	rect, err := toRect(bounds)
	if err != nil {
		return nil, err
	}

	if len(indices) <= cfg.maxLeafSize || depth >= cfg.maxDepth {
		return &node[T]{rect: rect, triIdx: indices}, nil
	}

	center := bounds.Center()
	var buckets [8][]int
	for _, idx := range indices {
		tb := t.mesh.TriangleAt(idx).Bounds()
		octant := octantOf(tb.Center(), center)
		buckets[octant] = append(buckets[octant], idx)
	}

	// If every triangle landed in the same octant (e.g. many coincident
	// or degenerate triangles), subdividing further makes no progress;
	// fall back to a leaf rather than recursing forever.
	nonEmpty := 0
	for _, b := range buckets {
		if len(b) > 0 {
			nonEmpty++
		}
	}
	if nonEmpty <= 1 {
		return &node[T]{rect: rect, triIdx: indices}, nil
	}

	n := &node[T]{rect: rect}
	for octant, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		childBounds := octantBounds(bounds, center, octant)
		child, err := t.buildNode(bucket, childBounds, cfg, depth+1)
		if err != nil {
			return nil, err
		}
		n.children[octant] = child
	}
	return n, nil
}

// octantOf returns 0..7 identifying which octant of center p falls into,
// using the same bit convention as geom.BoundingBox.Corners: bit0=x,
// bit1=y, bit2=z, set iff p is on the Max side of center on that axis.
func octantOf[T numeric.Scalar](p, center geom.Vec3[T]) int {
	octant := 0
	if p.X >= center.X {
		octant |= 1
	}
	if p.Y >= center.Y {
		octant |= 2
	}
	if p.Z >= center.Z {
		octant |= 4
	}
	return octant
}

// octantBounds returns the sub-box of bounds corresponding to octant,
// split at center.
func octantBounds[T numeric.Scalar](bounds geom.BoundingBox[T], center geom.Vec3[T], octant int) geom.BoundingBox[T] {
	min, max := bounds.Min, bounds.Max
	if octant&1 != 0 {
		min.X = center.X
	} else {
		max.X = center.X
	}
	if octant&2 != 0 {
		min.Y = center.Y
	} else {
		max.Y = center.Y
	}
	if octant&4 != 0 {
		min.Z = center.Z
	} else {
		max.Z = center.Z
	}
	return geom.BoundingBox[T]{Min: min, Max: max}
}

// toRect converts a geom.BoundingBox[T] to an rtreego.Rect, widening any
// zero-length axis by minRectExtent so rtreego.NewRect never rejects it.
func toRect[T numeric.Scalar](b geom.BoundingBox[T]) (rtreego.Rect, error) {
	origin := rtreego.Point{float64(b.Min.X), float64(b.Min.Y), float64(b.Min.Z)}
	lengths := []float64{
		maxF(float64(b.Max.X-b.Min.X), minRectExtent),
		maxF(float64(b.Max.Y-b.Min.Y), minRectExtent),
		maxF(float64(b.Max.Z-b.Min.Z), minRectExtent),
	}
	rect, err := rtreego.NewRect(origin, lengths)
	if err != nil {
		return rtreego.Rect{}, fmt.Errorf("%w: %v", ierrors.ErrInvalidBounds, err)
	}
	return *rect, nil
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
