package geom

import (
	"fmt"

	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// BoundingBox is an axis-aligned box given by its Min and Max corners, with
// Min <= Max component-wise. Empty boxes are disallowed at construction.
type BoundingBox[T numeric.Scalar] struct {
	Min, Max Vec3[T]
}

// NewBoundingBox validates min <= max component-wise and returns the box,
// or ierrors.ErrInvalidBounds.
func NewBoundingBox[T numeric.Scalar](min, max Vec3[T]) (BoundingBox[T], error) {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return BoundingBox[T]{}, fmt.Errorf("%w: min %v is not <= max %v component-wise", ierrors.ErrInvalidBounds, min, max)
	}
	return BoundingBox[T]{Min: min, Max: max}, nil
}

// Size returns Max - Min.
func (b BoundingBox[T]) Size() Vec3[T] {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b BoundingBox[T]) Center() Vec3[T] {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Contains reports whether p lies within the box, inclusive of the
// boundary.
func (b BoundingBox[T]) Contains(p Vec3[T]) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects reports whether b and o overlap (touching at a boundary
// counts as intersecting).
func (b BoundingBox[T]) Intersects(o BoundingBox[T]) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// Expand returns a box grown by margin on every side.
func (b BoundingBox[T]) Expand(margin T) BoundingBox[T] {
	d := Vec3[T]{margin, margin, margin}
	return BoundingBox[T]{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Corners returns the eight corners of the box in a fixed order: the
// binary-counting order over (x,y,z) (corner i has bit 0 = x, bit 1 = y,
// bit 2 = z, set iff that axis uses Max). This is not the Lorensen & Cline
// corner numbering the marchingcubes tables use.
func (b BoundingBox[T]) Corners() [8]Vec3[T] {
	var c [8]Vec3[T]
	for i := 0; i < 8; i++ {
		x := b.Min.X
		if i&1 != 0 {
			x = b.Max.X
		}
		y := b.Min.Y
		if i&2 != 0 {
			y = b.Max.Y
		}
		z := b.Min.Z
		if i&4 != 0 {
			z = b.Max.Z
		}
		c[i] = Vec3[T]{x, y, z}
	}
	return c
}

// GridCoord maps a world-space point to fractional (i,j,k) offset-grid
// coordinates given an origin and cell size, i.e. the inverse of
// origin + (i,j,k)*cellSize. Used by field/sparse to locate corner
// indices for a query point.
func GridCoord[T numeric.Scalar](p, origin Vec3[T], cellSize T) Vec3[T] {
	inv := 1 / cellSize
	return Vec3[T]{
		(p.X - origin.X) * inv,
		(p.Y - origin.Y) * inv,
		(p.Z - origin.Z) * inv,
	}
}
