package geom

import "github.com/voxelfield/isomesh/numeric"

// Plane is a half-space boundary given by a point on the plane and an
// outward-facing unit normal.
type Plane[T numeric.Scalar] struct {
	Point  Vec3[T]
	Normal Vec3[T]
}

// SignedDistance returns the signed distance from p to the plane, positive
// on the side the normal points toward.
func (pl Plane[T]) SignedDistance(p Vec3[T]) T {
	return p.Sub(pl.Point).Dot(pl.Normal)
}

// Line is a finite segment from A to B.
type Line[T numeric.Scalar] struct {
	A, B Vec3[T]
}

// ClosestPoint returns the point on the segment closest to p, and the
// parameter t in [0,1] at which it occurs.
func (l Line[T]) ClosestPoint(p Vec3[T]) (Vec3[T], T) {
	ab := l.B.Sub(l.A)
	denom := ab.Dot(ab)
	if denom == 0 {
		return l.A, 0
	}
	t := numeric.Clamp(p.Sub(l.A).Dot(ab)/denom, T(0), T(1))
	return l.A.Add(ab.Scale(t)), t
}

// Triangle is a triangle given by its three vertices in counter-clockwise
// winding (front face normal via (B-A) x (C-A)).
type Triangle[T numeric.Scalar] struct {
	A, B, C Vec3[T]
}

// Normal returns the (non-unit) face normal (B-A) x (C-A).
func (t Triangle[T]) Normal() Vec3[T] {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Area returns the triangle's area.
func (t Triangle[T]) Area() T {
	return t.Normal().Length() * 0.5
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t Triangle[T]) Bounds() BoundingBox[T] {
	min := t.A.Min(t.B).Min(t.C)
	max := t.A.Max(t.B).Max(t.C)
	return BoundingBox[T]{Min: min, Max: max}
}

// ClosestPoint returns the closest point on the (solid, filled) triangle
// to p, via the standard edge/region test (Ericson, "Real-Time Collision
// Detection" §5.1.5).
func (t Triangle[T]) ClosestPoint(p Vec3[T]) Vec3[T] {
	ab := t.B.Sub(t.A)
	ac := t.C.Sub(t.A)
	ap := p.Sub(t.A)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return t.A
	}

	bp := p.Sub(t.B)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return t.B
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return t.A.Add(ab.Scale(v))
	}

	cp := p.Sub(t.C)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return t.C
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return t.A.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return t.B.Add(t.C.Sub(t.B).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return t.A.Add(ab.Scale(v)).Add(ac.Scale(w))
}
