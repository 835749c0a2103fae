package meshops

import (
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// ComputeSmoothNormals returns one angle-weighted vertex normal per
// mesh.Vertices() entry, the same accumulation bvh's pseudo-normal
// precomputation uses for sign determination (Baerentzen & Aanaes): each
// face contributes its unit normal to its three corners, weighted by the
// face's interior angle at that corner, and the per-vertex sum is
// renormalized. A vertex touched only by degenerate (zero-area) faces, or
// by none at all, is returned as the zero vector.
func ComputeSmoothNormals[T numeric.Scalar](mesh *geom.Mesh[T]) []geom.Vec3[T] {
	n := mesh.VertexCount()
	sum := make([]geom.Vec3[T], n)
	tris := mesh.Triangles()

	for i := 0; i < mesh.TriangleCount(); i++ {
		tri := mesh.TriangleAt(i)
		unit, err := tri.Normal().Normalize()
		if err != nil {
			continue
		}
		a, b, c := tris[3*i], tris[3*i+1], tris[3*i+2]
		sum[a] = sum[a].Add(unit.Scale(interiorAngle(tri.A, tri.B, tri.C)))
		sum[b] = sum[b].Add(unit.Scale(interiorAngle(tri.B, tri.C, tri.A)))
		sum[c] = sum[c].Add(unit.Scale(interiorAngle(tri.C, tri.A, tri.B)))
	}

	out := make([]geom.Vec3[T], n)
	for i, s := range sum {
		if unit, err := s.Normalize(); err == nil {
			out[i] = unit
		}
	}
	return out
}

// interiorAngle returns the angle at vertex p of triangle (p, q, r), in
// radians.
func interiorAngle[T numeric.Scalar](p, q, r geom.Vec3[T]) T {
	u := q.Sub(p)
	v := r.Sub(p)
	ul, vl := u.Length(), v.Length()
	if ul == 0 || vl == 0 {
		return 0
	}
	cosTheta := numeric.Clamp(u.Dot(v)/(ul*vl), -1, 1)
	return numeric.Acos(cosTheta)
}
