package bvh

import (
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// precomputePseudoNormals builds the face, edge and vertex pseudo-normals
// used for sign determination (Baerentzen & Aanaes, "Signed Distance
// Computation Using the Angle Weighted Pseudonormal"): a vertex's
// pseudo-normal is the angle-weighted sum of its incident faces' normals;
// an edge's is the unweighted average of its (at most two) incident
// faces' normals.
func (t *Tree[T]) precomputePseudoNormals() {
	tris := t.mesh.Triangles()
	n := t.mesh.TriangleCount()

	t.faceNormal = make([]geom.Vec3[T], n)
	t.vertexNormal = make(map[int]geom.Vec3[T])
	t.edgeNormal = make(map[edgeKey]geom.Vec3[T])

	for i := 0; i < n; i++ {
		tri := t.mesh.TriangleAt(i)
		raw := tri.Normal()
		unit, err := raw.Normalize()
		if err != nil {
			unit = geom.Vec3[T]{} // degenerate triangle contributes nothing
		}
		t.faceNormal[i] = unit

		a, b, c := tris[3*i], tris[3*i+1], tris[3*i+2]
		angleA := interiorAngle(tri.A, tri.B, tri.C)
		angleB := interiorAngle(tri.B, tri.C, tri.A)
		angleC := interiorAngle(tri.C, tri.A, tri.B)
		t.vertexNormal[a] = t.vertexNormal[a].Add(unit.Scale(angleA))
		t.vertexNormal[b] = t.vertexNormal[b].Add(unit.Scale(angleB))
		t.vertexNormal[c] = t.vertexNormal[c].Add(unit.Scale(angleC))

		t.edgeNormal[newEdgeKey(a, b)] = t.edgeNormal[newEdgeKey(a, b)].Add(unit)
		t.edgeNormal[newEdgeKey(b, c)] = t.edgeNormal[newEdgeKey(b, c)].Add(unit)
		t.edgeNormal[newEdgeKey(c, a)] = t.edgeNormal[newEdgeKey(c, a)].Add(unit)
	}

	for k, v := range t.vertexNormal {
		if unit, err := v.Normalize(); err == nil {
			t.vertexNormal[k] = unit
		}
	}
	for k, v := range t.edgeNormal {
		if unit, err := v.Normalize(); err == nil {
			t.edgeNormal[k] = unit
		}
	}
}

// interiorAngle returns the angle at vertex p of triangle (p, q, r), in
// radians, used as the pseudo-normal weight at p.
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

