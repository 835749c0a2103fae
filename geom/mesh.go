package geom

import (
	"fmt"

	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// Mesh is an indexed triangle mesh: a vertex array, an optional per-vertex
// normal array, and a flat triangle index array. It is immutable after
// construction.
type Mesh[T numeric.Scalar] struct {
	vertices  []Vec3[T]
	normals   []Vec3[T] // nil if normals were not requested
	triangles []int     // len() is a multiple of 3
}

// NewMesh validates the mesh invariants (every triangle index in range;
// normals, when present, match vertex count) and returns an immutable
// Mesh.
func NewMesh[T numeric.Scalar](vertices, normals []Vec3[T], triangles []int) (*Mesh[T], error) {
	if len(triangles)%3 != 0 {
		return nil, fmt.Errorf("%w: triangle index array length %d is not a multiple of 3", ierrors.ErrInvalidBounds, len(triangles))
	}
	for _, idx := range triangles {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("%w: triangle index %d out of range [0,%d)", ierrors.ErrInvalidBounds, idx, len(vertices))
		}
	}
	if normals != nil && len(normals) != len(vertices) {
		return nil, fmt.Errorf("%w: normals length %d does not match vertex count %d", ierrors.ErrInvalidBounds, len(normals), len(vertices))
	}

	vcopy := make([]Vec3[T], len(vertices))
	copy(vcopy, vertices)
	tcopy := make([]int, len(triangles))
	copy(tcopy, triangles)
	var ncopy []Vec3[T]
	if normals != nil {
		ncopy = make([]Vec3[T], len(normals))
		copy(ncopy, normals)
	}

	return &Mesh[T]{vertices: vcopy, normals: ncopy, triangles: tcopy}, nil
}

// Vertices returns the mesh's vertex positions. The returned slice must
// not be mutated by callers.
func (m *Mesh[T]) Vertices() []Vec3[T] { return m.vertices }

// Normals returns the mesh's per-vertex normals, or nil if none were
// computed. The returned slice must not be mutated by callers.
func (m *Mesh[T]) Normals() []Vec3[T] { return m.normals }

// Triangles returns the flat triangle index array. The returned slice
// must not be mutated by callers.
func (m *Mesh[T]) Triangles() []int { return m.triangles }

// VertexCount returns the number of vertices.
func (m *Mesh[T]) VertexCount() int { return len(m.vertices) }

// TriangleCount returns the number of triangles.
func (m *Mesh[T]) TriangleCount() int { return len(m.triangles) / 3 }

// TriangleAt returns the i-th triangle as a geometric Triangle value.
func (m *Mesh[T]) TriangleAt(i int) Triangle[T] {
	a := m.triangles[3*i]
	b := m.triangles[3*i+1]
	c := m.triangles[3*i+2]
	return Triangle[T]{A: m.vertices[a], B: m.vertices[b], C: m.vertices[c]}
}

// Bounds returns the axis-aligned bounding box of all vertices. It panics
// if the mesh has no vertices; callers should check VertexCount first.
func (m *Mesh[T]) Bounds() BoundingBox[T] {
	min, max := m.vertices[0], m.vertices[0]
	for _, v := range m.vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return BoundingBox[T]{Min: min, Max: max}
}
