package meshops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/meshops"
)

func TestWeld_MergesCoincidentVertices(t *testing.T) {
	// Two triangles sharing an edge, each with its own copy of that
	// edge's two vertices (as independent slabs would produce).
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(0.0, 1.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0), // duplicate of vertex 1
		geom.NewVec3(0.0, 1.0, 0.0), // duplicate of vertex 2
		geom.NewVec3(1.0, 1.0, 0.0),
	}
	mesh, err := geom.NewMesh(verts, nil, []int{0, 1, 2, 3, 5, 4})
	require.NoError(t, err)

	welded, err := meshops.Weld(mesh, 1.0)
	require.NoError(t, err)

	assert.Equal(t, 4, welded.VertexCount())
	assert.Equal(t, 2, welded.TriangleCount())
}

func TestWeld_WithTolerance_SeparatesNearbyVertices(t *testing.T) {
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(0.0, 1.0, 0.0),
		geom.NewVec3(1.0+1e-6, 0.0, 0.0), // extremely close to vertex 1
		geom.NewVec3(0.0, 1.0, 0.0),
		geom.NewVec3(1.0, 1.0, 0.0),
	}
	mesh, err := geom.NewMesh(verts, nil, []int{0, 1, 2, 3, 5, 4})
	require.NoError(t, err)

	welded, err := meshops.Weld(mesh, 1.0, meshops.WithTolerance[float64](1e-9))
	require.NoError(t, err)

	// With a tight enough tolerance, the near-duplicate (vertex 3) is kept
	// distinct from vertex 1, while the exact duplicate (vertex 4 == 2)
	// still merges: 6 input vertices collapse to 5.
	assert.Equal(t, 5, welded.VertexCount())
}

func TestWeld_DropsDegenerateTriangleAfterMerge(t *testing.T) {
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(0.0, 0.0, 0.0), // identical to vertex 0
		geom.NewVec3(1.0, 0.0, 0.0),
	}
	mesh, err := geom.NewMesh(verts, nil, []int{0, 1, 2})
	require.NoError(t, err)

	welded, err := meshops.Weld(mesh, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0, welded.TriangleCount())
}
