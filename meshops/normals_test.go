package meshops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/meshops"
)

func TestComputeSmoothNormals_SingleTriangle(t *testing.T) {
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(0.0, 1.0, 0.0),
	}
	mesh, err := geom.NewMesh(verts, nil, []int{0, 1, 2})
	require.NoError(t, err)

	normals := meshops.ComputeSmoothNormals(mesh)
	require.Len(t, normals, 3)
	for _, n := range normals {
		assert.InDelta(t, 1.0, n.Length(), 1e-9)
		assert.InDelta(t, 1.0, n.Z, 1e-9) // triangle lies in the XY plane, facing +Z
	}
}

func TestComputeSmoothNormals_DegenerateTriangleYieldsZero(t *testing.T) {
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(2.0, 0.0, 0.0), // collinear: zero-area triangle
	}
	mesh, err := geom.NewMesh(verts, nil, []int{0, 1, 2})
	require.NoError(t, err)

	normals := meshops.ComputeSmoothNormals(mesh)
	for _, n := range normals {
		assert.Equal(t, geom.Vec3[float64]{}, n)
	}
}
