package bvh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/bvh"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
)

func singleTriangleMesh(t *testing.T) *geom.Mesh[float64] {
	t.Helper()
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(0.0, 1.0, 0.0),
	}
	m, err := geom.NewMesh(verts, nil, []int{0, 1, 2})
	require.NoError(t, err)
	return m
}

func TestBuild_RejectsEmptyMesh(t *testing.T) {
	m, err := geom.NewMesh[float64](nil, nil, nil)
	require.NoError(t, err)

	_, err = bvh.Build(m)
	assert.ErrorIs(t, err, ierrors.ErrInvalidBounds)
}

func TestBuild_SucceedsOnSingleTriangle(t *testing.T) {
	tree, err := bvh.Build(singleTriangleMesh(t))
	require.NoError(t, err)
	require.NotNil(t, tree)
}

func TestBuild_RespectsMaxLeafSizeOption(t *testing.T) {
	// A denser mesh of several disjoint triangles so a small leaf size
	// actually forces a split; mainly checks the option wiring does not
	// panic or error rather than inspecting tree shape (unexported).
	var verts []geom.Vec3[float64]
	var tris []int
	for i := 0; i < 16; i++ {
		base := float64(i) * 10
		verts = append(verts,
			geom.NewVec3(base, 0, 0),
			geom.NewVec3(base+1, 0, 0),
			geom.NewVec3(base, 1, 0),
		)
		tris = append(tris, 3*i, 3*i+1, 3*i+2)
	}
	m, err := geom.NewMesh(verts, nil, tris)
	require.NoError(t, err)

	tree, err := bvh.Build(m, bvh.WithMaxLeafSize(2), bvh.WithMaxDepth(8))
	require.NoError(t, err)
	require.NotNil(t, tree)

	// Every far-flung triangle must still be queryable without error.
	d := tree.SignedDistance(geom.NewVec3(0.1, 0.1, 5.0))
	assert.InDelta(t, 5.0, d, 1e-6)
}
