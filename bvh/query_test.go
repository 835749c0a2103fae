package bvh_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/bvh"
	"github.com/voxelfield/isomesh/geom"
)

// upwardTriangle is a single triangle A=(0,0,0), B=(1,0,0), C=(0,1,0) whose
// CCW winding gives an outward face normal of +Z, used to probe
// SignedDistance's sign convention across the face/edge/vertex pseudo-
// normal feature regions (Baerentzen & Aanaes).
func upwardTriangle(t *testing.T) *bvh.Tree[float64] {
	t.Helper()
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(0.0, 1.0, 0.0),
	}
	m, err := geom.NewMesh(verts, nil, []int{0, 1, 2})
	require.NoError(t, err)
	tree, err := bvh.Build(m)
	require.NoError(t, err)
	return tree
}

func TestSignedDistance_FaceRegion(t *testing.T) {
	tree := upwardTriangle(t)

	above := tree.SignedDistance(geom.NewVec3(0.2, 0.2, 1.0))
	assert.InDelta(t, 1.0, above, 1e-9)

	below := tree.SignedDistance(geom.NewVec3(0.2, 0.2, -1.0))
	assert.InDelta(t, -1.0, below, 1e-9)
}

func TestSignedDistance_VertexRegion(t *testing.T) {
	tree := upwardTriangle(t)

	// Closest point to (-1,-1,z) is vertex A=(0,0,0): both x and y are
	// outside the triangle on the side opposite its only neighbors.
	above := tree.SignedDistance(geom.NewVec3(-1.0, -1.0, 0.5))
	wantDist := math.Sqrt(1 + 1 + 0.25)
	assert.InDelta(t, wantDist, above, 1e-9)

	below := tree.SignedDistance(geom.NewVec3(-1.0, -1.0, -0.5))
	assert.InDelta(t, -wantDist, below, 1e-9)
}

func TestSignedDistance_EdgeRegion(t *testing.T) {
	tree := upwardTriangle(t)

	// Closest point to (0.5,-1,z) lies on edge AB at (0.5,0,0): x is
	// within [0,1] but y is outside the triangle on the side away from C.
	above := tree.SignedDistance(geom.NewVec3(0.5, -1.0, 0.3))
	wantDist := math.Sqrt(1 + 0.09)
	assert.InDelta(t, wantDist, above, 1e-9)

	below := tree.SignedDistance(geom.NewVec3(0.5, -1.0, -0.3))
	assert.InDelta(t, -wantDist, below, 1e-9)
}

func TestSignedDistance_ZeroOnTheSurface(t *testing.T) {
	tree := upwardTriangle(t)
	d := tree.SignedDistance(geom.NewVec3(0.25, 0.25, 0.0))
	assert.InDelta(t, 0.0, d, 1e-9)
}
