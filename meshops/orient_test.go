package meshops_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/meshops"
)

// TestOrientConsistently_FlipsMismatchedNeighbor builds two triangles
// sharing edge (1,2): the first wound (0,1,2), the second wound so that
// it traverses the shared edge in the *same* direction (1,2) rather than
// the consistent (2,1), which OrientConsistently must detect and flip.
func TestOrientConsistently_FlipsMismatchedNeighbor(t *testing.T) {
	verts := []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 0.0, 0.0),
		geom.NewVec3(1.0, 1.0, 0.0),
		geom.NewVec3(0.0, 1.0, 0.0),
	}
	// tri0: 0,1,2 traverses edge (1,2) as 1->2.
	// tri1: 1,2,3 also traverses edge (1,2) as 1->2 -- inconsistent.
	mesh, err := geom.NewMesh(verts, nil, []int{0, 1, 2, 1, 2, 3})
	require.NoError(t, err)

	oriented, err := meshops.OrientConsistently(mesh)
	require.NoError(t, err)

	tris := oriented.Triangles()
	tri0 := [3]int{tris[0], tris[1], tris[2]}
	tri1 := [3]int{tris[3], tris[4], tris[5]}

	assert.True(t, sharesReversedEdge(tri0, tri1), "expected the shared edge (1,2) to be traversed in opposite directions after orientation, got %v and %v", tri0, tri1)
}

// sharesReversedEdge reports whether a and b, as ordered vertex-index
// triples, traverse their one shared edge in opposite directions.
func sharesReversedEdge(a, b [3]int) bool {
	edgesOf := func(t [3]int) [3][2]int {
		return [3][2]int{{t[0], t[1]}, {t[1], t[2]}, {t[2], t[0]}}
	}
	for _, ea := range edgesOf(a) {
		for _, eb := range edgesOf(b) {
			if ea[0] == eb[1] && ea[1] == eb[0] {
				return true
			}
		}
	}
	return false
}
