package bvh

import (
	"github.com/dhconnelly/rtreego"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// defaultMaxLeafSize is the default per-leaf triangle-count threshold.
const defaultMaxLeafSize = 32

// defaultMaxDepth bounds recursion on degenerate (highly-clustered)
// inputs where the triangle count alone would never drop below
// maxLeafSize.
const defaultMaxDepth = 24

// config holds Tree construction parameters.
type config struct {
	maxLeafSize int
	maxDepth    int
}

// Option configures Tree construction.
type Option func(*config)

// WithMaxLeafSize overrides the default per-leaf triangle-count
// threshold.
func WithMaxLeafSize(n int) Option {
	return func(c *config) { c.maxLeafSize = n }
}

// WithMaxDepth overrides the default recursion depth cap.
func WithMaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// node is either an Internal node with up to eight children (some may be
// nil if no triangle touches that octant), or a Leaf holding triangle
// indices into Tree.mesh.
type node[T numeric.Scalar] struct {
	rect     rtreego.Rect // float64 bounding box, used for box-to-point lower bounds
	children [8]*node[T]  // nil entries are absent octants
	triIdx   []int        // non-nil only for leaves
}

func (n *node[T]) isLeaf() bool { return n.triIdx != nil }

// Tree is the built bounding-volume tree over a mesh's triangles.
// It stores triangles by index into the source mesh to keep nodes small.
type Tree[T numeric.Scalar] struct {
	mesh *geom.Mesh[T]
	root *node[T]

	faceNormal   []geom.Vec3[T] // unit face normal per triangle
	vertexNormal map[int]geom.Vec3[T]
	edgeNormal   map[edgeKey]geom.Vec3[T]
}

// edgeKey identifies an undirected edge by its (ordered) vertex index
// pair, used to accumulate the two adjacent faces' pseudo-normal
// contribution.
type edgeKey struct{ lo, hi int }

func newEdgeKey(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}
