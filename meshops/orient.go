package meshops

import (
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// edgeKey identifies an undirected mesh edge by its pair of vertex
// indices, canonicalized low-first.
type edgeKey [2]int

func newEdgeKey(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// OrientConsistently returns a copy of mesh whose triangles are flipped so
// that winding is consistent across every shared edge within each
// connected component: two triangles sharing an edge (u,v) agree if one
// traverses it u->v and the other v->u. Propagation is breadth-first over
// the triangle-adjacency graph built from shared edges, seeded from the
// first unvisited triangle of each component in index order, the same
// frontier-by-frontier traversal model's reachability search uses for
// cycle detection. Mesh components with no triangles (stray vertices) are
// left untouched; normals, if present, are not recomputed by this
// function — call ComputeSmoothNormals afterward if needed.
func OrientConsistently[T numeric.Scalar](mesh *geom.Mesh[T]) (*geom.Mesh[T], error) {
	triCount := mesh.TriangleCount()
	tris := mesh.Triangles()

	adjacency := make(map[edgeKey][]int, triCount*3)
	for i := 0; i < triCount; i++ {
		a, b, c := tris[3*i], tris[3*i+1], tris[3*i+2]
		for _, e := range [3]edgeKey{newEdgeKey(a, b), newEdgeKey(b, c), newEdgeKey(c, a)} {
			adjacency[e] = append(adjacency[e], i)
		}
	}

	flip := make([]bool, triCount)
	visited := make([]bool, triCount)

	for start := 0; start < triCount; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		frontier := []int{start}
		for len(frontier) > 0 {
			var next []int
			for _, i := range frontier {
				a, b, c := tris[3*i], tris[3*i+1], tris[3*i+2]
				edges := [3]edgeKey{newEdgeKey(a, b), newEdgeKey(b, c), newEdgeKey(c, a)}
				dirs := [3][2]int{{a, b}, {b, c}, {c, a}}
				if flip[i] {
					dirs = [3][2]int{{b, a}, {c, b}, {a, c}}
				}
				for ei, e := range edges {
					u, v := dirs[ei][0], dirs[ei][1]
					for _, j := range adjacency[e] {
						if j == i || visited[j] {
							continue
						}
						ja, jb, jc := tris[3*j], tris[3*j+1], tris[3*j+2]
						jEdges := [3][2]int{{ja, jb}, {jb, jc}, {jc, ja}}
						// Consistent winding means the shared edge is
						// traversed in opposite directions by its two
						// incident triangles; a same-direction match means
						// j needs to be flipped.
						consistent := false
						for _, jd := range jEdges {
							if jd[0] == v && jd[1] == u {
								consistent = true
							}
						}
						visited[j] = true
						flip[j] = !consistent
						next = append(next, j)
					}
				}
			}
			frontier = next
		}
	}

	outTris := make([]int, len(tris))
	copy(outTris, tris)
	for i := 0; i < triCount; i++ {
		if flip[i] {
			outTris[3*i+1], outTris[3*i+2] = outTris[3*i+2], outTris[3*i+1]
		}
	}

	return geom.NewMesh(mesh.Vertices(), mesh.Normals(), outTris)
}
