package marchingcubes

import (
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/internal/debug"
	"github.com/voxelfield/isomesh/numeric"
)

// cornerAccessor reads a scalar sample at a global corner index, reporting
// whether that corner exists (false at the field boundary or an absent
// sparse leaf, where gradients fall back to one-sided differences).
type cornerAccessor[T numeric.Scalar] func(i, j, k int) (T, bool)

// localMesh accumulates one slab's emitted geometry before the final
// cross-slab merge.
type localMesh[T numeric.Scalar] struct {
	vertices  []geom.Vec3[T]
	normals   []geom.Vec3[T] // nil unless normals were requested
	triangles []int
}

const marchingCubesEps = 1e-6

// interpolateEdge returns the iso-surface crossing point along segment
// (a,b) with scalar values (va,vb), using the midpoint when the values
// are too close to interpolate safely.
func interpolateEdge[T numeric.Scalar](a, b geom.Vec3[T], va, vb, iso T) geom.Vec3[T] {
	denom := vb - va
	if numeric.Abs(denom) < T(marchingCubesEps) {
		return a.Add(b).Scale(0.5)
	}
	t := (iso - va) / denom
	t = numeric.Clamp(t, 0, 1)
	return a.Add(b.Sub(a).Scale(t))
}

// gradientAt estimates the field gradient at corner (i,j,k) by central
// differences, falling back to one-sided differences where a neighbor is
// unavailable.
func gradientAt[T numeric.Scalar](get cornerAccessor[T], i, j, k int, cellSize T) geom.Vec3[T] {
	return geom.Vec3[T]{
		X: partialDiff(get, i, j, k, 1, 0, 0, cellSize),
		Y: partialDiff(get, i, j, k, 0, 1, 0, cellSize),
		Z: partialDiff(get, i, j, k, 0, 0, 1, cellSize),
	}
}

func partialDiff[T numeric.Scalar](get cornerAccessor[T], i, j, k, dx, dy, dz int, cellSize T) T {
	vp, okp := get(i+dx, j+dy, k+dz)
	vm, okm := get(i-dx, j-dy, k-dz)
	switch {
	case okp && okm:
		return (vp - vm) / (2 * cellSize)
	case okp:
		if v0, ok0 := get(i, j, k); ok0 {
			return (vp - v0) / cellSize
		}
	case okm:
		if v0, ok0 := get(i, j, k); ok0 {
			return (v0 - vm) / cellSize
		}
	}
	return 0
}

// cellContext bundles the per-slab state processCell needs: the iso
// value, the corner sample accessor (for normals), the cell size, whether
// to compute normals, the in-plane vertex cache, and the mesh being built.
type cellContext[T numeric.Scalar] struct {
	iso         T
	cellSize    T
	withNormals bool
	get         cornerAccessor[T]
	cache       planeCache
	mesh        *localMesh[T]
}

// processCell classifies cell (ix,iy,iz) (global corner-index origin) and,
// if the iso-surface crosses it, emits its triangles into ctx.mesh,
// reusing or populating ctx.cache for the eight in-plane edges.
func processCell[T numeric.Scalar](ctx *cellContext[T], ix, iy, iz int, corners [8]T, bounds geom.BoundingBox[T]) {
	mask := 0
	for i, v := range corners {
		if v < ctx.iso {
			mask |= 1 << uint(i)
		}
	}
	if mask == 0 || mask == 255 {
		return
	}

	cubeCorners := classicCorners(bounds)
	var edgeVertexIdx [12]int
	var edgeUsed [12]bool

	row := triTable[mask]
	for _, e := range row {
		if e < 0 {
			break
		}
		debug.Assert(e < 12, "triangle table row %d references edge %d", mask, e)
		if edgeUsed[e] {
			continue
		}
		edgeUsed[e] = true
		edgeVertexIdx[e] = ctx.resolveEdgeVertex(e, ix, iy, iz, corners, cubeCorners)
	}

	for i := 0; i+2 < len(row) && row[i] >= 0; i += 3 {
		ctx.mesh.triangles = append(ctx.mesh.triangles,
			edgeVertexIdx[row[i]], edgeVertexIdx[row[i+1]], edgeVertexIdx[row[i+2]])
	}
}

// resolveEdgeVertex returns the index of edge e's interpolated vertex
// within ctx.mesh, reusing the in-plane cache entry if a previously
// processed neighbor already created it.
func (ctx *cellContext[T]) resolveEdgeVertex(e, ix, iy, iz int, corners [8]T, cubeCorners [8]geom.Vec3[T]) int {
	owner := edgeOwners[e]
	inPlane := owner.dz == 0
	if inPlane {
		if idx, ok := ctx.cache.lookup(ix+owner.dx, iy+owner.dy, owner.ownedEdge); ok {
			return idx
		}
	}

	ev := edgeVertices[e]
	a, b := cubeCorners[ev[0]], cubeCorners[ev[1]]
	va, vb := corners[ev[0]], corners[ev[1]]
	pos := interpolateEdge(a, b, va, vb, ctx.iso)

	idx := len(ctx.mesh.vertices)
	ctx.mesh.vertices = append(ctx.mesh.vertices, pos)
	if ctx.withNormals {
		gi, gj, gk := cornerGlobalIndex(ix, iy, iz, ev[0])
		g0 := gradientAt(ctx.get, gi, gj, gk, ctx.cellSize)
		gi, gj, gk = cornerGlobalIndex(ix, iy, iz, ev[1])
		g1 := gradientAt(ctx.get, gi, gj, gk, ctx.cellSize)
		t := T(0.5)
		if denom := vb - va; numeric.Abs(denom) >= T(marchingCubesEps) {
			t = numeric.Clamp((ctx.iso-va)/denom, 0, 1)
		}
		grad := g0.Add(g1.Sub(g0).Scale(t))
		n, err := grad.Normalize()
		if err != nil {
			n = geom.Vec3[T]{}
		}
		ctx.mesh.normals = append(ctx.mesh.normals, n)
	}

	if inPlane {
		ctx.cache.store(ix+owner.dx, iy+owner.dy, owner.ownedEdge, idx)
	}
	return idx
}

// classicCornerOffset gives the per-axis (+0/+1) offset of local corner
// 0..7 under the classic Lorensen & Cline vertex numbering (corners 0-3
// run counter-clockwise around the bottom face, 4-7 the same order on the
// top face) that edgeTable/triTable and field.Dense.CellCorners/
// sparse.ActiveCell.Values all assume.
var classicCornerOffset = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// classicCorners returns bounds' eight corners in classicCornerOffset
// order, matching the vertex numbering processCell's corner values use.
func classicCorners[T numeric.Scalar](bounds geom.BoundingBox[T]) [8]geom.Vec3[T] {
	var c [8]geom.Vec3[T]
	for i, off := range classicCornerOffset {
		c[i] = geom.Vec3[T]{
			X: pick(off[0] == 1, bounds.Max.X, bounds.Min.X),
			Y: pick(off[1] == 1, bounds.Max.Y, bounds.Min.Y),
			Z: pick(off[2] == 1, bounds.Max.Z, bounds.Min.Z),
		}
	}
	return c
}

func pick[T numeric.Scalar](useMax bool, max, min T) T {
	if useMax {
		return max
	}
	return min
}

// cornerGlobalIndex maps cell (ix,iy,iz) and a local corner 0..7
// (classicCornerOffset numbering) to its global grid-corner index.
func cornerGlobalIndex(ix, iy, iz, local int) (int, int, int) {
	off := classicCornerOffset[local]
	return ix + off[0], iy + off[1], iz + off[2]
}
