package marchingcubes

// ownerEdge records, for one of the twelve cube edges, which neighboring
// cell "owns" it (the cell whose corner 0 the edge touches) and which of
// that owner's own edges (0, 3, or 8) this is.
type ownerEdge struct {
	dx, dy, dz int
	ownedEdge  int
}

// edgeOwners[e] gives the owner offset and owned-edge index for edge e.
// Owned edges (dx=dy=dz=0) are 0, 3 and 8 — the three edges touching
// corner 0. Every other edge is looked up from a neighboring cell's
// owned edge. Offsets with dz=1 (4,5,6,7) cross into the next z-slab and
// are deliberately excluded from the per-slab cache (see planeCache).
var edgeOwners = [12]ownerEdge{
	0:  {0, 0, 0, 0},
	1:  {1, 0, 0, 3},
	2:  {0, 1, 0, 0},
	3:  {0, 0, 0, 3},
	4:  {0, 0, 1, 0},
	5:  {1, 0, 1, 3},
	6:  {0, 1, 1, 0},
	7:  {0, 0, 1, 3},
	8:  {0, 0, 0, 8},
	9:  {1, 0, 0, 8},
	10: {1, 1, 0, 8},
	11: {0, 1, 0, 8},
}

// planeKey identifies an owned edge within a single z-slab: the owning
// cell's (x,y) and its owned-edge index (0, 3 or 8).
type planeKey struct {
	x, y, edge int
}

// planeCache deduplicates the eight in-plane edges (everything but the
// four top-face edges 4,5,6,7) of a single z-slab, bounding memory to
// that one sweep plane.
type planeCache map[planeKey]int

func (c planeCache) lookup(ix, iy, edge int) (int, bool) {
	v, ok := c[planeKey{ix, iy, edge}]
	return v, ok
}

func (c planeCache) store(ix, iy, edge, vertexIdx int) {
	c[planeKey{ix, iy, edge}] = vertexIdx
}
