package sparse

import (
	"fmt"
	"sync/atomic"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// validBlockSizes enumerates the powers of two permitted for internal and
// leaf block side lengths.
var validBlockSizes = map[int]bool{2: true, 4: true, 8: true, 16: true, 32: true, 64: true, 128: true}

// Config parameterizes a Field's block hierarchy: internal blocks of side
// InternalSize cells, each holding leaf blocks of side LeafSize cells.
// Both must be powers of two from {2,4,...,128} and InternalSize must be
// >= LeafSize.
type Config struct {
	InternalSize int
	LeafSize     int
}

func (c Config) validate() error {
	if !validBlockSizes[c.InternalSize] || !validBlockSizes[c.LeafSize] {
		return fmt.Errorf("%w: internal size %d and leaf size %d must be powers of two in [2,128]", ierrors.ErrInvalidBlockSize, c.InternalSize, c.LeafSize)
	}
	if c.InternalSize < c.LeafSize {
		return fmt.Errorf("%w: internal size %d must be >= leaf size %d", ierrors.ErrInvalidBlockSize, c.InternalSize, c.LeafSize)
	}
	return nil
}

// leavesPerSide is the number of leaf blocks along one axis of an
// internal block. An internal block spans I*L*cellSize per axis and a
// leaf spans L*cellSize, so each internal block holds I leaves per axis
// (I^3 total), and those two side lengths are the ones the sampler's
// prune-distance bounds are derived from.
func (c Config) leavesPerSide() int { return c.InternalSize }

// blockCellsPerSide is the number of grid cells along one axis of an
// internal block: I*L.
func (c Config) blockCellsPerSide() int { return c.InternalSize * c.LeafSize }

// internalBlock is a dense descriptor for one internal block: empty iff
// the sampler proved no leaf within it can touch the iso-surface, in
// which case leaves is nil and every query inside it returns the
// sentinel value.
type internalBlock[T numeric.Scalar] struct {
	empty  bool
	leaves []*leafBlock[T] // len == leavesPerSide^3 when non-empty; nil entries are absent leaves
}

// leafBlock owns a contiguous buffer of (L+1)^3 corner samples.
type leafBlock[T numeric.Scalar] struct {
	samples []T
}

// Field is the two-level sparse scalar field. It stores only the
// internal blocks' lightweight descriptors densely and leaf sample
// buffers sparsely, so memory is bounded by
// active_leaf_count * (L+1)^3 * sizeof(T), not the full dense extent.
type Field[T numeric.Scalar] struct {
	origin   geom.Vec3[T]
	cellSize T
	cfg      Config

	dimsInternal [3]int
	internals    []internalBlock[T]

	sentinel   T
	activeLeaf atomic.Int64
}

// NewField allocates a Field covering bounds at the given cell size and
// block configuration. The internal-block descriptor array is sized to
// cover bounds exactly (rounding up), but no leaf buffers are allocated
// until AllocateLeaf is called.
func NewField[T numeric.Scalar](bounds geom.BoundingBox[T], cellSize T, cfg Config) (*Field[T], error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %v must be positive", ierrors.ErrInvalidCellSize, cellSize)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	size := bounds.Size()
	internalExtent := T(cfg.blockCellsPerSide()) * cellSize
	dims := [3]int{
		ceilDiv(size.X, internalExtent),
		ceilDiv(size.Y, internalExtent),
		ceilDiv(size.Z, internalExtent),
	}
	for _, d := range dims {
		if d < 1 {
			return nil, fmt.Errorf("%w: bounds too small for block configuration", ierrors.ErrInvalidBounds)
		}
	}

	f := &Field[T]{
		origin:       bounds.Min,
		cellSize:     cellSize,
		cfg:          cfg,
		dimsInternal: dims,
		internals:    make([]internalBlock[T], dims[0]*dims[1]*dims[2]),
		sentinel:     numeric.MaxFinite[T](),
	}
	return f, nil
}

func ceilDiv[T numeric.Scalar](a, b T) int {
	if b <= 0 {
		return 0
	}
	n := int(a / b)
	if T(n)*b < a {
		n++
	}
	return n
}

// Bounds returns the origin-anchored bounding box actually covered by the
// internal-block grid (may be larger than the box passed to NewField,
// rounded up to whole blocks).
func (f *Field[T]) Bounds() geom.BoundingBox[T] {
	blockExtent := T(f.cfg.blockCellsPerSide()) * f.cellSize
	max := geom.Vec3[T]{
		X: f.origin.X + T(f.dimsInternal[0])*blockExtent,
		Y: f.origin.Y + T(f.dimsInternal[1])*blockExtent,
		Z: f.origin.Z + T(f.dimsInternal[2])*blockExtent,
	}
	return geom.BoundingBox[T]{Min: f.origin, Max: max}
}

// Origin returns the world-space position of global corner index (0,0,0).
func (f *Field[T]) Origin() geom.Vec3[T] { return f.origin }

// CellSize returns the uniform grid spacing.
func (f *Field[T]) CellSize() T { return f.cellSize }

// Config returns the block-hierarchy configuration.
func (f *Field[T]) Config() Config { return f.cfg }

// InternalDims returns the number of internal blocks along each axis.
func (f *Field[T]) InternalDims() [3]int { return f.dimsInternal }

// ActiveLeafCount returns the number of leaf blocks currently allocated.
func (f *Field[T]) ActiveLeafCount() int { return int(f.activeLeaf.Load()) }

func (f *Field[T]) internalIndex(ix, iy, iz int) int {
	return ix + f.dimsInternal[0]*(iy+f.dimsInternal[1]*iz)
}

// MarkInternalEmpty records that internal block (ix,iy,iz) was proven
// entirely on one side of the iso-surface by the coarse pass; it holds
// no leaves and every sample inside it is the sentinel value.
func (f *Field[T]) MarkInternalEmpty(ix, iy, iz int) {
	f.internals[f.internalIndex(ix, iy, iz)].empty = true
}

// InternalEmpty reports whether internal block (ix,iy,iz) was marked
// empty (or never allocated leaves).
func (f *Field[T]) InternalEmpty(ix, iy, iz int) bool {
	b := &f.internals[f.internalIndex(ix, iy, iz)]
	return b.empty || b.leaves == nil
}

// PrepareLeaves allocates internal block (ix,iy,iz)'s leaf-descriptor
// array so that subsequent AllocateLeaf calls for its distinct leaves can
// run concurrently (each writes a different slice index, never
// reallocating the backing array). Callers must invoke this once,
// single-threaded, before fanning out across a block's leaves.
func (f *Field[T]) PrepareLeaves(ix, iy, iz int) {
	b := &f.internals[f.internalIndex(ix, iy, iz)]
	if b.leaves == nil {
		lps := f.cfg.leavesPerSide()
		b.leaves = make([]*leafBlock[T], lps*lps*lps)
	}
}

// AllocateLeaf reserves and returns the sample buffer for leaf
// (lx,ly,lz) within internal block (ix,iy,iz). PrepareLeaves must have
// been called first for this internal block. Safe to call concurrently
// for distinct (lx,ly,lz) within the same block; the caller fills all
// (L+1)^3 entries of the returned buffer.
func (f *Field[T]) AllocateLeaf(ix, iy, iz, lx, ly, lz int) []T {
	b := &f.internals[f.internalIndex(ix, iy, iz)]
	lps := f.cfg.leavesPerSide()
	li := lx + lps*(ly+lps*lz)
	n := f.cfg.LeafSize + 1
	b.leaves[li] = &leafBlock[T]{samples: make([]T, n*n*n)}
	f.activeLeaf.Add(1)
	return b.leaves[li].samples
}

// LeafAt returns the sample buffer for leaf (lx,ly,lz) within internal
// block (ix,iy,iz), or nil if that leaf was never allocated (absent).
func (f *Field[T]) LeafAt(ix, iy, iz, lx, ly, lz int) []T {
	b := &f.internals[f.internalIndex(ix, iy, iz)]
	if b.leaves == nil {
		return nil
	}
	lps := f.cfg.leavesPerSide()
	leaf := b.leaves[lx+lps*(ly+lps*lz)]
	if leaf == nil {
		return nil
	}
	return leaf.samples
}

// decompose maps a global grid-corner index along one axis into
// (internal index, leaf index, intra-leaf corner index), clamping the
// trailing corner of the whole field into the last block so every index
// in [0, totalCorners] resolves to a valid triple.
func (f *Field[T]) decompose(i, dimInternal int) (ib, lb, lc int) {
	lps := f.cfg.leavesPerSide()
	blockCells := f.cfg.blockCellsPerSide()

	ib = i / blockCells
	if ib >= dimInternal {
		ib = dimInternal - 1
	}
	li := i - ib*blockCells

	lb = li / f.cfg.LeafSize
	if lb >= lps {
		lb = lps - 1
	}
	lc = li - lb*f.cfg.LeafSize
	if lc > f.cfg.LeafSize {
		lc = f.cfg.LeafSize
	}
	return ib, lb, lc
}

// SampleAt returns the scalar value at grid-corner indices (i,j,k) over
// the whole field extent, decomposing into an internal index, a leaf
// index, and an intra-leaf corner index. Corners on a leaf
// boundary are stored redundantly by every adjacent leaf; if the primary
// leaf is absent, the neighbors on the -x/-y/-z side that share the
// corner are consulted before falling back to the sentinel "far outside"
// value.
func (f *Field[T]) SampleAt(i, j, k int) T {
	ix, lx, cx := f.decompose(i, f.dimsInternal[0])
	iy, ly, cy := f.decompose(j, f.dimsInternal[1])
	iz, lz, cz := f.decompose(k, f.dimsInternal[2])

	n := f.cfg.LeafSize + 1
	if samples := f.LeafAt(ix, iy, iz, lx, ly, lz); samples != nil {
		return samples[cx+n*(cy+n*cz)]
	}

	// A corner with intra-leaf index 0 along an axis also belongs to the
	// previous leaf along that axis (at index L there); try the up-to-seven
	// neighbor combinations that share this corner.
	for mask := 1; mask < 8; mask++ {
		gx, hx, dx, ok := f.shiftAxis(mask&1 != 0, ix, lx, cx)
		if !ok {
			continue
		}
		gy, hy, dy, ok := f.shiftAxis(mask&2 != 0, iy, ly, cy)
		if !ok {
			continue
		}
		gz, hz, dz, ok := f.shiftAxis(mask&4 != 0, iz, lz, cz)
		if !ok {
			continue
		}
		if samples := f.LeafAt(gx, gy, gz, hx, hy, hz); samples != nil {
			return samples[dx+n*(dy+n*dz)]
		}
	}
	return f.sentinel
}

// shiftAxis rewrites one axis of a (internal, leaf, corner) triple to the
// previous leaf along that axis, valid only when the corner sits on the
// leaf's low boundary. shift=false returns the triple unchanged.
func (f *Field[T]) shiftAxis(shift bool, ib, lb, lc int) (int, int, int, bool) {
	if !shift {
		return ib, lb, lc, true
	}
	if lc != 0 {
		return 0, 0, 0, false
	}
	if lb > 0 {
		return ib, lb - 1, f.cfg.LeafSize, true
	}
	if ib > 0 {
		return ib - 1, f.cfg.leavesPerSide() - 1, f.cfg.LeafSize, true
	}
	return 0, 0, 0, false
}

// Sentinel returns the "far outside" value used for absent leaves.
func (f *Field[T]) Sentinel() T { return f.sentinel }
