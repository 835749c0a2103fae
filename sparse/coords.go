package sparse

import "github.com/voxelfield/isomesh/geom"

// InternalBounds returns the world-space box covered by internal block
// (ix,iy,iz): origin + I*L*cellSize*(ix,iy,iz) through the next block's
// origin.
func (f *Field[T]) InternalBounds(ix, iy, iz int) geom.BoundingBox[T] {
	blockExtent := T(f.cfg.blockCellsPerSide()) * f.cellSize
	min := geom.Vec3[T]{
		X: f.origin.X + T(ix)*blockExtent,
		Y: f.origin.Y + T(iy)*blockExtent,
		Z: f.origin.Z + T(iz)*blockExtent,
	}
	max := geom.Vec3[T]{X: min.X + blockExtent, Y: min.Y + blockExtent, Z: min.Z + blockExtent}
	return geom.BoundingBox[T]{Min: min, Max: max}
}

// LeafBounds returns the world-space box covered by leaf (lx,ly,lz)
// within internal block (ix,iy,iz): a sub-box of side L*cellSize.
func (f *Field[T]) LeafBounds(ix, iy, iz, lx, ly, lz int) geom.BoundingBox[T] {
	ib := f.InternalBounds(ix, iy, iz)
	leafExtent := T(f.cfg.LeafSize) * f.cellSize
	min := geom.Vec3[T]{
		X: ib.Min.X + T(lx)*leafExtent,
		Y: ib.Min.Y + T(ly)*leafExtent,
		Z: ib.Min.Z + T(lz)*leafExtent,
	}
	max := geom.Vec3[T]{X: min.X + leafExtent, Y: min.Y + leafExtent, Z: min.Z + leafExtent}
	return geom.BoundingBox[T]{Min: min, Max: max}
}

// LeavesPerSide returns the number of leaf blocks along one axis of an
// internal block (see Config.leavesPerSide for the derivation).
func (f *Field[T]) LeavesPerSide() int { return f.cfg.leavesPerSide() }
