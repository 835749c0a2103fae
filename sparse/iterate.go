package sparse

// ActiveCell describes one Marching-Cubes cell fully covered by a present
// leaf: its (i,j,k) global corner-index origin and its eight corner
// values in the standard corner order (matching field.Dense.CellCorners
// and the classic Lorensen & Cline vertex numbering the marchingcubes
// tables assume).
type ActiveCell[T any] struct {
	I, J, K int
	Values  [8]T
}

// Walk invokes visit once for every cell fully contained in a present
// leaf, in internal-block then leaf then cell order. Because every leaf
// stores its own redundant copy of
// boundary corners, each cell's eight corners come entirely from its
// owning leaf's buffer; no cross-leaf lookups are needed. Walk stops
// early if visit returns false.
func (f *Field[T]) Walk(visit func(ActiveCell[T]) bool) {
	lps := f.cfg.leavesPerSide()
	blockCells := f.cfg.blockCellsPerSide()
	n := f.cfg.LeafSize + 1

	for iz := 0; iz < f.dimsInternal[2]; iz++ {
		for iy := 0; iy < f.dimsInternal[1]; iy++ {
			for ix := 0; ix < f.dimsInternal[0]; ix++ {
				b := &f.internals[f.internalIndex(ix, iy, iz)]
				if b.leaves == nil {
					continue
				}
				for lz := 0; lz < lps; lz++ {
					for ly := 0; ly < lps; ly++ {
						for lx := 0; lx < lps; lx++ {
							leaf := b.leaves[lx+lps*(ly+lps*lz)]
							if leaf == nil {
								continue
							}
							baseI := ix*blockCells + lx*f.cfg.LeafSize
							baseJ := iy*blockCells + ly*f.cfg.LeafSize
							baseK := iz*blockCells + lz*f.cfg.LeafSize

							for cz := 0; cz < f.cfg.LeafSize; cz++ {
								for cy := 0; cy < f.cfg.LeafSize; cy++ {
									for cx := 0; cx < f.cfg.LeafSize; cx++ {
										cell := ActiveCell[T]{
											I: baseI + cx,
											J: baseJ + cy,
											K: baseK + cz,
											Values: [8]T{
												leaf.samples[idx3(cx, cy, cz, n)],
												leaf.samples[idx3(cx+1, cy, cz, n)],
												leaf.samples[idx3(cx+1, cy+1, cz, n)],
												leaf.samples[idx3(cx, cy+1, cz, n)],
												leaf.samples[idx3(cx, cy, cz+1, n)],
												leaf.samples[idx3(cx+1, cy, cz+1, n)],
												leaf.samples[idx3(cx+1, cy+1, cz+1, n)],
												leaf.samples[idx3(cx, cy+1, cz+1, n)],
											},
										}
										if !visit(cell) {
											return
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}
}

func idx3(x, y, z, n int) int { return x + n*(y+n*z) }
