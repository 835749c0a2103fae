package sampler

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/model"
	"github.com/voxelfield/isomesh/numeric"
	"github.com/voxelfield/isomesh/sparse"
)

type blockCoord struct{ ix, iy, iz int }

// SampleField walks m's outputName node across the sparse hierarchy,
// coarse-then-fine, producing a populated sparse.Field.
// Cancelling ctx aborts remaining blocks/leaves and returns
// ierrors.ErrCancelled; no partial field is returned in that case.
func (s *Sampler[T]) SampleField(ctx context.Context, m *model.Model[T], outputName string) (*sparse.Field[T], error) {
	if err := s.cfg.validate(); err != nil {
		return nil, err
	}

	field, err := sparse.NewField[T](s.cfg.Bounds, s.cfg.CellSize, sparse.Config{
		InternalSize: s.cfg.InternalSize,
		LeafSize:     s.cfg.LeafSize,
	})
	if err != nil {
		return nil, err
	}

	sqrt3 := numeric.Sqrt(T(3))
	dInternal := sqrt3*T(s.cfg.InternalSize*s.cfg.LeafSize)*s.cfg.CellSize/2 + s.cfg.JoinTolerance
	dLeaf := sqrt3*T(s.cfg.LeafSize)*s.cfg.CellSize/2 + s.cfg.JoinTolerance

	active, err := s.coarsePass(ctx, field, m, outputName, dInternal)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("sampler coarse pass complete", "active_blocks", len(active), "total_blocks", blockTotal(field))

	if err := s.finePass(ctx, field, m, outputName, active, dLeaf); err != nil {
		return nil, err
	}
	s.logger.Debug("sampler fine pass complete", "active_leaves", field.ActiveLeafCount())

	return field, nil
}

func blockTotal[T numeric.Scalar](f *sparse.Field[T]) int {
	d := f.InternalDims()
	return d[0] * d[1] * d[2]
}

// coarsePass evaluates every internal block's corners+center (and any
// pilot samples) and marks blocks that cannot contain the iso-surface as
// empty, returning the remaining candidates.
func (s *Sampler[T]) coarsePass(ctx context.Context, field *sparse.Field[T], m *model.Model[T], outputName string, threshold T) ([]blockCoord, error) {
	dims := field.InternalDims()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)

	var mu sync.Mutex
	var active []blockCoord

	for iz := 0; iz < dims[2]; iz++ {
		for iy := 0; iy < dims[1]; iy++ {
			for ix := 0; ix < dims[0]; ix++ {
				ix, iy, iz := ix, iy, iz
				g.Go(func() error {
					if err := gctx.Err(); err != nil {
						return fmt.Errorf("%w", ierrors.ErrCancelled)
					}
					bounds := field.InternalBounds(ix, iy, iz)
					pts := samplePoints[T](bounds, s.cfg.PilotSamples)
					vals, err := m.EvaluateBatchAt(outputName, pts)
					if err != nil {
						return err
					}
					if !isActive(vals, threshold) {
						field.MarkInternalEmpty(ix, iy, iz)
						return nil
					}
					field.PrepareLeaves(ix, iy, iz)
					mu.Lock()
					active = append(active, blockCoord{ix, iy, iz})
					mu.Unlock()
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return active, nil
}

// finePass evaluates every candidate leaf within the active blocks and
// allocates sample buffers for the leaves that survive the prune test.
func (s *Sampler[T]) finePass(ctx context.Context, field *sparse.Field[T], m *model.Model[T], outputName string, active []blockCoord, threshold T) error {
	lps := field.LeavesPerSide()
	n := s.cfg.LeafSize + 1

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workerLimit)

	for _, bc := range active {
		bc := bc
		for lz := 0; lz < lps; lz++ {
			for ly := 0; ly < lps; ly++ {
				for lx := 0; lx < lps; lx++ {
					lx, ly, lz := lx, ly, lz
					g.Go(func() error {
						if err := gctx.Err(); err != nil {
							return fmt.Errorf("%w", ierrors.ErrCancelled)
						}
						bounds := field.LeafBounds(bc.ix, bc.iy, bc.iz, lx, ly, lz)
						testPts := samplePoints[T](bounds, s.cfg.PilotSamples)
						testVals, err := m.EvaluateBatchAt(outputName, testPts)
						if err != nil {
							return err
						}
						if !isActive(testVals, threshold) {
							return nil
						}
						if s.cfg.MaxActiveLeaves > 0 && field.ActiveLeafCount() >= s.cfg.MaxActiveLeaves {
							return fmt.Errorf("%w", ierrors.ErrLeafBudgetExceeded)
						}

						gridPts := leafGridPoints[T](bounds, s.cfg.LeafSize, n)
						gridVals, err := m.EvaluateBatchAt(outputName, gridPts)
						if err != nil {
							return err
						}
						buf := field.AllocateLeaf(bc.ix, bc.iy, bc.iz, lx, ly, lz)
						copy(buf, gridVals)
						return nil
					})
				}
			}
		}
	}
	return g.Wait()
}

// samplePoints is the coarse/fine prune-test sample set: fixed
// corners+center plus any configured pilot samples.
func samplePoints[T numeric.Scalar](bounds geom.BoundingBox[T], pilotSamples int) []geom.Vec3[T] {
	pts := cornersAndCenter(bounds)
	if pilotSamples > 0 {
		pts = append(pts, pilotPoints(bounds, pilotSamples)...)
	}
	return pts
}

// leafGridPoints returns every corner of a leaf's (L+1)^3 sample grid, in
// the x-fastest order sparse.Field expects (idx = cx + n*(cy + n*cz)).
func leafGridPoints[T numeric.Scalar](bounds geom.BoundingBox[T], leafSize, n int) []geom.Vec3[T] {
	step := bounds.Size().Scale(1 / T(leafSize))
	pts := make([]geom.Vec3[T], 0, n*n*n)
	for cz := 0; cz < n; cz++ {
		z := bounds.Min.Z + T(cz)*step.Z
		for cy := 0; cy < n; cy++ {
			y := bounds.Min.Y + T(cy)*step.Y
			for cx := 0; cx < n; cx++ {
				x := bounds.Min.X + T(cx)*step.X
				pts = append(pts, geom.Vec3[T]{X: x, Y: y, Z: z})
			}
		}
	}
	return pts
}
