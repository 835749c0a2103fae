package marchingcubes

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/voxelfield/isomesh/field"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
	"github.com/voxelfield/isomesh/sparse"
)

// Extractor polygonizes a dense or sparse scalar field at a given
// iso-value. The zero value is not usable; construct one with New.
type Extractor[T numeric.Scalar] struct {
	withNormals bool
	workerLimit int
	logger      *slog.Logger
}

// Option configures an Extractor.
type Option[T numeric.Scalar] func(*Extractor[T])

// WithNormals requests per-vertex normals via central differences.
// Off by default.
func WithNormals[T numeric.Scalar]() Option[T] {
	return func(e *Extractor[T]) { e.withNormals = true }
}

// WithoutNormals disables normal computation (the default).
func WithoutNormals[T numeric.Scalar]() Option[T] {
	return func(e *Extractor[T]) { e.withNormals = false }
}

// WithWorkerLimit bounds the number of concurrent z-slab goroutines.
func WithWorkerLimit[T numeric.Scalar](n int) Option[T] {
	return func(e *Extractor[T]) { e.workerLimit = n }
}

// WithLogger sets the logger used for slab-completion diagnostics.
func WithLogger[T numeric.Scalar](l *slog.Logger) Option[T] {
	return func(e *Extractor[T]) { e.logger = l }
}

// New constructs an Extractor. Defaults: normals off, worker limit
// GOMAXPROCS, slog.Default() logger.
func New[T numeric.Scalar](opts ...Option[T]) *Extractor[T] {
	e := &Extractor[T]{
		withNormals: false,
		workerLimit: runtime.GOMAXPROCS(0),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractDense polygonizes a dense field at iso, fanning out one goroutine
// per z-slab of cells.
func (e *Extractor[T]) ExtractDense(ctx context.Context, d *field.Dense[T], iso T) (*geom.Mesh[T], error) {
	nx, ny, nz := d.Dims()
	if nx < 2 || ny < 2 || nz < 2 {
		return geom.NewMesh[T](nil, nil, nil)
	}
	cellsX, cellsY, cellsZ := nx-1, ny-1, nz-1
	origin := d.Origin()
	cellSize := d.CellSize()
	get := denseAccessor(d)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerLimit)
	slabs := make([]*localMesh[T], cellsZ)
	for iz := 0; iz < cellsZ; iz++ {
		iz := iz
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w", ierrors.ErrCancelled)
			}
			ctx := &cellContext[T]{iso: iso, cellSize: cellSize, withNormals: e.withNormals, get: get, cache: planeCache{}, mesh: &localMesh[T]{}}
			for iy := 0; iy < cellsY; iy++ {
				for ix := 0; ix < cellsX; ix++ {
					corners := [8]T{
						d.At(ix, iy, iz), d.At(ix+1, iy, iz), d.At(ix+1, iy+1, iz), d.At(ix, iy+1, iz),
						d.At(ix, iy, iz+1), d.At(ix+1, iy, iz+1), d.At(ix+1, iy+1, iz+1), d.At(ix, iy+1, iz+1),
					}
					bounds := cellBounds(origin, cellSize, ix, iy, iz)
					processCell(ctx, ix, iy, iz, corners, bounds)
				}
			}
			slabs[iz] = ctx.mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Debug("marching cubes dense extraction complete", "slabs", cellsZ)
	return mergeSlabs(slabs, cellSize, e.withNormals)
}

// ExtractSparse polygonizes a sparse field at iso, walking its active
// cells. Cells are grouped into z-slabs by
// global corner index so the same in-plane vertex cache and cross-slab
// merge strategy as ExtractDense applies.
func (e *Extractor[T]) ExtractSparse(ctx context.Context, f *sparse.Field[T], iso T) (*geom.Mesh[T], error) {
	origin := f.Origin()
	cellSize := f.CellSize()
	get := sparseAccessor(f)

	byZ := map[int][]sparse.ActiveCell[T]{}
	f.Walk(func(c sparse.ActiveCell[T]) bool {
		byZ[c.K] = append(byZ[c.K], c)
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w", ierrors.ErrCancelled)
	}

	zs := make([]int, 0, len(byZ))
	for z := range byZ {
		zs = append(zs, z)
	}
	sort.Ints(zs) // fixed slab order keeps the merge deterministic

	slabs := make([]*localMesh[T], len(zs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerLimit)
	for idx, z := range zs {
		idx, z := idx, z
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w", ierrors.ErrCancelled)
			}
			cctx := &cellContext[T]{iso: iso, cellSize: cellSize, withNormals: e.withNormals, get: get, cache: planeCache{}, mesh: &localMesh[T]{}}
			for _, cell := range byZ[z] {
				bounds := cellBounds(origin, cellSize, cell.I, cell.J, cell.K)
				processCell(cctx, cell.I, cell.J, cell.K, cell.Values, bounds)
			}
			slabs[idx] = cctx.mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.logger.Debug("marching cubes sparse extraction complete", "slabs", len(zs), "active_leaves", f.ActiveLeafCount())
	return mergeSlabs(slabs, cellSize, e.withNormals)
}

func cellBounds[T numeric.Scalar](origin geom.Vec3[T], cellSize T, ix, iy, iz int) geom.BoundingBox[T] {
	min := geom.Vec3[T]{X: origin.X + T(ix)*cellSize, Y: origin.Y + T(iy)*cellSize, Z: origin.Z + T(iz)*cellSize}
	max := geom.Vec3[T]{X: min.X + cellSize, Y: min.Y + cellSize, Z: min.Z + cellSize}
	return geom.BoundingBox[T]{Min: min, Max: max}
}

func denseAccessor[T numeric.Scalar](d *field.Dense[T]) cornerAccessor[T] {
	nx, ny, nz := d.Dims()
	return func(i, j, k int) (T, bool) {
		if i < 0 || j < 0 || k < 0 || i >= nx || j >= ny || k >= nz {
			return 0, false
		}
		return d.At(i, j, k), true
	}
}

func sparseAccessor[T numeric.Scalar](f *sparse.Field[T]) cornerAccessor[T] {
	return func(i, j, k int) (T, bool) {
		if i < 0 || j < 0 || k < 0 {
			return 0, false
		}
		v := f.SampleAt(i, j, k)
		return v, v != f.Sentinel()
	}
}
