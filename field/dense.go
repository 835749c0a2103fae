package field

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// Dense is a flat 3D array of scalar samples over a regular grid:
// origin, uniform cell size, per-axis corner counts, and a buffer indexed
// x-fastest as x + nx*(y + ny*z). The grid
// samples cell corners, so it covers (nx-1)*(ny-1)*(nz-1) marching-cubes
// cells.
type Dense[T numeric.Scalar] struct {
	origin     geom.Vec3[T]
	cellSize   T
	nx, ny, nz int
	values     []T
}

// Fn is the pure point-evaluation callback a Dense field samples from.
// Implementations must be safe to call concurrently from multiple
// goroutines.
type Fn[T numeric.Scalar] func(p geom.Vec3[T]) T

// Build fills a Dense field of nx*ny*nz corners by evaluating fn at every
// grid corner, parallelizing across z-slabs. Each slab
// writes only to its own contiguous segment of the buffer, so the result
// is bit-identical regardless of how many goroutines run concurrently.
// Cancelling ctx aborts remaining slabs and returns ierrors.ErrCancelled.
func Build[T numeric.Scalar](ctx context.Context, origin geom.Vec3[T], cellSize T, nx, ny, nz int, fn Fn[T]) (*Dense[T], error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %v must be positive", ierrors.ErrInvalidCellSize, cellSize)
	}
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("%w: grid dimensions (%d,%d,%d) must each be >= 1", ierrors.ErrInvalidBounds, nx, ny, nz)
	}

	d := &Dense[T]{origin: origin, cellSize: cellSize, nx: nx, ny: ny, nz: nz, values: make([]T, nx*ny*nz)}

	g, gctx := errgroup.WithContext(ctx)
	slabSize := nx * ny
	for z := 0; z < nz; z++ {
		z := z
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("%w", ierrors.ErrCancelled)
			}
			base := z * slabSize
			wz := origin.Z + T(z)*cellSize
			for y := 0; y < ny; y++ {
				wy := origin.Y + T(y)*cellSize
				row := base + y*nx
				for x := 0; x < nx; x++ {
					wx := origin.X + T(x)*cellSize
					d.values[row+x] = fn(geom.Vec3[T]{X: wx, Y: wy, Z: wz})
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}

// Dims returns the per-axis corner counts (nx, ny, nz).
func (d *Dense[T]) Dims() (int, int, int) { return d.nx, d.ny, d.nz }

// Origin returns the world-space position of corner (0,0,0).
func (d *Dense[T]) Origin() geom.Vec3[T] { return d.origin }

// CellSize returns the uniform grid spacing.
func (d *Dense[T]) CellSize() T { return d.cellSize }

// At returns the sample at corner (i,j,k). It panics if any index is out
// of range; callers iterate within Dims().
func (d *Dense[T]) At(i, j, k int) T {
	return d.values[i+d.nx*(j+d.ny*k)]
}

// WorldPoint returns the world-space position of corner (i,j,k).
func (d *Dense[T]) WorldPoint(i, j, k int) geom.Vec3[T] {
	return geom.Vec3[T]{
		X: d.origin.X + T(i)*d.cellSize,
		Y: d.origin.Y + T(j)*d.cellSize,
		Z: d.origin.Z + T(k)*d.cellSize,
	}
}

// CellCorners returns the eight sample values of cell (i,j,k) in the
// standard Marching-Cubes corner order: 0=(0,0,0) through the unit cube,
// matching the classic Lorensen & Cline vertex numbering the
// marchingcubes tables assume.
func (d *Dense[T]) CellCorners(i, j, k int) [8]T {
	return [8]T{
		d.At(i, j, k),
		d.At(i+1, j, k),
		d.At(i+1, j+1, k),
		d.At(i, j+1, k),
		d.At(i, j, k+1),
		d.At(i+1, j, k+1),
		d.At(i+1, j+1, k+1),
		d.At(i, j+1, k+1),
	}
}
