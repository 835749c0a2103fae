package field_test

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/field"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
)

func TestBuild_RejectsInvalidInputs(t *testing.T) {
	fn := func(geom.Vec3[float64]) float64 { return 0 }

	_, err := field.Build(context.Background(), geom.Vec3[float64]{}, 0, 2, 2, 2, fn)
	assert.ErrorIs(t, err, ierrors.ErrInvalidCellSize)

	_, err = field.Build(context.Background(), geom.Vec3[float64]{}, 1, 0, 2, 2, fn)
	assert.ErrorIs(t, err, ierrors.ErrInvalidBounds)
}

func TestBuild_SamplesEveryCornerAtWorldPosition(t *testing.T) {
	origin := geom.NewVec3(10.0, 20.0, 30.0)
	d, err := field.Build(context.Background(), origin, 2.0, 3, 3, 3, func(p geom.Vec3[float64]) float64 {
		return p.X + p.Y + p.Z
	})
	require.NoError(t, err)

	nx, ny, nz := d.Dims()
	assert.Equal(t, 3, nx)
	assert.Equal(t, 3, ny)
	assert.Equal(t, 3, nz)

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				want := d.WorldPoint(i, j, k)
				assert.Equal(t, want.X+want.Y+want.Z, d.At(i, j, k))
			}
		}
	}
}

// TestBuild_ThreadCountIndependence checks that
// the same grid evaluated under GOMAXPROCS=1 vs. the default
// GOMAXPROCS must be bit-identical, since each
// z-slab writes only its own segment of the buffer.
func TestBuild_ThreadCountIndependence(t *testing.T) {
	fn := func(p geom.Vec3[float64]) float64 {
		return p.Distance(geom.NewVec3(5.0, 5.0, 5.0)) - 3.0
	}

	serial := make([]float64, 0)
	prev := runtime.GOMAXPROCS(1)
	d1, err := field.Build(context.Background(), geom.Vec3[float64]{}, 0.5, 9, 9, 9, fn)
	runtime.GOMAXPROCS(prev)
	require.NoError(t, err)
	d2, err := field.Build(context.Background(), geom.Vec3[float64]{}, 0.5, 9, 9, 9, fn)
	require.NoError(t, err)

	nx, ny, nz := d1.Dims()
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				serial = append(serial, d1.At(i, j, k))
				assert.Equal(t, d1.At(i, j, k), d2.At(i, j, k))
			}
		}
	}
	assert.NotEmpty(t, serial)
}

func TestBuild_CancelledContextReturnsPromptly(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := field.Build(ctx, geom.Vec3[float64]{}, 1.0, 50, 50, 50, func(geom.Vec3[float64]) float64 { return 0 })
	assert.ErrorIs(t, err, ierrors.ErrCancelled)
}

func TestCellCorners_MatchesAtForEachClassicOffset(t *testing.T) {
	d, err := field.Build(context.Background(), geom.Vec3[float64]{}, 1.0, 2, 2, 2, func(p geom.Vec3[float64]) float64 {
		return p.X + 10*p.Y + 100*p.Z
	})
	require.NoError(t, err)

	got := d.CellCorners(0, 0, 0)
	want := [8]float64{
		d.At(0, 0, 0), d.At(1, 0, 0), d.At(1, 1, 0), d.At(0, 1, 0),
		d.At(0, 0, 1), d.At(1, 0, 1), d.At(1, 1, 1), d.At(0, 1, 1),
	}
	assert.Equal(t, want, got)
}
