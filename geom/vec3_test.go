package geom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
)

func TestVec3_BasicOps(t *testing.T) {
	a := geom.NewVec3(1.0, 2.0, 3.0)
	b := geom.NewVec3(4.0, 5.0, 6.0)

	assert.Equal(t, geom.NewVec3(5.0, 7.0, 9.0), a.Add(b))
	assert.Equal(t, geom.NewVec3(-3.0, -3.0, -3.0), a.Sub(b))
	assert.Equal(t, 32.0, a.Dot(b))
}

func TestVec3_Normalize_Degenerate(t *testing.T) {
	_, err := geom.Vec3[float64]{}.Normalize()
	require.Error(t, err)
	assert.ErrorIs(t, err, ierrors.ErrDegenerateVector)
}

func TestVec3_Normalize_UnitLength(t *testing.T) {
	v := geom.NewVec3(3.0, 4.0, 0.0)
	n, err := v.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, n.Length(), 1e-9)
}

func TestBoundingBox_Corners_BitOrder(t *testing.T) {
	b, err := geom.NewBoundingBox(geom.NewVec3(0.0, 0.0, 0.0), geom.NewVec3(1.0, 1.0, 1.0))
	require.NoError(t, err)

	corners := b.Corners()
	assert.Equal(t, geom.NewVec3(0.0, 0.0, 0.0), corners[0])
	assert.Equal(t, geom.NewVec3(1.0, 0.0, 0.0), corners[1])
	assert.Equal(t, geom.NewVec3(0.0, 1.0, 0.0), corners[2])
	assert.Equal(t, geom.NewVec3(1.0, 1.0, 1.0), corners[7])
}

func TestBoundingBox_InvalidBounds(t *testing.T) {
	_, err := geom.NewBoundingBox(geom.NewVec3(1.0, 0.0, 0.0), geom.NewVec3(0.0, 1.0, 1.0))
	assert.ErrorIs(t, err, ierrors.ErrInvalidBounds)
}
