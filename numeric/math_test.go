package numeric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxelfield/isomesh/numeric"
)

func TestSqrt(t *testing.T) {
	assert.InDelta(t, 3.0, numeric.Sqrt(9.0), 1e-9)
	assert.InDelta(t, float32(3.0), numeric.Sqrt(float32(9.0)), 1e-5)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, numeric.Clamp(-1.0, 0.0, 1.0))
	assert.Equal(t, 1.0, numeric.Clamp(2.0, 0.0, 1.0))
	assert.Equal(t, 0.5, numeric.Clamp(0.5, 0.0, 1.0))
}

func TestMaxFinite(t *testing.T) {
	assert.False(t, numeric.IsNaN(numeric.MaxFinite[float64]()))
	assert.False(t, numeric.IsNaN(numeric.MaxFinite[float32]()))
	assert.Greater(t, numeric.MaxFinite[float64](), 0.0)
}

func TestInf(t *testing.T) {
	assert.True(t, numeric.Inf[float64](1) > numeric.MaxFinite[float64]())
	assert.True(t, numeric.Inf[float64](-1) < -numeric.MaxFinite[float64]())
}

func TestMinMaxAbs(t *testing.T) {
	assert.Equal(t, 2.0, numeric.Min(2.0, 5.0))
	assert.Equal(t, 5.0, numeric.Max(2.0, 5.0))
	assert.Equal(t, 3.0, numeric.Abs(-3.0))
}
