package sparse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/sparse"
)

func smallBounds() geom.BoundingBox[float64] {
	return geom.BoundingBox[float64]{
		Min: geom.NewVec3(0.0, 0.0, 0.0),
		Max: geom.NewVec3(8.0, 8.0, 8.0),
	}
}

func TestNewField_RejectsNonPositiveCellSize(t *testing.T) {
	_, err := sparse.NewField(smallBounds(), 0.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	assert.ErrorIs(t, err, ierrors.ErrInvalidCellSize)
}

func TestNewField_RejectsNonPowerOfTwoBlockSizes(t *testing.T) {
	_, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 5, LeafSize: 2})
	assert.ErrorIs(t, err, ierrors.ErrInvalidBlockSize)
}

func TestNewField_RejectsLeafLargerThanInternal(t *testing.T) {
	_, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 2, LeafSize: 4})
	assert.ErrorIs(t, err, ierrors.ErrInvalidBlockSize)
}

func TestNewField_DimsCoverBoundsRoundedUpToWholeBlocks(t *testing.T) {
	// blockCellsPerSide = 4*2 = 8, cellSize 1 -> block extent 8, bounds
	// exactly one block wide on each axis.
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)
	assert.Equal(t, [3]int{1, 1, 1}, f.InternalDims())

	// A field slightly larger than one block must round up to two.
	bigger := geom.BoundingBox[float64]{Min: geom.NewVec3(0.0, 0.0, 0.0), Max: geom.NewVec3(9.0, 8.0, 8.0)}
	f2, err := sparse.NewField(bigger, 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)
	assert.Equal(t, [3]int{2, 1, 1}, f2.InternalDims())
}

func TestMarkInternalEmpty_SampleAtReturnsSentinel(t *testing.T) {
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)

	f.MarkInternalEmpty(0, 0, 0)
	assert.True(t, f.InternalEmpty(0, 0, 0))
	assert.Equal(t, f.Sentinel(), f.SampleAt(0, 0, 0))
}

func TestPrepareLeavesAllocateLeaf_RoundTripsThroughSampleAt(t *testing.T) {
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)

	f.PrepareLeaves(0, 0, 0)
	assert.False(t, f.InternalEmpty(0, 0, 0))
	assert.Nil(t, f.LeafAt(0, 0, 0, 1, 1, 1))

	buf := f.AllocateLeaf(0, 0, 0, 1, 1, 1)
	require.Len(t, buf, 3*3*3) // (LeafSize+1)^3
	for i := range buf {
		buf[i] = float64(i)
	}

	assert.Equal(t, 1, f.ActiveLeafCount())
	assert.NotNil(t, f.LeafAt(0, 0, 0, 1, 1, 1))

	// Leaf (1,1,1) within block (0,0,0) occupies global corners
	// [LeafSize*1, LeafSize*1+LeafSize] = [2,4] on each axis.
	assert.Equal(t, 0.0, f.SampleAt(2, 2, 2))
	assert.Equal(t, buf[3*3*3-1], f.SampleAt(4, 4, 4))
}

func TestSampleAt_AbsentLeafReturnsSentinel(t *testing.T) {
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)

	f.PrepareLeaves(0, 0, 0)
	assert.Equal(t, f.Sentinel(), f.SampleAt(0, 0, 0))
}

func TestWalk_OnlyVisitsCellsOfAllocatedLeaves(t *testing.T) {
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)

	f.PrepareLeaves(0, 0, 0)
	buf := f.AllocateLeaf(0, 0, 0, 0, 0, 0)
	for i := range buf {
		buf[i] = 1.0
	}

	var cells []sparse.ActiveCell[float64]
	f.Walk(func(c sparse.ActiveCell[float64]) bool {
		cells = append(cells, c)
		return true
	})

	// Only one leaf was allocated, covering LeafSize^3 = 8 cells; no other
	// leaf in the block (or any other block) contributes cells.
	assert.Len(t, cells, 8)
	for _, c := range cells {
		assert.Less(t, c.I, 2)
		assert.Less(t, c.J, 2)
		assert.Less(t, c.K, 2)
		for _, v := range c.Values {
			assert.Equal(t, 1.0, v)
		}
	}
}

func TestWalk_StopsEarlyWhenVisitReturnsFalse(t *testing.T) {
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)

	f.PrepareLeaves(0, 0, 0)
	f.AllocateLeaf(0, 0, 0, 0, 0, 0)
	f.AllocateLeaf(0, 0, 0, 1, 0, 0)

	count := 0
	f.Walk(func(sparse.ActiveCell[float64]) bool {
		count++
		return false
	})
	assert.Equal(t, 1, count)
}

func TestInternalBoundsLeafBounds_MatchBlockGeometry(t *testing.T) {
	f, err := sparse.NewField(smallBounds(), 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	require.NoError(t, err)

	ib := f.InternalBounds(0, 0, 0)
	assert.Equal(t, geom.NewVec3(0.0, 0.0, 0.0), ib.Min)
	assert.Equal(t, geom.NewVec3(8.0, 8.0, 8.0), ib.Max)

	lb := f.LeafBounds(0, 0, 0, 1, 0, 0)
	assert.Equal(t, geom.NewVec3(2.0, 0.0, 0.0), lb.Min)
	assert.Equal(t, geom.NewVec3(4.0, 2.0, 2.0), lb.Max)

	assert.Equal(t, 4, f.LeavesPerSide())
}
