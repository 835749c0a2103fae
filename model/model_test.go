package model_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/internal/testfield"
	"github.com/voxelfield/isomesh/model"
)

func TestAddConstant_DuplicateName(t *testing.T) {
	m := model.New[float64]()
	_, err := m.AddConstant("a", 1)
	require.NoError(t, err)

	_, err = m.AddConstant("a", 2)
	assert.ErrorIs(t, err, ierrors.ErrDuplicateName)
}

func TestWire_RejectsDirectCycle(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddConstant("a", 1)
	_, _ = m.AddOperation("sum", testfield.Sum[float64]{})

	require.NoError(t, m.Wire("a", "sum", 0))
	err := m.Wire("sum", "sum", 1)
	assert.ErrorIs(t, err, ierrors.ErrWouldCreateCycle)
}

// TestWire_RejectsIndirectCycle exercises the BFS reachability check over
// more than one hop, the path the frontier-reuse fix protects.
func TestWire_RejectsIndirectCycle(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddOperation("a", testfield.Sum[float64]{})
	_, _ = m.AddOperation("b", testfield.Sum[float64]{})
	_, _ = m.AddOperation("c", testfield.Sum[float64]{})
	_, _ = m.AddConstant("k", 1)

	require.NoError(t, m.Wire("k", "a", 0))
	require.NoError(t, m.Wire("k", "a", 1))
	require.NoError(t, m.Wire("a", "b", 0))
	require.NoError(t, m.Wire("k", "b", 1))
	require.NoError(t, m.Wire("b", "c", 0))
	require.NoError(t, m.Wire("k", "c", 1))

	// c -> a would close the cycle a -> b -> c -> a.
	err := m.Wire("c", "a", 1)
	assert.ErrorIs(t, err, ierrors.ErrWouldCreateCycle)
}

// TestWire_WideFanoutDoesNotCorruptReachability builds many sibling
// branches off a shared root so reachableLocked's BFS frontier grows and
// shrinks across several levels in one call, the exact shape that an
// aliased frontier slice could silently corrupt.
func TestWire_WideFanoutDoesNotCorruptReachability(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddConstant("root", 1)

	const width = 12
	leaves := make([]string, width)
	for i := 0; i < width; i++ {
		name := "leaf" + string(rune('a'+i))
		_, _ = m.AddOperation(name, testfield.Sum[float64]{})
		require.NoError(t, m.Wire("root", name, 0))
		require.NoError(t, m.Wire("root", name, 1))
		leaves[i] = name
	}

	_, _ = m.AddOperation("sink", testfield.Sum[float64]{})
	require.NoError(t, m.Wire(leaves[0], "sink", 0))
	require.NoError(t, m.Wire(leaves[1], "sink", 1))

	// sink is reachable from root through leaf0/leaf1; wiring sink->root
	// must be rejected as a cycle even though most of root's fanout is
	// irrelevant to the actual cycle path.
	err := m.Wire("sink", "root", 0)
	assert.ErrorIs(t, err, ierrors.ErrWouldCreateCycle)
}

func TestWire_UnknownProducerOrConsumer(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddConstant("a", 1)

	assert.ErrorIs(t, m.Wire("nope", "a", 0), ierrors.ErrUnknownProducer)
	assert.ErrorIs(t, m.Wire("a", "nope", 0), ierrors.ErrUnknownComponent)
}

func TestAddOperationWithInputs_RollsBackOnFailure(t *testing.T) {
	m := model.New[float64]()

	_, err := m.AddOperationWithInputs("sum", testfield.Sum[float64]{}, []string{"missing", "also-missing"})
	assert.ErrorIs(t, err, ierrors.ErrUnknownProducer)
	assert.False(t, m.HasComponent("sum"))
}

func TestEvaluateAt_Sphere(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddFunction("sphere", &testfield.Sphere[float64]{Radius: 1})

	v, err := m.EvaluateAt("sphere", 2, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-9)
}

func TestEvaluateAt_UnboundSlot(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddOperation("sum", testfield.Sum[float64]{})
	_, _ = m.AddConstant("a", 1)
	require.NoError(t, m.Wire("a", "sum", 0))

	_, err := m.EvaluateAt("sum", 0, 0, 0)
	assert.ErrorIs(t, err, ierrors.ErrEvaluationFailed)
	assert.ErrorIs(t, err, ierrors.ErrUnboundSlot)
}

func TestEvaluateAt_ConstantSumIsExact(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddConstant("a", 1.0)
	_, _ = m.AddConstant("b", 1.0)
	_, _ = m.AddOperationWithInputs("sum", testfield.Sum[float64]{}, []string{"a", "b"})

	v, err := m.EvaluateAt("sum", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, v)
}

func TestEvaluateBatchAt_MatchesEvaluateAt(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddConstant("a", 2)
	_, _ = m.AddConstant("b", 3)
	_, _ = m.AddOperationWithInputs("sum", testfield.Sum[float64]{}, []string{"a", "b"})

	single, err := m.EvaluateAt("sum", 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 5.0, single)

	batch, err := m.EvaluateBatchAt("sum", []geom.Vec3[float64]{
		geom.NewVec3(0.0, 0.0, 0.0),
		geom.NewVec3(1.0, 1.0, 1.0),
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{5.0, 5.0}, batch)
}

func TestClone_IsIndependent(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddConstant("a", 1)
	_, _ = m.AddConstant("b", 2)
	_, _ = m.AddOperationWithInputs("sum", testfield.Sum[float64]{}, []string{"a", "b"})

	clone := m.Clone()
	require.NoError(t, clone.Remove("b"))

	assert.True(t, m.HasComponent("b"))
	assert.False(t, clone.HasComponent("b"))
}

// TestEvaluateAt_ConcurrentReadersAreSafe exercises the model under
// concurrent read-only evaluation.
func TestEvaluateAt_ConcurrentReadersAreSafe(t *testing.T) {
	m := model.New[float64]()
	_, _ = m.AddFunction("sphere", &testfield.Sphere[float64]{Radius: 1})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := m.EvaluateAt("sphere", float64(n), 0, 0)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
}
