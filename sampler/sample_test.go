package sampler_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/internal/testfield"
	"github.com/voxelfield/isomesh/model"
	"github.com/voxelfield/isomesh/sampler"
)

func sphereModel(t *testing.T, center geom.Vec3[float64], radius float64) *model.Model[float64] {
	t.Helper()
	m := model.New[float64]()
	_, err := m.AddFunction("sphere", &testfield.Sphere[float64]{Center: center, Radius: radius})
	require.NoError(t, err)
	return m
}

func TestSampleField_RejectsInvalidConfig(t *testing.T) {
	m := sphereModel(t, geom.NewVec3(5.0, 5.0, 5.0), 4.0)
	cfg := sampler.Config[float64]{
		Bounds:       geom.BoundingBox[float64]{Max: geom.NewVec3(10.0, 10.0, 10.0)},
		CellSize:     0,
		InternalSize: 4,
		LeafSize:     2,
	}
	s := sampler.New(sampler.WithConfig(cfg))

	_, err := s.SampleField(context.Background(), m, "sphere")
	assert.ErrorIs(t, err, ierrors.ErrInvalidCellSize)
}

// TestSampleField_PrunesEmptyRegion checks that a small sphere in a
// large, mostly-empty domain leaves the active leaf count far below the
// dense equivalent.
func TestSampleField_PrunesEmptyRegion(t *testing.T) {
	m := sphereModel(t, geom.Vec3[float64]{}, 1.0)
	cfg := sampler.Config[float64]{
		Bounds: geom.BoundingBox[float64]{
			Min: geom.NewVec3(-10.0, -10.0, -10.0),
			Max: geom.NewVec3(10.0, 10.0, 10.0),
		},
		CellSize:     0.1,
		InternalSize: 64,
		LeafSize:     4,
	}
	s := sampler.New(sampler.WithConfig(cfg))

	field, err := s.SampleField(context.Background(), m, "sphere")
	require.NoError(t, err)

	assert.Greater(t, field.ActiveLeafCount(), 0)
	assert.LessOrEqual(t, field.ActiveLeafCount(), 5000)
}

// TestSampleField_ThreadCountIndependence checks that a worker-limit of
// 1 produces exactly the same active leaves and sample values as the
// default worker budget.
func TestSampleField_ThreadCountIndependence(t *testing.T) {
	cfg := sampler.Config[float64]{
		Bounds:       geom.BoundingBox[float64]{Max: geom.NewVec3(4.0, 4.0, 4.0)},
		CellSize:     1.0,
		InternalSize: 2,
		LeafSize:     2,
	}

	mDefault := sphereModel(t, geom.NewVec3(2.0, 2.0, 2.0), 1.5)
	mSerial := sphereModel(t, geom.NewVec3(2.0, 2.0, 2.0), 1.5)

	def := sampler.New(sampler.WithConfig(cfg))
	serial := sampler.New(sampler.WithConfig(cfg), sampler.WithWorkerLimit[float64](1))

	fieldDefault, err := def.SampleField(context.Background(), mDefault, "sphere")
	require.NoError(t, err)
	fieldSerial, err := serial.SampleField(context.Background(), mSerial, "sphere")
	require.NoError(t, err)

	require.Equal(t, fieldDefault.ActiveLeafCount(), fieldSerial.ActiveLeafCount())

	dims := fieldDefault.InternalDims()
	total := dims[0] * cfg.InternalSize * cfg.LeafSize
	for k := 0; k <= total; k++ {
		for j := 0; j <= total; j++ {
			for i := 0; i <= total; i++ {
				assert.Equal(t, fieldDefault.SampleAt(i, j, k), fieldSerial.SampleAt(i, j, k))
			}
		}
	}
}

func TestSampleField_CancelledContextReturnsPromptly(t *testing.T) {
	m := sphereModel(t, geom.NewVec3(5.0, 5.0, 5.0), 4.0)
	cfg := sampler.Config[float64]{
		Bounds:       geom.BoundingBox[float64]{Max: geom.NewVec3(10.0, 10.0, 10.0)},
		CellSize:     0.5,
		InternalSize: 8,
		LeafSize:     4,
	}
	s := sampler.New(sampler.WithConfig(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	field, err := s.SampleField(ctx, m, "sphere")
	assert.ErrorIs(t, err, ierrors.ErrCancelled)
	assert.Nil(t, field)
}

// sphereConfig is the sphere-only grid, reused by the sphere and
// sphere-intersect-gyroid end-to-end tests.
func sphereConfig() sampler.Config[float64] {
	return sampler.Config[float64]{
		Bounds:       geom.BoundingBox[float64]{Max: geom.NewVec3(10.0, 10.0, 10.0)},
		CellSize:     0.5,
		InternalSize: 8,
		LeafSize:     4,
	}
}

func TestSampler_IsoSurface_SphereOnly(t *testing.T) {
	center := geom.NewVec3(5.0, 5.0, 5.0)
	const radius = 4.0
	m := sphereModel(t, center, radius)

	s := sampler.New(sampler.WithConfig(sphereConfig()))
	mesh, err := s.IsoSurface(context.Background(), m, "sphere", 0)
	require.NoError(t, err)

	assert.InDelta(t, 1500, mesh.VertexCount(), 150)

	tol := sphereConfig().CellSize * math.Sqrt(3) * 1.5
	for _, v := range mesh.Vertices() {
		assert.InDelta(t, radius, v.Distance(center), tol)
	}
}

// TestSampler_IsoSurface_SphereIntersectGyroid checks that the Boolean
// intersection (max of two fields) of a sphere and a gyroid produces a
// mesh with no open boundary (every edge shared by exactly two
// triangles).
func TestSampler_IsoSurface_SphereIntersectGyroid(t *testing.T) {
	center := geom.NewVec3(5.0, 5.0, 5.0)
	m := model.New[float64]()
	_, err := m.AddFunction("sphere", &testfield.Sphere[float64]{Center: center, Radius: 4.0})
	require.NoError(t, err)
	_, err = m.AddFunction("gyroid", &testfield.Gyroid[float64]{Omega: 2 * math.Pi / 2.5})
	require.NoError(t, err)
	_, err = m.AddOperationWithInputs("intersect", testfield.Max[float64]{}, []string{"sphere", "gyroid"})
	require.NoError(t, err)

	s := sampler.New(sampler.WithConfig(sphereConfig()))
	mesh, err := s.IsoSurface(context.Background(), m, "intersect", 0)
	require.NoError(t, err)
	require.Greater(t, mesh.TriangleCount(), 0)

	assertWatertight(t, mesh)
}

// assertWatertight checks that every undirected edge of mesh is shared by
// exactly two triangles, the manifold/closed-surface property marching
// cubes guarantees on a single, fully-sampled grid.
func assertWatertight(t *testing.T, mesh *geom.Mesh[float64]) {
	t.Helper()
	type edgeKey [2]int
	counts := make(map[edgeKey]int)
	edge := func(a, b int) edgeKey {
		if a > b {
			a, b = b, a
		}
		return edgeKey{a, b}
	}

	tris := mesh.Triangles()
	for i := 0; i < len(tris); i += 3 {
		a, b, c := tris[i], tris[i+1], tris[i+2]
		counts[edge(a, b)]++
		counts[edge(b, c)]++
		counts[edge(c, a)]++
	}

	for k, n := range counts {
		assert.Equal(t, 2, n, "edge %v shared by %d triangles, want 2", k, n)
	}
}
