package sampler_test

import (
	"context"
	"fmt"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/internal/testfield"
	"github.com/voxelfield/isomesh/model"
	"github.com/voxelfield/isomesh/sampler"
)

// ExampleSampler_IsoSurface samples a sphere model across a sparse
// hierarchy and polygonizes it in one call.
func ExampleSampler_IsoSurface() {
	m := model.New[float64]()
	_, _ = m.AddFunction("sphere", &testfield.Sphere[float64]{Center: geom.NewVec3(5.0, 5.0, 5.0), Radius: 4.0})

	cfg := sampler.Config[float64]{
		Bounds:       geom.BoundingBox[float64]{Max: geom.NewVec3(10.0, 10.0, 10.0)},
		CellSize:     0.5,
		InternalSize: 8,
		LeafSize:     4,
	}
	s := sampler.New(sampler.WithConfig(cfg))

	mesh, err := s.IsoSurface(context.Background(), m, "sphere", 0)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(mesh.VertexCount() > 0)
	fmt.Println(mesh.TriangleCount() > 0)
	// Output:
	// true
	// true
}
