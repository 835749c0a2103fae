package marchingcubes_test

import (
	"context"
	"fmt"

	"github.com/voxelfield/isomesh/field"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/marchingcubes"
)

// ExampleExtractor_ExtractDense polygonizes a single cell with one corner
// cleanly below the iso-value, the minimal case that produces one
// triangle.
func ExampleExtractor_ExtractDense() {
	d, err := field.Build(context.Background(), geom.Vec3[float64]{}, 1.0, 2, 2, 2, func(p geom.Vec3[float64]) float64 {
		if p.X == 0 && p.Y == 0 && p.Z == 0 {
			return -1
		}
		return 1
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	e := marchingcubes.New[float64]()
	m, err := e.ExtractDense(context.Background(), d, 0)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(m.TriangleCount())
	fmt.Println(m.VertexCount())
	// Output:
	// 1
	// 3
}
