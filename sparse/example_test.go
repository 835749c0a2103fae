package sparse_test

import (
	"fmt"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/sparse"
)

// ExampleNewField allocates a single internal block, fills one leaf, and
// reads a sample back through the sparse hierarchy.
func ExampleNewField() {
	bounds := geom.BoundingBox[float64]{Max: geom.NewVec3(8.0, 8.0, 8.0)}
	f, err := sparse.NewField(bounds, 1.0, sparse.Config{InternalSize: 4, LeafSize: 2})
	if err != nil {
		fmt.Println(err)
		return
	}

	f.PrepareLeaves(0, 0, 0)
	buf := f.AllocateLeaf(0, 0, 0, 0, 0, 0)
	for i := range buf {
		buf[i] = -1.0
	}

	fmt.Println(f.SampleAt(0, 0, 0))
	fmt.Println(f.SampleAt(7, 7, 7) == f.Sentinel())
	// Output:
	// -1
	// true
}
