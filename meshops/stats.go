package meshops

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// Stats collects the scalar diagnostics worth reporting alongside an
// extracted mesh: total surface area, enclosed volume (valid
// only for a closed, consistently-wound mesh), vertex centroid and basic
// counts.
type Stats struct {
	SurfaceArea   float64
	Volume        float64
	Centroid      [3]float64
	VertexCount   int
	TriangleCount int
}

func toR3[T numeric.Scalar](v geom.Vec3[T]) r3.Vec {
	return r3.Vec{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

// ComputeStats derives Stats from mesh. SurfaceArea is the sum of
// triangle areas (via r3.Cross's magnitude). Volume applies the
// divergence-theorem identity V = (1/6) sum_i p0_i . (p1_i x p2_i) over
// every triangle, which is exact for a closed, consistently oriented
// surface and otherwise reports the signed volume of whatever the mesh
// bounds relative to the origin. Centroid is the unweighted mean of
// vertex positions (gonum/stat.Mean over each axis).
func ComputeStats[T numeric.Scalar](mesh *geom.Mesh[T]) Stats {
	n := mesh.TriangleCount()
	triAreas := make([]float64, n)
	triVolumes := make([]float64, n)
	for i := 0; i < n; i++ {
		tri := mesh.TriangleAt(i)
		a, b, c := toR3(tri.A), toR3(tri.B), toR3(tri.C)

		cross := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
		triAreas[i] = 0.5 * r3.Norm(cross)
		triVolumes[i] = r3.Dot(a, r3.Cross(b, c))
	}
	area := floats.Sum(triAreas)
	volume := floats.Sum(triVolumes) / 6

	verts := mesh.Vertices()
	xs := make([]float64, len(verts))
	ys := make([]float64, len(verts))
	zs := make([]float64, len(verts))
	for i, v := range verts {
		xs[i] = float64(v.X)
		ys[i] = float64(v.Y)
		zs[i] = float64(v.Z)
	}

	var centroid [3]float64
	if len(verts) > 0 {
		centroid = [3]float64{
			stat.Mean(xs, nil),
			stat.Mean(ys, nil),
			stat.Mean(zs, nil),
		}
	}

	return Stats{
		SurfaceArea:   area,
		Volume:        volume,
		Centroid:      centroid,
		VertexCount:   len(verts),
		TriangleCount: mesh.TriangleCount(),
	}
}
