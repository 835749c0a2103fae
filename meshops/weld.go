package meshops

import (
	"math"
	"sort"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// config holds the resolved settings for one Weld call.
type config[T numeric.Scalar] struct {
	tolerance T
}

// WeldOption configures Weld, mirroring the sampler/marchingcubes
// functional-options idiom.
type WeldOption[T numeric.Scalar] func(*config[T])

// WithTolerance overrides Weld's default distance threshold (cellSize *
// 1e-4) with an explicit absolute value. Vertices whose coordinates round
// to the same multiple of tolerance on every axis are merged into one; two
// vertices closer than tolerance that round to different multiples stay
// distinct.
func WithTolerance[T numeric.Scalar](tolerance T) WeldOption[T] {
	return func(c *config[T]) { c.tolerance = tolerance }
}

type quantKey [3]int64

func quantize[T numeric.Scalar](p geom.Vec3[T], tolerance T) quantKey {
	t := float64(tolerance)
	return quantKey{
		int64(math.Round(float64(p.X) / t)),
		int64(math.Round(float64(p.Y) / t)),
		int64(math.Round(float64(p.Z) / t)),
	}
}

// Weld merges vertices of mesh whose coordinates round to the same
// multiple of tolerance on every axis (default cellSize*1e-4, overridable
// via WithTolerance), renumbering triangles accordingly and dropping any
// triangle left degenerate by the merge. Each merged vertex keeps the
// position of its lowest-indexed input vertex. It uses the same
// deterministic sort-by-quantized-key canonicalization marchingcubes'
// cross-slab merge uses, so repeated calls on the same input produce
// bit-identical output.
func Weld[T numeric.Scalar](mesh *geom.Mesh[T], cellSize T, opts ...WeldOption[T]) (*geom.Mesh[T], error) {
	cfg := config[T]{tolerance: cellSize * T(1e-4)}
	for _, opt := range opts {
		opt(&cfg)
	}

	verts := mesh.Vertices()
	normals := mesh.Normals()
	hasNormals := normals != nil

	type entry struct {
		key  quantKey
		orig int
	}
	entries := make([]entry, len(verts))
	for i, v := range verts {
		entries[i] = entry{key: quantize(v, cfg.tolerance), orig: i}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].key, entries[j].key
		if a != b {
			return lessKey(a, b)
		}
		return entries[i].orig < entries[j].orig
	})

	remap := make([]int, len(verts))
	var canonVerts []geom.Vec3[T]
	var normalSum []geom.Vec3[T]
	var normalCount []int

	var prevKey quantKey
	haveKey := false
	for _, e := range entries {
		if !haveKey || e.key != prevKey {
			canonVerts = append(canonVerts, verts[e.orig])
			if hasNormals {
				normalSum = append(normalSum, geom.Vec3[T]{})
				normalCount = append(normalCount, 0)
			}
			prevKey = e.key
			haveKey = true
		}
		canonIdx := len(canonVerts) - 1
		remap[e.orig] = canonIdx
		if hasNormals {
			normalSum[canonIdx] = normalSum[canonIdx].Add(normals[e.orig])
			normalCount[canonIdx]++
		}
	}

	tris := mesh.Triangles()
	finalTris := make([]int, 0, len(tris))
	for i := 0; i < len(tris); i += 3 {
		a, b, c := remap[tris[i]], remap[tris[i+1]], remap[tris[i+2]]
		if a == b || b == c || a == c {
			continue
		}
		finalTris = append(finalTris, a, b, c)
	}

	var finalNormals []geom.Vec3[T]
	if hasNormals {
		finalNormals = make([]geom.Vec3[T], len(canonVerts))
		for i, sum := range normalSum {
			avg := sum.Scale(1 / T(normalCount[i]))
			n, err := avg.Normalize()
			if err != nil {
				n = geom.Vec3[T]{}
			}
			finalNormals[i] = n
		}
	}

	return geom.NewMesh(canonVerts, finalNormals, finalTris)
}

func lessKey(a, b quantKey) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	if a[1] != b[1] {
		return a[1] < b[1]
	}
	return a[2] < b[2]
}
