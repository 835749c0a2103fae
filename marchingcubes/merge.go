package marchingcubes

import (
	"math"
	"sort"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// quantExponent sets the fraction of cellSize used to key the final
// merge's spatial hash: c*2^-20, fine enough that
// any two slabs' independently-interpolated copies of the same boundary
// vertex collide, without merging genuinely distinct nearby vertices.
const quantExponent = 20

type quantKey [3]int64

func quantize[T numeric.Scalar](p geom.Vec3[T], cellSize T) quantKey {
	scale := float64(cellSize) / float64(int64(1)<<quantExponent)
	return quantKey{
		int64(math.Round(float64(p.X) / scale)),
		int64(math.Round(float64(p.Y) / scale)),
		int64(math.Round(float64(p.Z) / scale)),
	}
}

// mergeSlabs concatenates per-slab meshes and renumbers vertices by a
// deterministic spatial hash, welding the duplicate copies that
// independent slabs created along their shared boundary. The final
// vertex order is fixed by ascending quantized-key traversal, so output
// never depends on goroutine scheduling.
func mergeSlabs[T numeric.Scalar](slabs []*localMesh[T], cellSize T, withNormals bool) (*geom.Mesh[T], error) {
	var allVerts []geom.Vec3[T]
	var allNormals []geom.Vec3[T]
	var allTris []int

	for _, s := range slabs {
		if s == nil {
			continue
		}
		base := len(allVerts)
		allVerts = append(allVerts, s.vertices...)
		if withNormals {
			allNormals = append(allNormals, s.normals...)
		}
		for _, idx := range s.triangles {
			allTris = append(allTris, idx+base)
		}
	}

	type entry struct {
		key  quantKey
		orig int
	}
	entries := make([]entry, len(allVerts))
	for i, v := range allVerts {
		entries[i] = entry{key: quantize(v, cellSize), orig: i}
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].key, entries[j].key
		if a != b {
			return lessKey(a, b)
		}
		return entries[i].orig < entries[j].orig
	})

	remap := make([]int, len(allVerts))
	var canonVerts []geom.Vec3[T]
	var canonNormalSum []geom.Vec3[T]
	var canonNormalCount []int

	var prevKey quantKey
	haveKey := false
	for _, e := range entries {
		if !haveKey || e.key != prevKey {
			canonVerts = append(canonVerts, allVerts[e.orig])
			if withNormals {
				canonNormalSum = append(canonNormalSum, geom.Vec3[T]{})
				canonNormalCount = append(canonNormalCount, 0)
			}
			prevKey = e.key
			haveKey = true
		}
		canonIdx := len(canonVerts) - 1
		remap[e.orig] = canonIdx
		if withNormals {
			canonNormalSum[canonIdx] = canonNormalSum[canonIdx].Add(allNormals[e.orig])
			canonNormalCount[canonIdx]++
		}
	}

	finalTris := make([]int, 0, len(allTris))
	for i := 0; i+2 < len(allTris); i += 3 {
		a, b, c := remap[allTris[i]], remap[allTris[i+1]], remap[allTris[i+2]]
		if a == b || b == c || a == c {
			continue
		}
		finalTris = append(finalTris, a, b, c)
	}

	var finalNormals []geom.Vec3[T]
	if withNormals {
		finalNormals = make([]geom.Vec3[T], len(canonVerts))
		for i, sum := range canonNormalSum {
			avg := sum.Scale(1 / T(canonNormalCount[i]))
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
