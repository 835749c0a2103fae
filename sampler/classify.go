package sampler

import (
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// cornersAndCenter returns the fixed corners+center sample scheme every
// prune test evaluates.
func cornersAndCenter[T numeric.Scalar](bounds geom.BoundingBox[T]) []geom.Vec3[T] {
	corners := bounds.Corners()
	pts := make([]geom.Vec3[T], 0, 9)
	pts = append(pts, corners[:]...)
	pts = append(pts, bounds.Center())
	return pts
}

// pilotPoints returns count extra stratified interior samples within
// bounds, spaced on a regular sub-grid strictly inside the box so they
// never coincide with a corner. The layout is a pure function of count
// and bounds, independent of evaluation order or thread count.
func pilotPoints[T numeric.Scalar](bounds geom.BoundingBox[T], count int) []geom.Vec3[T] {
	if count <= 0 {
		return nil
	}
	n := 1
	for n*n*n < count {
		n++
	}
	size := bounds.Size()
	pts := make([]geom.Vec3[T], 0, count)
	for k := 0; k < n && len(pts) < count; k++ {
		fz := (T(k) + 1) / T(n+1)
		for j := 0; j < n && len(pts) < count; j++ {
			fy := (T(j) + 1) / T(n+1)
			for i := 0; i < n && len(pts) < count; i++ {
				fx := (T(i) + 1) / T(n+1)
				pts = append(pts, geom.Vec3[T]{
					X: bounds.Min.X + fx*size.X,
					Y: bounds.Min.Y + fy*size.Y,
					Z: bounds.Min.Z + fz*size.Z,
				})
			}
		}
	}
	return pts
}

// isActive is the prune test: a block/leaf may contain the iso-surface
// unless every sample shares a strict sign and the smallest magnitude
// exceeds threshold.
func isActive[T numeric.Scalar](samples []T, threshold T) bool {
	if !allSameSign(samples) {
		return true
	}
	return minAbs(samples) <= threshold
}

func allSameSign[T numeric.Scalar](vals []T) bool {
	var pos, neg bool
	for _, v := range vals {
		switch {
		case v > 0:
			pos = true
		case v < 0:
			neg = true
		default:
			return false // exactly on the iso-value: treat as a sign change
		}
		if pos && neg {
			return false
		}
	}
	return true
}

func minAbs[T numeric.Scalar](vals []T) T {
	m := numeric.Abs(vals[0])
	for _, v := range vals[1:] {
		if a := numeric.Abs(v); a < m {
			m = a
		}
	}
	return m
}
