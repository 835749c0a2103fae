package bvh

import (
	"container/heap"
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// pqItem is one entry in the best-first search frontier: either an
// unexpanded tree node (n != nil) with its box-to-point lower bound as
// priority, or a confirmed candidate triangle with its exact distance.
type pqItem[T numeric.Scalar] struct {
	n        *node[T]
	triIdx   int // valid when n == nil
	priority float64
}

// priorityQueue is a container/heap min-heap over pqItem.priority, so the
// search always expands the candidate with the smallest lower bound next.
type priorityQueue[T numeric.Scalar] []*pqItem[T]

func (pq priorityQueue[T]) Len() int { return len(pq) }

func (pq priorityQueue[T]) Less(i, j int) bool { return pq[i].priority < pq[j].priority }

func (pq priorityQueue[T]) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *priorityQueue[T]) Push(x interface{}) { *pq = append(*pq, x.(*pqItem[T])) }

func (pq *priorityQueue[T]) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// SignedDistance returns the smallest-magnitude signed distance from p to
// the mesh, using recursive best-first descent (box-to-point distance as
// the lower bound) and the angle-weighted pseudo-normal for the sign.
// For non-manifold or self-intersecting meshes the sign is a best
// effort, not a proof.
func (t *Tree[T]) SignedDistance(p geom.Vec3[T]) T {
	pt := toPoint(p)

	pq := &priorityQueue[T]{}
	heap.Init(pq)
	heap.Push(pq, &pqItem[T]{n: t.root, priority: rectMinDist(t.root.rect, pt)})

	bestDist := numeric.MaxFinite[T]()
	bestSign := T(1)
	found := false

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*pqItem[T])
		if found && T(item.priority) >= bestDist {
			break // every remaining candidate is farther than the best found
		}

		if item.n != nil {
			if item.n.isLeaf() {
				for _, idx := range item.n.triIdx {
					heap.Push(pq, &pqItem[T]{triIdx: idx, priority: triangleLowerBound(t.mesh.TriangleAt(idx), p)})
				}
				continue
			}
			for _, child := range item.n.children {
				if child == nil {
					continue
				}
				heap.Push(pq, &pqItem[T]{n: child, priority: rectMinDist(child.rect, pt)})
			}
			continue
		}

		// Confirmed triangle candidate: compute the exact closest point
		// and, if it improves on the best so far, its sign.
		tri := t.mesh.TriangleAt(item.triIdx)
		closest := tri.ClosestPoint(p)
		dist := p.Distance(closest)
		if !found || dist < bestDist {
			bestDist = dist
			bestSign = t.sign(item.triIdx, tri, closest, p)
			found = true
		}
	}

	if !found {
		return numeric.MaxFinite[T]()
	}
	return bestDist * bestSign
}

// triangleLowerBound is a cheap lower bound used before ClosestPoint is
// computed exactly: the distance from p to the triangle's own bounding
// box, which never exceeds the true point-to-triangle distance.
func triangleLowerBound[T numeric.Scalar](tri geom.Triangle[T], p geom.Vec3[T]) float64 {
	rect, err := toRect[T](tri.Bounds())
	if err != nil {
		return 0
	}
	return rectMinDist(rect, toPoint(p))
}

// rectMinDist is the Euclidean distance from p to the closest point of r,
// read through rtreego.Rect's PointCoord/LengthsCoord accessors. Zero when
// p lies inside r.
func rectMinDist(r rtreego.Rect, p rtreego.Point) float64 {
	sum := 0.0
	for i := range p {
		lo := r.PointCoord(i)
		hi := lo + r.LengthsCoord(i)
		switch {
		case p[i] < lo:
			d := lo - p[i]
			sum += d * d
		case p[i] > hi:
			d := p[i] - hi
			sum += d * d
		}
	}
	return math.Sqrt(sum)
}

func toPoint[T numeric.Scalar](p geom.Vec3[T]) rtreego.Point {
	return rtreego.Point{float64(p.X), float64(p.Y), float64(p.Z)}
}

// sign determines the sign of the distance from p to closest on
// triangle triIdx by dotting (p - closest) against the pseudo-normal of
// whichever feature (vertex, edge, or face) closest lies on.
func (t *Tree[T]) sign(triIdx int, tri geom.Triangle[T], closest, p geom.Vec3[T]) T {
	normal := t.featureNormal(triIdx, tri, closest)
	if p.Sub(closest).Dot(normal) < 0 {
		return -1
	}
	return 1
}

// barycentricEps classifies a closest point as lying on a vertex or edge
// feature when its corresponding barycentric weight is within this
// tolerance of 0.
const barycentricEps = 1e-6

func (t *Tree[T]) featureNormal(triIdx int, tri geom.Triangle[T], closest geom.Vec3[T]) geom.Vec3[T] {
	u, v, w := barycentric(tri, closest)
	tris := t.mesh.Triangles()
	a, b, c := tris[3*triIdx], tris[3*triIdx+1], tris[3*triIdx+2]

	switch {
	case v <= barycentricEps && w <= barycentricEps:
		return t.vertexNormal[a]
	case u <= barycentricEps && w <= barycentricEps:
		return t.vertexNormal[b]
	case u <= barycentricEps && v <= barycentricEps:
		return t.vertexNormal[c]
	case w <= barycentricEps:
		return t.edgeNormal[newEdgeKey(a, b)]
	case u <= barycentricEps:
		return t.edgeNormal[newEdgeKey(b, c)]
	case v <= barycentricEps:
		return t.edgeNormal[newEdgeKey(c, a)]
	default:
		return t.faceNormal[triIdx]
	}
}

// barycentric returns (u,v,w) such that closest = u*A + v*B + w*C and
// u+v+w = 1, for a point already known to lie on the triangle's plane
// (e.g. the output of Triangle.ClosestPoint).
func barycentric[T numeric.Scalar](tri geom.Triangle[T], p geom.Vec3[T]) (u, v, w T) {
	v0 := tri.B.Sub(tri.A)
	v1 := tri.C.Sub(tri.A)
	v2 := p.Sub(tri.A)

	d00 := v0.Dot(v0)
	d01 := v0.Dot(v1)
	d11 := v1.Dot(v1)
	d20 := v2.Dot(v0)
	d21 := v2.Dot(v1)

	denom := d00*d11 - d01*d01
	if denom == 0 {
		return 1, 0, 0
	}
	vv := (d11*d20 - d01*d21) / denom
	ww := (d00*d21 - d01*d20) / denom
	uu := 1 - vv - ww
	return uu, vv, ww
}
