// Package bvh implements the meshed-SDF acceleration structure: an
// axis-aligned bounding-volume tree over a mesh's triangles, supporting
// fast signed-distance queries via recursive best-first descent and
// Baerentzen/Aanaes angle-weighted pseudo-normals for sign determination.
//
// The tree is built top-down (split at the box center into up to eight
// children, stop at a leaf triangle-count threshold or a depth cap).
// Each node's bounding box is represented as an rtreego.Rect, validated
// at construction by rtreego.NewRect, with the box-to-point lower bound
// computed over its PointCoord/LengthsCoord accessors. The best-first
// priority search is a container/heap min-heap: nodes are popped in
// increasing lower-bound order and the search stops as soon as the best
// confirmed leaf distance is no larger than the next node's lower bound.
package bvh
