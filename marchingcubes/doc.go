// Package marchingcubes polygonizes a scalar field into a triangle mesh,
// table-driven over the standard 256-case edge table and 16-row triangle
// table (tables.go).
//
// Extraction partitions the grid into z-slabs and fills a thread-local
// mesh buffer per slab via golang.org/x/sync/errgroup, mirroring
// field.Build's per-slab fan-out; within a slab, a local vertex cache
// keyed by (owning cell, owned edge) deduplicates the eight edges that
// stay within one z-layer, while the four edges crossing into the next
// layer are always recomputed and left for the final merge to dedup.
// That merge renumbers every vertex by a deterministic spatial hash
// (merge.go) so welds across slab boundaries, and the final vertex
// ordering, do not depend on goroutine scheduling.
package marchingcubes
