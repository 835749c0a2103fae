// Package field implements the dense scalar field: a flat 3D array over
// a regular grid, used directly for small models and as the per-leaf
// storage layout inside the sparse field hierarchy.
//
// Construction fans out across z-slabs with golang.org/x/sync/errgroup,
// the same cancellable first-error-propagating pattern used throughout
// isomesh's parallel paths (see sampler and marchingcubes); each slab
// writes to its own contiguous segment of the buffer so no synchronization
// is needed beyond the fan-in errgroup.Wait.
package field
