// Package sparse implements the two-level sparse scalar field: a dense
// array of internal-block descriptors, each optionally owning a dense
// array of leaf-block descriptors, each optionally owning a contiguous
// buffer of (L+1)^3 corner samples. Leaves absent from a block are known
// to lie entirely on one side of the iso-value; queries against them
// return a "far outside" sentinel (numeric.MaxFinite) rather than
// re-evaluating the model.
//
// Ownership runs strictly downward (internal owns leaves, leaves own
// samples, no cross-references), so absent entries hold nil and nothing
// ever dereferences a back-pointer.
package sparse
