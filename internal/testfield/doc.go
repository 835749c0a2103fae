// Package testfield provides the minimal Function/Operation components
// used to drive isomesh's end-to-end tests: a sphere distance-like field,
// a gyroid, and the two-input scalar Operations (Max for Boolean
// intersection, Sum for constant arithmetic) needed to wire them into a
// model. It is internal because the concrete primitive library is client
// code, not part of the core; these exist solely so isomesh's own tests
// can exercise the sampler and extractor against real fields without
// depending on a client-supplied primitive package.
package testfield
