// Package meshops provides standalone post-processing operations over an
// already-extracted geom.Mesh: vertex welding, smooth-normal computation,
// consistent winding orientation and surface diagnostics. Each function
// is pure: it takes a Mesh and returns a new one (or a derived value),
// never mutating its input, matching geom.Mesh's
// immutable-after-construction contract.
package meshops
