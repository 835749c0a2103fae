// Package persist implements isomesh's two serialization boundaries: a
// JSON encoding of a model's graph structure, and an OBJ
// encoding/decoding of an extracted geom.Mesh. Both round-trip
// (decode(encode(x)) reproduces x up to floating-point formatting
// precision), built on the same validate-then-construct idiom model.New's
// constructors use rather than a bespoke decoder type.
package persist
