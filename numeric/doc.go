// Package numeric provides the generic scalar-math dispatch the rest of
// isomesh is built on.
//
// The engine is generic over a scalar type T (float32 or float64).
// Go's math package only operates on float64,
// so the transcendental and classification helpers here (Sqrt, Sin, Cos,
// Acos, Inf, IsNaN, MaxFinite) switch on the concrete instantiation of T
// at call time, while Abs, Min, Max and Clamp are plain comparisons:
// float64 uses the standard math package,
// float32 uses github.com/chewxy/math32 (a drop-in float32 mirror of math),
// avoiding the precision loss and extra conversions of always widening to
// float64 and back.
package numeric

import "golang.org/x/exp/constraints"

// Scalar is the type constraint for every generic numeric type in isomesh.
type Scalar interface {
	constraints.Float
}
