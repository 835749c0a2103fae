package numeric

import (
	"math"

	"github.com/chewxy/math32"
)

// Sqrt returns the square root of x, dispatching to math32.Sqrt for
// float32 instantiations and math.Sqrt otherwise.
func Sqrt[T Scalar](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Sqrt(v))
	default:
		return T(math.Sqrt(float64(x)))
	}
}

// Sin returns the sine of x in radians.
func Sin[T Scalar](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Sin(v))
	default:
		return T(math.Sin(float64(x)))
	}
}

// Cos returns the cosine of x in radians.
func Cos[T Scalar](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Cos(v))
	default:
		return T(math.Cos(float64(x)))
	}
}

// Acos returns the arccosine, in radians, of x.
func Acos[T Scalar](x T) T {
	switch v := any(x).(type) {
	case float32:
		return T(math32.Acos(v))
	default:
		return T(math.Acos(float64(x)))
	}
}

// Abs returns the absolute value of x.
func Abs[T Scalar](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// Max returns the larger of a and b.
func Max[T Scalar](a, b T) T {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min[T Scalar](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Clamp restricts x to the closed interval [lo, hi]. If lo > hi the
// behavior is undefined by contract (callers must not rely on it); in
// practice it returns lo when x < lo and hi otherwise.
func Clamp[T Scalar](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Inf returns positive (sign >= 0) or negative infinity for T.
func Inf[T Scalar](sign int) T {
	switch any(T(0)).(type) {
	case float32:
		return T(math32.Inf(sign))
	default:
		return T(math.Inf(sign))
	}
}

// IsNaN reports whether x is an IEEE 754 "not-a-number" value.
func IsNaN[T Scalar](x T) bool {
	switch v := any(x).(type) {
	case float32:
		return math32.IsNaN(v)
	default:
		return math.IsNaN(float64(x))
	}
}

// MaxFinite returns an upper bound used as the sparse field's "far
// outside" sentinel: a large but finite value, clamped
// below T's true maximum so arithmetic on it (e.g. negation, small
// offsets) never overflows to +-Inf.
func MaxFinite[T Scalar]() T {
	switch any(T(0)).(type) {
	case float32:
		return T(math32.MaxFloat32 / 4)
	default:
		v := math.MaxFloat64 / 4
		return T(v)
	}
}
