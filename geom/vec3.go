// Package geom provides the pure value types isomesh is built on: Vec3,
// BoundingBox, Plane, Line, Triangle and Mesh. All types are generic over
// numeric.Scalar so the same code instantiates for float32 or float64.
package geom

import (
	"fmt"

	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// Vec3 is a three-component vector or point.
type Vec3[T numeric.Scalar] struct {
	X, Y, Z T
}

// NewVec3 constructs a Vec3 from three components.
func NewVec3[T numeric.Scalar](x, y, z T) Vec3[T] {
	return Vec3[T]{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3[T]) Add(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3[T]) Sub(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v scaled component-wise by s.
func (v Vec3[T]) Scale(s T) Vec3[T] {
	return Vec3[T]{v.X * s, v.Y * s, v.Z * s}
}

// Mul returns the component-wise (Hadamard) product of v and o.
func (v Vec3[T]) Mul(o Vec3[T]) Vec3[T] {
	return Vec3[T]{v.X * o.X, v.Y * o.Y, v.Z * o.Z}
}

// Dot returns the scalar dot product v . o.
func (v Vec3[T]) Dot(o Vec3[T]) T {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v x o.
func (v Vec3[T]) Cross(o Vec3[T]) Vec3[T] {
	return Vec3[T]{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSq returns the squared Euclidean norm of v.
func (v Vec3[T]) LengthSq() T {
	return v.Dot(v)
}

// Length returns the Euclidean norm of v.
func (v Vec3[T]) Length() T {
	return numeric.Sqrt(v.LengthSq())
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3[T]) Distance(o Vec3[T]) T {
	return v.Sub(o).Length()
}

// Normalize returns v scaled to unit length. A degenerate (zero-length)
// vector is reported as an error rather than silently propagating NaN.
func (v Vec3[T]) Normalize() (Vec3[T], error) {
	l := v.Length()
	if l == 0 {
		return Vec3[T]{}, fmt.Errorf("%w: cannot normalize a zero-length vector", ierrors.ErrDegenerateVector)
	}
	return v.Scale(1 / l), nil
}

// Min returns the component-wise minimum of v and o.
func (v Vec3[T]) Min(o Vec3[T]) Vec3[T] {
	return Vec3[T]{numeric.Min(v.X, o.X), numeric.Min(v.Y, o.Y), numeric.Min(v.Z, o.Z)}
}

// Max returns the component-wise maximum of v and o.
func (v Vec3[T]) Max(o Vec3[T]) Vec3[T] {
	return Vec3[T]{numeric.Max(v.X, o.X), numeric.Max(v.Y, o.Y), numeric.Max(v.Z, o.Z)}
}

// Lerp linearly interpolates between v and o at parameter t (0 = v, 1 = o).
func (v Vec3[T]) Lerp(o Vec3[T], t T) Vec3[T] {
	return v.Add(o.Sub(v).Scale(t))
}
