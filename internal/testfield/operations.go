package testfield

import (
	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// Max is a two-input Operation computing the larger of its two upstream
// values, the Boolean-intersection combinator over two fields.
type Max[T numeric.Scalar] struct{}

// Compute implements component.Component; Operations ignore point.
func (Max[T]) Compute(_ geom.Vec3[T], inputs []T) T {
	return numeric.Max(inputs[0], inputs[1])
}

// InputNames implements component.Component.
func (Max[T]) InputNames() []string { return []string{"a", "b"} }

// Parameters implements component.Component; Max takes no parameters.
func (Max[T]) Parameters() []component.ParamSpec { return nil }

// Tag implements component.Component.
func (Max[T]) Tag() string { return "Max" }

// Kind implements component.Component.
func (Max[T]) Kind() component.Tag { return component.KindOperation }

// Sum is a two-input Operation computing the sum of its two upstream
// values.
type Sum[T numeric.Scalar] struct{}

// Compute implements component.Component.
func (Sum[T]) Compute(_ geom.Vec3[T], inputs []T) T {
	return inputs[0] + inputs[1]
}

// InputNames implements component.Component.
func (Sum[T]) InputNames() []string { return []string{"a", "b"} }

// Parameters implements component.Component; Sum takes no parameters.
func (Sum[T]) Parameters() []component.ParamSpec { return nil }

// Tag implements component.Component.
func (Sum[T]) Tag() string { return "Sum" }

// Kind implements component.Component.
func (Sum[T]) Kind() component.Tag { return component.KindOperation }
