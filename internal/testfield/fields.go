package testfield

import (
	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// Sphere is a Function component evaluating a distance-like field to a
// sphere: |p-Center| - Radius.
type Sphere[T numeric.Scalar] struct {
	Center geom.Vec3[T]
	Radius T
}

// Compute implements component.Component.
func (s *Sphere[T]) Compute(p geom.Vec3[T], _ []T) T {
	return p.Distance(s.Center) - s.Radius
}

// InputNames implements component.Component; Sphere is a Function.
func (s *Sphere[T]) InputNames() []string { return nil }

// Parameters implements component.Component.
func (s *Sphere[T]) Parameters() []component.ParamSpec {
	return []component.ParamSpec{
		{Name: "center", Type: component.ParamVec3},
		{Name: "radius", Type: component.ParamScalar},
	}
}

// Tag implements component.Component.
func (s *Sphere[T]) Tag() string { return "Sphere" }

// Kind implements component.Component.
func (s *Sphere[T]) Kind() component.Tag { return component.KindFunction }

// Gyroid is a Function component evaluating the canonical triply-periodic
// minimal surface field:
// sin(wx)cos(wy) + sin(wy)cos(wz) + sin(wz)cos(wx).
type Gyroid[T numeric.Scalar] struct {
	Omega T
}

// Compute implements component.Component.
func (g *Gyroid[T]) Compute(p geom.Vec3[T], _ []T) T {
	return numeric.Sin(g.Omega*p.X)*numeric.Cos(g.Omega*p.Y) +
		numeric.Sin(g.Omega*p.Y)*numeric.Cos(g.Omega*p.Z) +
		numeric.Sin(g.Omega*p.Z)*numeric.Cos(g.Omega*p.X)
}

// InputNames implements component.Component; Gyroid is a Function.
func (g *Gyroid[T]) InputNames() []string { return nil }

// Parameters implements component.Component.
func (g *Gyroid[T]) Parameters() []component.ParamSpec {
	return []component.ParamSpec{{Name: "omega", Type: component.ParamScalar}}
}

// Tag implements component.Component.
func (g *Gyroid[T]) Tag() string { return "Gyroid" }

// Kind implements component.Component.
func (g *Gyroid[T]) Kind() component.Tag { return component.KindFunction }
