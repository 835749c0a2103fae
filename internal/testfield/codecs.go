package testfield

import (
	"fmt"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// RegisterAll registers component.RegisterBuiltins plus codecs for every
// type in this package, so isomesh's own tests can exercise
// persist.Marshal/Unmarshal's full round-trip property against more than
// the bare Constant built-in.
func RegisterAll[T numeric.Scalar](r *component.Registry[T]) {
	component.RegisterBuiltins[T](r)

	r.Register("Sphere", component.Codec[T]{
		EncodeParams: func(c component.Component[T]) (map[string]interface{}, error) {
			s, ok := c.(*Sphere[T])
			if !ok {
				return nil, fmt.Errorf("%w: expected *Sphere, got %T", ierrors.ErrParameterTypeMismatch, c)
			}
			return map[string]interface{}{
				"center": vec3ToParam(s.Center),
				"radius": float64(s.Radius),
			}, nil
		},
		DecodeParams: func(params map[string]interface{}) (component.Component[T], error) {
			center, err := vec3FromParam[T](params["center"])
			if err != nil {
				return nil, err
			}
			radius, ok := toFloat64(params["radius"])
			if !ok {
				return nil, fmt.Errorf("%w: Sphere requires a numeric %q parameter", ierrors.ErrParameterTypeMismatch, "radius")
			}
			return &Sphere[T]{Center: center, Radius: T(radius)}, nil
		},
	})

	r.Register("Gyroid", component.Codec[T]{
		EncodeParams: func(c component.Component[T]) (map[string]interface{}, error) {
			g, ok := c.(*Gyroid[T])
			if !ok {
				return nil, fmt.Errorf("%w: expected *Gyroid, got %T", ierrors.ErrParameterTypeMismatch, c)
			}
			return map[string]interface{}{"omega": float64(g.Omega)}, nil
		},
		DecodeParams: func(params map[string]interface{}) (component.Component[T], error) {
			omega, ok := toFloat64(params["omega"])
			if !ok {
				return nil, fmt.Errorf("%w: Gyroid requires a numeric %q parameter", ierrors.ErrParameterTypeMismatch, "omega")
			}
			return &Gyroid[T]{Omega: T(omega)}, nil
		},
	})

	r.Register("Max", component.Codec[T]{
		EncodeParams: func(component.Component[T]) (map[string]interface{}, error) { return map[string]interface{}{}, nil },
		DecodeParams: func(map[string]interface{}) (component.Component[T], error) { return Max[T]{}, nil },
	})

	r.Register("Sum", component.Codec[T]{
		EncodeParams: func(component.Component[T]) (map[string]interface{}, error) { return map[string]interface{}{}, nil },
		DecodeParams: func(map[string]interface{}) (component.Component[T], error) { return Sum[T]{}, nil },
	})
}

func vec3ToParam[T numeric.Scalar](v geom.Vec3[T]) []float64 {
	return []float64{float64(v.X), float64(v.Y), float64(v.Z)}
}

func vec3FromParam[T numeric.Scalar](raw interface{}) (geom.Vec3[T], error) {
	arr, ok := raw.([]interface{})
	if !ok || len(arr) != 3 {
		return geom.Vec3[T]{}, fmt.Errorf("%w: expected a 3-element array for a Vec3 parameter", ierrors.ErrParameterTypeMismatch)
	}
	comps := make([]T, 3)
	for i, elem := range arr {
		f, ok := toFloat64(elem)
		if !ok {
			return geom.Vec3[T]{}, fmt.Errorf("%w: Vec3 component %d must be numeric", ierrors.ErrParameterTypeMismatch, i)
		}
		comps[i] = T(f)
	}
	return geom.Vec3[T]{X: comps[0], Y: comps[1], Z: comps[2]}, nil
}

func toFloat64(raw interface{}) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}
