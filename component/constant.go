package component

import (
	"fmt"

	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// constTag is the stable serialization tag for the built-in Constant
// component.
const constTag = "Constant"

// Constant is the built-in zero-input, zero-parameter-dependency
// component: Compute always returns its fixed value, regardless of point
// or inputs.
type Constant[T numeric.Scalar] struct {
	value T
}

// NewConstant returns a Constant component holding v.
func NewConstant[T numeric.Scalar](v T) *Constant[T] {
	return &Constant[T]{value: v}
}

// Compute implements Component.
func (c *Constant[T]) Compute(_ geom.Vec3[T], _ []T) T { return c.value }

// InputNames implements Component; Constants take no inputs.
func (c *Constant[T]) InputNames() []string { return nil }

// Parameters implements Component.
func (c *Constant[T]) Parameters() []ParamSpec {
	return []ParamSpec{{Name: "value", Type: ParamScalar}}
}

// Tag implements Component.
func (c *Constant[T]) Tag() string { return constTag }

// Kind implements Component.
func (c *Constant[T]) Kind() Tag { return KindConstant }

// GetParameter implements ParameterGetter.
func (c *Constant[T]) GetParameter(name string) (interface{}, bool) {
	if name != "value" {
		return nil, false
	}
	return c.value, true
}

// SetParameter implements ParameterSetter.
func (c *Constant[T]) SetParameter(name string, value interface{}) error {
	if name != "value" {
		return fmt.Errorf("%w: %q", ierrors.ErrUnknownParameter, name)
	}
	v, ok := value.(T)
	if !ok {
		return fmt.Errorf("%w: parameter %q expects %T, got %T", ierrors.ErrParameterTypeMismatch, name, c.value, value)
	}
	c.value = v
	return nil
}

// RegisterBuiltins registers the codecs for components the core library
// itself provides (currently just Constant; Function/Operation concrete
// types such as spheres or gyroids live in client code and register their
// own codecs).
func RegisterBuiltins[T numeric.Scalar](r *Registry[T]) {
	r.Register(constTag, Codec[T]{
		EncodeParams: func(c Component[T]) (map[string]interface{}, error) {
			cc, ok := c.(*Constant[T])
			if !ok {
				return nil, fmt.Errorf("%w: expected *Constant, got %T", ierrors.ErrParameterTypeMismatch, c)
			}
			return map[string]interface{}{"value": cc.value}, nil
		},
		DecodeParams: func(params map[string]interface{}) (Component[T], error) {
			raw, ok := params["value"]
			if !ok {
				return nil, fmt.Errorf("%w: Constant requires a %q parameter", ierrors.ErrParameterTypeMismatch, "value")
			}
			f, ok := toFloat64(raw)
			if !ok {
				return nil, fmt.Errorf("%w: Constant %q parameter must be numeric", ierrors.ErrParameterTypeMismatch, "value")
			}
			return NewConstant[T](T(f)), nil
		},
	})
}

// toFloat64 accepts the handful of numeric representations
// encoding/json.Unmarshal can produce into an interface{} (float64) plus
// the already-native T case used by in-process callers.
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
