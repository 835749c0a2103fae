// Package component defines the polymorphic component trait surface:
// Function, Operation and Constant, unified behind a single Component
// interface so the model's scheduler stays uniform.
package component

import (
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// Tag identifies which of the three component kinds a Component is.
type Tag int

const (
	// KindFunction components depend only on the query point.
	KindFunction Tag = iota
	// KindOperation components depend on the values of their upstream
	// input slots at the query point.
	KindOperation
	// KindConstant components depend on neither.
	KindConstant
)

// String implements fmt.Stringer.
func (t Tag) String() string {
	switch t {
	case KindFunction:
		return "Function"
	case KindOperation:
		return "Operation"
	case KindConstant:
		return "Constant"
	default:
		return "Unknown"
	}
}

// ParamType enumerates the parameter value types a component can declare:
// Scalar, Bool, Enum, Vec3, BoundingBox or File-path.
type ParamType int

const (
	ParamScalar ParamType = iota
	ParamBool
	ParamEnum
	ParamVec3
	ParamBoundingBox
	ParamFilePath
)

// ParamSpec describes one named, typed parameter slot.
type ParamSpec struct {
	Name string
	Type ParamType
}

// Component is the single entry point every node in a model implements.
// Compute is pure, deterministic and side-effect-free; it never fails —
// domain errors yield a documented sentinel value rather than propagating
// NaN/Inf downstream, except where a component's own documentation states
// otherwise.
type Component[T numeric.Scalar] interface {
	// Compute evaluates the component at point, given the already-computed
	// values of its declared input slots (in InputNames order). Functions
	// ignore inputs; Operations ignore point; Constants ignore both.
	Compute(point geom.Vec3[T], inputs []T) T

	// InputNames returns the fixed, ordered list of input slot names.
	// Empty for Function and Constant components.
	InputNames() []string

	// Parameters returns the fixed, ordered list of parameter specs this
	// component declares.
	Parameters() []ParamSpec

	// Tag returns the stable string identifying this component's concrete
	// type, used for serialization dispatch.
	Tag() string

	// Kind returns which of the three polymorphic kinds this component is.
	Kind() Tag
}

// ParameterGetter is implemented by components that expose typed
// parameter access for persistence and tooling.
type ParameterGetter[T numeric.Scalar] interface {
	// GetParameter returns the current value of the named parameter, or
	// ok=false if name is not declared.
	GetParameter(name string) (value interface{}, ok bool)
}

// ParameterSetter is implemented by components that accept runtime
// reconfiguration via model.Model.SetParameter.
type ParameterSetter[T numeric.Scalar] interface {
	// SetParameter assigns value to the named parameter. Implementations
	// must return ierrors.ErrUnknownParameter, ierrors.ErrParameterTypeMismatch
	// or ierrors.ErrParameterOutOfRange as appropriate rather than panicking.
	SetParameter(name string, value interface{}) error
}

// Arity returns the declared input arity of c (len(c.InputNames())).
func Arity[T numeric.Scalar](c Component[T]) int {
	return len(c.InputNames())
}
