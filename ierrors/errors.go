// Package ierrors collects the single closed taxonomy of sentinel errors
// used across isomesh. Every fallible operation returns one of these,
// wrapped with context via fmt.Errorf("%w: ...") rather than a new
// ad-hoc error type, so callers can always recover the kind with errors.Is.
package ierrors

import "errors"

// Graph-construction errors (model package).
var (
	// ErrDuplicateName is returned when adding a component whose name is
	// already present in the model.
	ErrDuplicateName = errors.New("isomesh: duplicate component name")

	// ErrUnknownComponent is returned when an operation references a
	// component name that does not exist in the model.
	ErrUnknownComponent = errors.New("isomesh: unknown component")

	// ErrUnknownProducer is returned when wiring references a producer
	// name that does not exist in the model.
	ErrUnknownProducer = errors.New("isomesh: unknown producer")

	// ErrArityMismatch is returned when the number of producers supplied
	// does not match a component's declared input arity.
	ErrArityMismatch = errors.New("isomesh: arity mismatch")

	// ErrUnboundSlot is returned when evaluation reaches a component with
	// an input slot that has no incoming edge.
	ErrUnboundSlot = errors.New("isomesh: unbound input slot")

	// ErrWouldCreateCycle is returned when wiring an edge would make the
	// model's dependency graph cyclic.
	ErrWouldCreateCycle = errors.New("isomesh: wiring would create a cycle")

	// ErrSlotOccupied is returned when wiring targets a slot that already
	// has an incoming edge (at most one incoming edge per slot).
	ErrSlotOccupied = errors.New("isomesh: slot already has an incoming edge")

	// ErrSlotIndexRange is returned when a slot index is outside
	// [0, input arity) for the target component.
	ErrSlotIndexRange = errors.New("isomesh: slot index out of range")
)

// Component-configuration errors.
var (
	// ErrUnknownParameter is returned by SetParameter for an unrecognized
	// parameter name.
	ErrUnknownParameter = errors.New("isomesh: unknown parameter")

	// ErrParameterTypeMismatch is returned when a parameter value's type
	// does not match its declared schema type.
	ErrParameterTypeMismatch = errors.New("isomesh: parameter type mismatch")

	// ErrParameterOutOfRange is returned when a parameter value is
	// outside the type's valid domain (e.g. negative radius).
	ErrParameterOutOfRange = errors.New("isomesh: parameter out of range")
)

// Sampler/field configuration errors.
var (
	// ErrInvalidBounds is returned for a BoundingBox with min > max on
	// any axis, or a zero-volume box where one is required.
	ErrInvalidBounds = errors.New("isomesh: invalid bounds")

	// ErrInvalidCellSize is returned for a non-positive cell size.
	ErrInvalidCellSize = errors.New("isomesh: invalid cell size")

	// ErrInvalidBlockSize is returned when internal/leaf sizes are not
	// powers of two in {2,4,8,...,128}, or internal_size < leaf_size.
	ErrInvalidBlockSize = errors.New("isomesh: invalid block size")
)

// Geometry errors.
var (
	// ErrDegenerateVector is returned when normalizing a zero-length
	// Vec3 (reported as an error, never NaN).
	ErrDegenerateVector = errors.New("isomesh: degenerate (zero-length) vector")
)

// Evaluation and execution errors.
var (
	// ErrEvaluationFailed wraps an unbound slot or configuration error
	// discovered while evaluating a model at a point.
	ErrEvaluationFailed = errors.New("isomesh: evaluation failed")

	// ErrCancelled is returned by long-running operations when their
	// cancellation token fires before completion.
	ErrCancelled = errors.New("isomesh: operation cancelled")

	// ErrLeafBudgetExceeded is returned by the sampler when
	// Config.MaxActiveLeaves is exceeded.
	ErrLeafBudgetExceeded = errors.New("isomesh: active leaf budget exceeded")
)

// Persistence-boundary errors, surfaced by persist.Marshal/Unmarshal and
// the OBJ codec.
var (
	// ErrIO wraps a failure reading/writing the underlying byte stream.
	ErrIO = errors.New("isomesh: io error")

	// ErrParse wraps a malformed JSON/OBJ document.
	ErrParse = errors.New("isomesh: parse error")

	// ErrVersionUnsupported is returned when a serialized model's
	// "version" field is not one this build knows how to read.
	ErrVersionUnsupported = errors.New("isomesh: unsupported version")

	// ErrUnknownTag is returned when a serialized component's "tag" is
	// not registered with the component.Registry used to deserialize.
	ErrUnknownTag = errors.New("isomesh: unknown component tag")
)
