package component

import (
	"fmt"

	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// Codec is the pair of (serialize-params, deserialize-params) functions a
// component type registers under its stable tag. EncodeParams returns a
// JSON-marshalable map of the component's current parameter values;
// DecodeParams constructs a zero-wired instance of the component from such
// a map (edges are wired separately by the model).
type Codec[T numeric.Scalar] struct {
	EncodeParams func(c Component[T]) (map[string]interface{}, error)
	DecodeParams func(params map[string]interface{}) (Component[T], error)
}

// Registry maps stable tags to Codecs, used by persist.Unmarshal to
// reconstruct components whose concrete type the core library does not
// know about. A Registry is an explicit argument rather than a
// package-level global so that a process can deserialize models built
// from different extension sets concurrently.
type Registry[T numeric.Scalar] struct {
	codecs map[string]Codec[T]
}

// NewRegistry returns an empty Registry.
func NewRegistry[T numeric.Scalar]() *Registry[T] {
	return &Registry[T]{codecs: make(map[string]Codec[T])}
}

// Register associates tag with codec. Re-registering the same tag
// overwrites the previous codec (useful for tests); production callers
// should register each tag exactly once at startup.
func (r *Registry[T]) Register(tag string, codec Codec[T]) {
	r.codecs[tag] = codec
}

// Lookup returns the codec registered for tag, or
// ierrors.ErrUnknownTag if none was registered.
func (r *Registry[T]) Lookup(tag string) (Codec[T], error) {
	codec, ok := r.codecs[tag]
	if !ok {
		return Codec[T]{}, fmt.Errorf("%w: %q", ierrors.ErrUnknownTag, tag)
	}
	return codec, nil
}
