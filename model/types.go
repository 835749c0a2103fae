package model

import (
	"sync"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/numeric"
)

// Three-color traversal state for cycle detection and topological
// ordering.
const (
	white = 0
	gray  = 1
	black = 2
)

// Model is the in-memory implicit model: a mapping from unique component
// name to component, plus the producer->consumer edge set, plus an
// optional model bounding box.
//
// muNodes guards nodes/insertOrder; muEdges guards incoming/outgoing and
// invalidates topoCache.
type Model[T numeric.Scalar] struct {
	muNodes sync.RWMutex
	muEdges sync.RWMutex

	nodes       map[string]component.Component[T]
	insertOrder []string // insertion order, used to break topological-sort ties deterministically

	// incoming[consumer] is a slice of length == consumer's input arity;
	// incoming[consumer][slot] is the producer name bound to that slot,
	// or "" if unbound.
	incoming map[string][]string
	// outgoing[producer] is the set of consumer names with at least one
	// edge from producer, used for cycle checks and Remove cleanup.
	outgoing map[string]map[string]struct{}

	bounds    *geom.BoundingBox[T]
	topoCache map[string][]string // output name -> cached topological order, invalidated on any mutation
}

// Option configures a Model at construction time.
type Option[T numeric.Scalar] func(*Model[T])

// WithBounds sets the model's optional bounding box.
func WithBounds[T numeric.Scalar](b geom.BoundingBox[T]) Option[T] {
	return func(m *Model[T]) { m.bounds = &b }
}

// New creates an empty Model. Models are mutated only through the
// AddFunction/AddOperation/AddConstant/Wire/Remove/SetParameter methods,
// each of which validates invariants and refuses the mutation on
// violation.
func New[T numeric.Scalar](opts ...Option[T]) *Model[T] {
	m := &Model[T]{
		nodes:     make(map[string]component.Component[T]),
		incoming:  make(map[string][]string),
		outgoing:  make(map[string]map[string]struct{}),
		topoCache: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bounds returns the model's configured bounding box, if any.
func (m *Model[T]) Bounds() (geom.BoundingBox[T], bool) {
	m.muNodes.RLock()
	defer m.muNodes.RUnlock()
	if m.bounds == nil {
		return geom.BoundingBox[T]{}, false
	}
	return *m.bounds, true
}

// SetBounds updates the model's bounding box.
func (m *Model[T]) SetBounds(b geom.BoundingBox[T]) {
	m.muNodes.Lock()
	defer m.muNodes.Unlock()
	m.bounds = &b
}

// HasComponent reports whether name is a known component.
func (m *Model[T]) HasComponent(name string) bool {
	m.muNodes.RLock()
	defer m.muNodes.RUnlock()
	_, ok := m.nodes[name]
	return ok
}

// invalidateCache drops every cached topological order. Called at the end
// of every successful mutation. Callers must hold muEdges (or both locks)
// for the duration this is meaningful; the map itself is only ever
// touched under muEdges in EvaluateAt/TopologicalOrder, so taking muEdges
// here is sufficient.
func (m *Model[T]) invalidateCache() {
	m.topoCache = make(map[string][]string)
}
