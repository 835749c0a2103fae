package model

import (
	"fmt"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// AddComponent registers c under name regardless of its concrete Kind
// (Function, Operation or Constant), for callers such as persist.Unmarshal
// that reconstruct a component generically from a registered Codec and
// only learn its kind from component.Component.Kind() at runtime. It is
// the same validate-then-mutate path as AddFunction/AddOperation/
// AddConstant.
func (m *Model[T]) AddComponent(name string, c component.Component[T]) (string, error) {
	return m.addNode(name, c)
}

// NodeInfo pairs a component's canonical name with the component itself,
// in the order returned by Nodes.
type NodeInfo[T numeric.Scalar] struct {
	Name      string
	Component component.Component[T]
}

// Nodes returns every component in insertion order, the same order
// persist.Marshal uses to produce a stable serialization.
func (m *Model[T]) Nodes() []NodeInfo[T] {
	m.muNodes.RLock()
	defer m.muNodes.RUnlock()
	out := make([]NodeInfo[T], len(m.insertOrder))
	for i, name := range m.insertOrder {
		out[i] = NodeInfo[T]{Name: name, Component: m.nodes[name]}
	}
	return out
}

// EdgeInfo describes one wired producer -> (consumer, slot) edge.
type EdgeInfo struct {
	Producer string
	Consumer string
	Slot     int
}

// Edges returns every wired edge, ordered by consumer insertion order then
// slot index, the same order persist.Marshal uses to produce a stable
// serialization.
func (m *Model[T]) Edges() []EdgeInfo {
	m.muNodes.RLock()
	order := append([]string(nil), m.insertOrder...)
	m.muNodes.RUnlock()

	m.muEdges.RLock()
	defer m.muEdges.RUnlock()

	var out []EdgeInfo
	for _, consumer := range order {
		for slot, producer := range m.incoming[consumer] {
			if producer != "" {
				out = append(out, EdgeInfo{Producer: producer, Consumer: consumer, Slot: slot})
			}
		}
	}
	return out
}

// Component looks up the named component, or ierrors.ErrUnknownComponent.
func (m *Model[T]) Component(name string) (component.Component[T], error) {
	m.muNodes.RLock()
	defer m.muNodes.RUnlock()
	c, ok := m.nodes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ierrors.ErrUnknownComponent, name)
	}
	return c, nil
}
