package model

import (
	"fmt"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/numeric"
)

// TopologicalOrder returns a stable, reproducible evaluation order for the
// transitive closure of outputName (producers before consumers), with
// ties broken by insertion order. The order is cached per output name and
// invalidated on any mutation.
//
// The walk is a White/Gray/Black post-order DFS restricted to
// outputName's transitive closure, reading the incoming-slot map.
func (m *Model[T]) TopologicalOrder(outputName string) ([]string, error) {
	m.muNodes.RLock()
	_, ok := m.nodes[outputName]
	insertIndex := make(map[string]int, len(m.insertOrder))
	for i, n := range m.insertOrder {
		insertIndex[n] = i
	}
	m.muNodes.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ierrors.ErrUnknownComponent, outputName)
	}

	m.muEdges.Lock()
	defer m.muEdges.Unlock()

	if cached, ok := m.topoCache[outputName]; ok {
		out := make([]string, len(cached))
		copy(out, cached)
		return out, nil
	}

	state := make(map[string]int)
	var order []string
	var visit func(name string)
	visit = func(name string) {
		if state[name] == black {
			return
		}
		state[name] = gray
		// Visit producers in insertion order for determinism.
		producers := append([]string(nil), m.incoming[name]...)
		for i := 0; i < len(producers); i++ {
			for j := i + 1; j < len(producers); j++ {
				if producers[j] != "" && (producers[i] == "" || insertIndex[producers[j]] < insertIndex[producers[i]]) {
					producers[i], producers[j] = producers[j], producers[i]
				}
			}
		}
		for _, p := range producers {
			if p == "" {
				continue // unbound slot; surfaced by EvaluateAt, not here
			}
			if state[p] != black {
				visit(p)
			}
		}
		state[name] = black
		order = append(order, name)
	}
	visit(outputName)

	cached := make([]string, len(order))
	copy(cached, order)
	m.topoCache[outputName] = cached

	out := make([]string, len(order))
	copy(out, order)
	return out, nil
}

// EvaluateAt topologically evaluates only the transitive closure of
// outputName at point (x,y,z), materializing an intermediate scratch
// array of length equal to the closure size. Fails with
// ierrors.ErrUnknownComponent or ierrors.ErrUnboundSlot (wrapped in
// ierrors.ErrEvaluationFailed).
func (m *Model[T]) EvaluateAt(outputName string, x, y, z T) (T, error) {
	order, err := m.TopologicalOrder(outputName)
	if err != nil {
		return 0, err
	}

	m.muNodes.RLock()
	m.muEdges.RLock()
	values := make(map[string]T, len(order))
	point := geom.Vec3[T]{X: x, Y: y, Z: z}
	for _, name := range order {
		c := m.nodes[name]
		slots := m.incoming[name]
		inputs := make([]T, len(slots))
		for i, producer := range slots {
			if producer == "" {
				m.muEdges.RUnlock()
				m.muNodes.RUnlock()
				return 0, fmt.Errorf("%w: %w: %q slot %d is unbound", ierrors.ErrEvaluationFailed, ierrors.ErrUnboundSlot, name, i)
			}
			inputs[i] = values[producer]
		}
		values[name] = c.Compute(point, inputs)
	}
	m.muEdges.RUnlock()
	m.muNodes.RUnlock()

	return values[outputName], nil
}

// EvaluateBatchAt evaluates outputName at every point in pts, reusing a
// single topological order and a single scratch buffer layout across all
// points. It is read-only with respect to the model and safe to call from
// multiple goroutines against independent EvaluateBatchAt/EvaluateAt
// calls provided no mutation is in flight.
func (m *Model[T]) EvaluateBatchAt(outputName string, pts []geom.Vec3[T]) ([]T, error) {
	order, err := m.TopologicalOrder(outputName)
	if err != nil {
		return nil, err
	}

	m.muNodes.RLock()
	m.muEdges.RLock()
	nodes := make([]nodeEval[T], len(order))
	indexOf := make(map[string]int, len(order))
	for i, name := range order {
		indexOf[name] = i
	}
	for i, name := range order {
		slots := m.incoming[name]
		producerIdx := make([]int, len(slots))
		unbound := -1
		for s, producer := range slots {
			if producer == "" {
				unbound = s
				producerIdx[s] = -1
				continue
			}
			producerIdx[s] = indexOf[producer]
		}
		nodes[i] = nodeEval[T]{
			name:        name,
			comp:        m.nodes[name],
			producerIdx: producerIdx,
			unboundSlot: unbound,
		}
	}
	m.muEdges.RUnlock()
	m.muNodes.RUnlock()

	out := make([]T, len(pts))
	scratch := make([]T, len(nodes))
	inputs := make([]T, 0, 8)
	for pi, p := range pts {
		for _, n := range nodes {
			if n.unboundSlot >= 0 {
				return nil, fmt.Errorf("%w: %w: %q slot %d is unbound", ierrors.ErrEvaluationFailed, ierrors.ErrUnboundSlot, n.name, n.unboundSlot)
			}
			inputs = inputs[:0]
			for _, idx := range n.producerIdx {
				inputs = append(inputs, scratch[idx])
			}
			v := n.comp.Compute(p, inputs)
			scratch[indexOf[n.name]] = v
		}
		out[pi] = scratch[indexOf[outputName]]
	}
	return out, nil
}

// nodeEval is the precomputed scratch-evaluation record for one node in a
// cached topological order.
type nodeEval[T numeric.Scalar] struct {
	name        string
	comp        component.Component[T]
	producerIdx []int
	unboundSlot int
}
