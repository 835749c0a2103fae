package model

import (
	"fmt"

	"github.com/voxelfield/isomesh/ierrors"
)

// Wire binds producer's output to consumer's input slot at slotIndex.
// Fails with ierrors.ErrUnknownProducer, ierrors.ErrUnknownComponent,
// ierrors.ErrSlotIndexRange, ierrors.ErrSlotOccupied, or
// ierrors.ErrWouldCreateCycle; on any failure the model is unchanged.
//
// Cycle detection performs a forward reachability check from consumer: if
// producer is reachable from consumer via existing edges, adding
// producer->consumer would close a cycle. This is O(E) per edit,
// acceptable for interactive assembly. The cycle check runs before the
// slot checks, so a wiring that would close a cycle reports
// ierrors.ErrWouldCreateCycle even when the slot is out of range or
// already bound.
func (m *Model[T]) Wire(producer, consumer string, slotIndex int) error {
	m.muNodes.RLock()
	_, producerOK := m.nodes[producer]
	_, consumerOK := m.nodes[consumer]
	m.muNodes.RUnlock()
	if !producerOK {
		return fmt.Errorf("%w: %q", ierrors.ErrUnknownProducer, producer)
	}
	if !consumerOK {
		return fmt.Errorf("%w: %q", ierrors.ErrUnknownComponent, consumer)
	}

	m.muEdges.Lock()
	defer m.muEdges.Unlock()

	if producer == consumer || m.reachableLocked(consumer, producer) {
		return fmt.Errorf("%w: wiring %q -> %q (slot %d)", ierrors.ErrWouldCreateCycle, producer, consumer, slotIndex)
	}
	slots := m.incoming[consumer]
	if slotIndex < 0 || slotIndex >= len(slots) {
		return fmt.Errorf("%w: %q has %d input slots, got index %d", ierrors.ErrSlotIndexRange, consumer, len(slots), slotIndex)
	}
	if slots[slotIndex] != "" {
		return fmt.Errorf("%w: %q slot %d is already bound to %q", ierrors.ErrSlotOccupied, consumer, slotIndex, slots[slotIndex])
	}

	slots[slotIndex] = producer
	m.outgoing[producer][consumer] = struct{}{}
	m.invalidateCache()

	return nil
}

// reachableLocked reports whether target is reachable from start by
// following producer->consumer edges forward via an iterative
// frontier-by-frontier walk. Callers must hold muEdges.
func (m *Model[T]) reachableLocked(start, target string) bool {
	if start == target {
		return true
	}
	visited := map[string]bool{start: true}
	frontier := []string{start}
	for len(frontier) > 0 {
		var next []string
		for _, n := range frontier {
			for consumer := range m.outgoing[n] {
				if consumer == target {
					return true
				}
				if !visited[consumer] {
					visited[consumer] = true
					next = append(next, consumer)
				}
			}
		}
		frontier = next
	}
	return false
}

// Remove deletes the named component and all edges incident to it.
// Removing a name that does not exist returns
// ierrors.ErrUnknownComponent.
func (m *Model[T]) Remove(name string) error {
	m.muNodes.Lock()
	if _, ok := m.nodes[name]; !ok {
		m.muNodes.Unlock()
		return fmt.Errorf("%w: %q", ierrors.ErrUnknownComponent, name)
	}
	delete(m.nodes, name)
	for i, n := range m.insertOrder {
		if n == name {
			m.insertOrder = append(m.insertOrder[:i], m.insertOrder[i+1:]...)
			break
		}
	}
	m.muNodes.Unlock()

	m.muEdges.Lock()
	defer m.muEdges.Unlock()

	// Unbind any slot that pointed at name.
	for _, slots := range m.incoming {
		for i, producer := range slots {
			if producer == name {
				slots[i] = ""
			}
		}
	}
	delete(m.incoming, name)
	delete(m.outgoing, name)
	// Remove name from every other node's outgoing set too.
	for _, consumers := range m.outgoing {
		delete(consumers, name)
	}
	m.invalidateCache()

	return nil
}
