package model

import (
	"fmt"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/ierrors"
)

// addNode is the shared implementation behind AddFunction/AddOperation/
// AddConstant: validates the name is unused, registers the component, and
// allocates its (initially unbound) input slots.
func (m *Model[T]) addNode(name string, c component.Component[T]) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: component name must not be empty", ierrors.ErrDuplicateName)
	}

	m.muNodes.Lock()
	if _, exists := m.nodes[name]; exists {
		m.muNodes.Unlock()
		return "", fmt.Errorf("%w: %q", ierrors.ErrDuplicateName, name)
	}
	m.nodes[name] = c
	m.insertOrder = append(m.insertOrder, name)
	m.muNodes.Unlock()

	m.muEdges.Lock()
	m.incoming[name] = make([]string, len(c.InputNames()))
	m.outgoing[name] = make(map[string]struct{})
	m.invalidateCache()
	m.muEdges.Unlock()

	return name, nil
}

// AddFunction registers a Function component (depends only on the query
// point) under name. Returns the canonical name or ierrors.ErrDuplicateName.
func (m *Model[T]) AddFunction(name string, f component.Component[T]) (string, error) {
	return m.addNode(name, f)
}

// AddOperation registers an Operation component (depends on its upstream
// slots' values) under name, with all input slots initially unbound.
// Returns the canonical name or ierrors.ErrDuplicateName.
func (m *Model[T]) AddOperation(name string, op component.Component[T]) (string, error) {
	return m.addNode(name, op)
}

// AddConstant registers a fixed scalar value v as a Constant component
// under name. Returns the canonical name or ierrors.ErrDuplicateName.
func (m *Model[T]) AddConstant(name string, v T) (string, error) {
	return m.addNode(name, component.NewConstant[T](v))
}

// AddOperationWithInputs registers op under name and wires all of its
// input slots atomically from producers (in slot order). On any failure
// (ierrors.ErrDuplicateName, ierrors.ErrUnknownProducer,
// ierrors.ErrArityMismatch, ierrors.ErrWouldCreateCycle) the model is left
// completely unchanged.
func (m *Model[T]) AddOperationWithInputs(name string, op component.Component[T], producers []string) (string, error) {
	if len(producers) != component.Arity(op) {
		return "", fmt.Errorf("%w: %q declares %d inputs, got %d producers", ierrors.ErrArityMismatch, name, component.Arity(op), len(producers))
	}

	m.muNodes.RLock()
	for _, p := range producers {
		if _, ok := m.nodes[p]; !ok {
			m.muNodes.RUnlock()
			return "", fmt.Errorf("%w: %q", ierrors.ErrUnknownProducer, p)
		}
	}
	m.muNodes.RUnlock()

	if _, err := m.addNode(name, op); err != nil {
		return "", err
	}

	for slot, producer := range producers {
		if err := m.Wire(producer, name, slot); err != nil {
			// Roll back: the node was only just added and has no other
			// wiring yet, so removing it fully restores the prior state.
			_ = m.Remove(name)
			return "", err
		}
	}

	return name, nil
}

// SetParameter assigns value to the named parameter of the named
// component. Fails with ierrors.ErrUnknownComponent,
// ierrors.ErrUnknownParameter or ierrors.ErrParameterTypeMismatch.
func (m *Model[T]) SetParameter(name, paramName string, value interface{}) error {
	m.muNodes.RLock()
	c, ok := m.nodes[name]
	m.muNodes.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ierrors.ErrUnknownComponent, name)
	}

	setter, ok := c.(component.ParameterSetter[T])
	if !ok {
		return fmt.Errorf("%w: component %q has no settable parameters", ierrors.ErrUnknownParameter, name)
	}
	return setter.SetParameter(paramName, value)
}
