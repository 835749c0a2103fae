package persist

import (
	"encoding/json"
	"fmt"

	"github.com/voxelfield/isomesh/component"
	"github.com/voxelfield/isomesh/geom"
	"github.com/voxelfield/isomesh/ierrors"
	"github.com/voxelfield/isomesh/model"
	"github.com/voxelfield/isomesh/numeric"
)

// schemaVersion is the only "version" value this build reads or writes.
const schemaVersion = 1

type rawModel struct {
	Version    int            `json:"version"`
	Bounds     *rawBounds     `json:"bounds"`
	Components []rawComponent `json:"components"`
	Edges      []rawEdge      `json:"edges"`
}

type rawBounds struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

type rawComponent struct {
	Name   string                 `json:"name"`
	Kind   string                 `json:"kind"`
	Tag    string                 `json:"tag"`
	Params map[string]interface{} `json:"params"`
}

type rawEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Slot int    `json:"slot"`
}

// Marshal serializes m to the model's JSON schema: a version tag, an
// optional bounds block, the component list in insertion order (each
// entry's params produced by reg's Codec for that component's Tag) and the
// edge list ordered by consumer then slot. Returns ierrors.ErrUnknownTag
// if m contains a component whose Tag has no Codec registered in reg —
// Marshal never silently drops a component.
func Marshal[T numeric.Scalar](m *model.Model[T], reg *component.Registry[T]) ([]byte, error) {
	doc := rawModel{Version: schemaVersion}

	if b, ok := m.Bounds(); ok {
		doc.Bounds = &rawBounds{
			Min: [3]float64{float64(b.Min.X), float64(b.Min.Y), float64(b.Min.Z)},
			Max: [3]float64{float64(b.Max.X), float64(b.Max.Y), float64(b.Max.Z)},
		}
	}

	for _, n := range m.Nodes() {
		codec, err := reg.Lookup(n.Component.Tag())
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", n.Name, err)
		}
		params, err := codec.EncodeParams(n.Component)
		if err != nil {
			return nil, fmt.Errorf("encoding component %q: %w", n.Name, err)
		}
		doc.Components = append(doc.Components, rawComponent{
			Name:   n.Name,
			Kind:   n.Component.Kind().String(),
			Tag:    n.Component.Tag(),
			Params: params,
		})
	}

	for _, e := range m.Edges() {
		doc.Edges = append(doc.Edges, rawEdge{From: e.Producer, To: e.Consumer, Slot: e.Slot})
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal reconstructs a Model from data previously produced by Marshal
// (or a hand-authored document following the same schema). Each
// component's params are decoded via reg's Codec for its tag; an
// unregistered tag yields ierrors.ErrUnknownTag, an unsupported version
// yields ierrors.ErrVersionUnsupported, and a malformed document yields
// ierrors.ErrParse.
func Unmarshal[T numeric.Scalar](data []byte, reg *component.Registry[T]) (*model.Model[T], error) {
	var doc rawModel
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ierrors.ErrParse, err)
	}
	if doc.Version != schemaVersion {
		return nil, fmt.Errorf("%w: document version %d, this build reads %d", ierrors.ErrVersionUnsupported, doc.Version, schemaVersion)
	}

	var opts []model.Option[T]
	if doc.Bounds != nil {
		min := geom.NewVec3(T(doc.Bounds.Min[0]), T(doc.Bounds.Min[1]), T(doc.Bounds.Min[2]))
		max := geom.NewVec3(T(doc.Bounds.Max[0]), T(doc.Bounds.Max[1]), T(doc.Bounds.Max[2]))
		b, err := geom.NewBoundingBox(min, max)
		if err != nil {
			return nil, err
		}
		opts = append(opts, model.WithBounds[T](b))
	}
	m := model.New[T](opts...)

	for _, rc := range doc.Components {
		codec, err := reg.Lookup(rc.Tag)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", rc.Name, err)
		}
		c, err := codec.DecodeParams(rc.Params)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", rc.Name, err)
		}
		if _, err := m.AddComponent(rc.Name, c); err != nil {
			return nil, fmt.Errorf("component %q: %w", rc.Name, err)
		}
	}

	for _, re := range doc.Edges {
		if err := m.Wire(re.From, re.To, re.Slot); err != nil {
			return nil, fmt.Errorf("edge %s->%s[%d]: %w", re.From, re.To, re.Slot, err)
		}
	}

	return m, nil
}
