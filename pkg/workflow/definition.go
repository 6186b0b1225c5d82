// Package workflow defines the graph model produced by the visual editor and
// the structural validator that gates execution. A definition is an immutable
// snapshot: nodes referenced by id plus an explicit edge list, never live
// object references.
package workflow

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Position is editor layout metadata. The engine decodes it for round-trip
// fidelity and otherwise ignores it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeSpec is a single configured unit of work in the graph.
type NodeSpec struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Config   map[string]any `json:"config,omitempty"`
	Position Position       `json:"position,omitempty"`
}

// Edge connects a named output handle on one node to a named input handle on
// another. A target handle accepts at most one edge; a source handle may fan
// out freely.
type Edge struct {
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle"`
}

func (e Edge) String() string {
	return e.Source + "." + e.SourceHandle + " -> " + e.Target + "." + e.TargetHandle
}

// Definition is the saved workflow graph, loaded once per run and treated as
// read-only for the run's duration.
type Definition struct {
	Name  string     `json:"name,omitempty"`
	Nodes []NodeSpec `json:"nodes"`
	Edges []Edge     `json:"edges"`
}

// Parse decodes an editor-authored definition from JSON.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, "decoding workflow definition")
	}
	return &def, nil
}

// Node returns the node with the given id, if present.
func (d *Definition) Node(id string) (NodeSpec, bool) {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeSpec{}, false
}

// Incoming returns the edges targeting the given node, in definition order.
func (d *Definition) Incoming(nodeID string) []Edge {
	var in []Edge
	for _, e := range d.Edges {
		if e.Target == nodeID {
			in = append(in, e)
		}
	}
	return in
}

// Outgoing returns the edges leaving the given node, in definition order.
func (d *Definition) Outgoing(nodeID string) []Edge {
	var out []Edge
	for _, e := range d.Edges {
		if e.Source == nodeID {
			out = append(out, e)
		}
	}
	return out
}
