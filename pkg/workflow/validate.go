package workflow

import (
	"fmt"
	"sort"
)

// Validator checks a definition for structural soundness before any
// execution. Validation never mutates the definition and is idempotent.
type Validator struct {
	contracts ContractSource
}

// NewValidator builds a validator over the given contract source, normally
// the node registry.
func NewValidator(contracts ContractSource) *Validator {
	return &Validator{contracts: contracts}
}

// Validate runs every structural check and collects all violations rather
// than stopping at the first.
func (v *Validator) Validate(def *Definition) ValidationResult {
	var res ValidationResult

	contracts := make(map[string]Contract, len(def.Nodes))
	seen := make(map[string]bool, len(def.Nodes))
	for _, n := range def.Nodes {
		if seen[n.ID] {
			res.Violations = append(res.Violations, Violation{
				Rule:    RuleDuplicateNode,
				NodeID:  n.ID,
				Message: "node id is declared more than once",
			})
			continue
		}
		seen[n.ID] = true

		c, ok := v.contracts.Contract(n.Type)
		if !ok {
			res.Violations = append(res.Violations, Violation{
				Rule:    RuleUnknownNodeType,
				NodeID:  n.ID,
				Message: fmt.Sprintf("node type %q is not registered", n.Type),
			})
			continue
		}
		contracts[n.ID] = c
	}

	res.Violations = append(res.Violations, v.checkEdges(def, contracts)...)
	res.Violations = append(res.Violations, v.checkRequiredInputs(def, contracts)...)
	res.Violations = append(res.Violations, v.checkAcyclic(def, seen)...)
	res.Violations = append(res.Violations, v.checkTerminal(def, contracts)...)
	return res
}

func (v *Validator) checkEdges(def *Definition, contracts map[string]Contract) []Violation {
	var out []Violation
	producers := make(map[string]string) // target.handle -> first producing edge

	for _, e := range def.Edges {
		src, srcOK := contracts[e.Source]
		if _, exists := def.Node(e.Source); !exists {
			out = append(out, Violation{
				Rule:    RuleUnknownNode,
				Edge:    e.String(),
				Message: fmt.Sprintf("source node %q does not exist", e.Source),
			})
			continue
		}
		dst, dstOK := contracts[e.Target]
		if _, exists := def.Node(e.Target); !exists {
			out = append(out, Violation{
				Rule:    RuleUnknownNode,
				Edge:    e.String(),
				Message: fmt.Sprintf("target node %q does not exist", e.Target),
			})
			continue
		}

		var srcHandle, dstHandle HandleSpec
		if srcOK {
			h, ok := src.Output(e.SourceHandle)
			if !ok {
				out = append(out, Violation{
					Rule:    RuleUnknownHandle,
					Edge:    e.String(),
					Message: fmt.Sprintf("node type %q declares no output handle %q", src.Type, e.SourceHandle),
				})
				continue
			}
			srcHandle = h
		}
		if dstOK {
			h, ok := dst.Input(e.TargetHandle)
			if !ok {
				out = append(out, Violation{
					Rule:    RuleUnknownHandle,
					Edge:    e.String(),
					Message: fmt.Sprintf("node type %q declares no input handle %q", dst.Type, e.TargetHandle),
				})
				continue
			}
			dstHandle = h
		}
		if srcOK && dstOK && !srcHandle.Kind.Compatible(dstHandle.Kind) {
			out = append(out, Violation{
				Rule:    RuleKindMismatch,
				Edge:    e.String(),
				Message: fmt.Sprintf("output kind %q cannot feed input kind %q", srcHandle.Kind, dstHandle.Kind),
			})
		}

		key := e.Target + "." + e.TargetHandle
		if prev, dup := producers[key]; dup {
			out = append(out, Violation{
				Rule:    RuleDuplicateProducer,
				Edge:    e.String(),
				Message: fmt.Sprintf("input %s already fed by %s; inputs are single-producer", key, prev),
			})
			continue
		}
		producers[key] = e.String()
	}
	return out
}

func (v *Validator) checkRequiredInputs(def *Definition, contracts map[string]Contract) []Violation {
	var out []Violation
	for _, n := range def.Nodes {
		c, ok := contracts[n.ID]
		if !ok || c.AnyInput {
			// Merge-style nodes accept any subset of their inputs.
			continue
		}
		for _, h := range c.Inputs {
			if !h.Required {
				continue
			}
			wired := false
			for _, e := range def.Incoming(n.ID) {
				if e.TargetHandle == h.Name {
					wired = true
					break
				}
			}
			if !wired {
				out = append(out, Violation{
					Rule:    RuleMissingRequiredInput,
					NodeID:  n.ID,
					Message: fmt.Sprintf("required input %q has no incoming edge", h.Name),
				})
			}
		}
	}
	return out
}

// checkAcyclic runs a depth-first traversal with an explicit recursion stack
// and reports the edge that closes each cycle.
func (v *Validator) checkAcyclic(def *Definition, known map[string]bool) []Violation {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make(map[string]int, len(def.Nodes))
	var out []Violation

	var visit func(id string)
	visit = func(id string) {
		color[id] = grey
		for _, e := range def.Outgoing(id) {
			if !known[e.Target] {
				continue
			}
			switch color[e.Target] {
			case white:
				visit(e.Target)
			case grey:
				out = append(out, Violation{
					Rule:    RuleCycle,
					Edge:    e.String(),
					Message: "edge closes a cycle; workflow graphs must be acyclic",
				})
			}
		}
		color[id] = black
	}

	ids := make([]string, 0, len(def.Nodes))
	for _, n := range def.Nodes {
		ids = append(ids, n.ID)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if color[id] == white {
			visit(id)
		}
	}
	return out
}

func (v *Validator) checkTerminal(def *Definition, contracts map[string]Contract) []Violation {
	var terminals []string
	for _, n := range def.Nodes {
		if c, ok := contracts[n.ID]; ok && c.Terminal {
			terminals = append(terminals, n.ID)
		}
	}
	switch {
	case len(terminals) == 0:
		return []Violation{{
			Rule:    RuleNoTerminal,
			Message: "incomplete workflow: no response node present",
		}}
	case len(terminals) > 1:
		var out []Violation
		for _, id := range terminals[1:] {
			out = append(out, Violation{
				Rule:    RuleMultipleTerminals,
				NodeID:  id,
				Message: "workflow must have exactly one response node",
			})
		}
		return out
	}

	terminal := terminals[0]
	if !v.reachable(def, terminal) {
		return []Violation{{
			Rule:    RuleUnreachableTerminal,
			NodeID:  terminal,
			Message: "response node is not reachable from any entry node",
		}}
	}
	return nil
}

// reachable reports whether target can be reached following edges forward
// from the nodes with no incoming edges.
func (v *Validator) reachable(def *Definition, target string) bool {
	indeg := make(map[string]int, len(def.Nodes))
	for _, n := range def.Nodes {
		indeg[n.ID] = 0
	}
	for _, e := range def.Edges {
		if _, ok := indeg[e.Target]; ok {
			indeg[e.Target]++
		}
	}

	visited := make(map[string]bool, len(def.Nodes))
	var walk func(id string)
	walk = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		for _, e := range def.Outgoing(id) {
			walk(e.Target)
		}
	}
	for id, d := range indeg {
		if d == 0 {
			walk(id)
		}
	}
	return visited[target]
}
