package workflow

import (
	"fmt"
	"strings"
)

// Rule identifies the structural invariant a violation broke.
type Rule string

const (
	RuleUnknownNodeType      Rule = "unknown_node_type"
	RuleUnknownNode          Rule = "unknown_node"
	RuleDuplicateNode        Rule = "duplicate_node"
	RuleUnknownHandle        Rule = "unknown_handle"
	RuleKindMismatch         Rule = "kind_mismatch"
	RuleDuplicateProducer    Rule = "duplicate_producer"
	RuleMissingRequiredInput Rule = "missing_required_input"
	RuleCycle                Rule = "cycle"
	RuleNoTerminal           Rule = "no_terminal_node"
	RuleMultipleTerminals    Rule = "multiple_terminal_nodes"
	RuleUnreachableTerminal  Rule = "unreachable_terminal"
)

// Violation names one offending node or edge and the rule it broke.
type Violation struct {
	Rule    Rule   `json:"rule"`
	NodeID  string `json:"node_id,omitempty"`
	Edge    string `json:"edge,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	switch {
	case v.Edge != "":
		return fmt.Sprintf("%s: edge %s: %s", v.Rule, v.Edge, v.Message)
	case v.NodeID != "":
		return fmt.Sprintf("%s: node %q: %s", v.Rule, v.NodeID, v.Message)
	default:
		return fmt.Sprintf("%s: %s", v.Rule, v.Message)
	}
}

// ValidationResult is the outcome of validating a definition. A result with
// no violations is valid.
type ValidationResult struct {
	Violations []Violation
}

// OK reports whether the definition passed every structural check.
func (r ValidationResult) OK() bool {
	return len(r.Violations) == 0
}

// Err returns an InvalidDefinitionError carrying the violations, or nil when
// the result is valid.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	return &InvalidDefinitionError{Violations: r.Violations}
}

// InvalidDefinitionError is returned when a run is attempted against a
// definition that fails validation. The run never starts.
type InvalidDefinitionError struct {
	Violations []Violation
}

func (e *InvalidDefinitionError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.String()
	}
	return fmt.Sprintf("invalid workflow definition: %s", strings.Join(msgs, "; "))
}
