package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedContracts is a minimal ContractSource for validator tests: a source
// node, a required-input processor, a merge and a terminal sink.
type fixedContracts map[string]Contract

func (f fixedContracts) Contract(nodeType string) (Contract, bool) {
	c, ok := f[nodeType]
	return c, ok
}

func testContracts() fixedContracts {
	return fixedContracts{
		"source": {
			Type:    "source",
			Outputs: []HandleSpec{{Name: "out", Kind: KindText}},
		},
		"process": {
			Type:    "process",
			Inputs:  []HandleSpec{{Name: "in", Kind: KindText, Required: true}},
			Outputs: []HandleSpec{{Name: "out", Kind: KindText}},
		},
		"numeric": {
			Type:    "numeric",
			Inputs:  []HandleSpec{{Name: "in", Kind: KindNumber, Required: true}},
			Outputs: []HandleSpec{{Name: "out", Kind: KindNumber}},
		},
		"merge": {
			Type:     "merge",
			AnyInput: true,
			Inputs: []HandleSpec{
				{Name: "input1", Kind: KindAny},
				{Name: "input2", Kind: KindAny},
			},
			Outputs: []HandleSpec{{Name: "out", Kind: KindAny}},
		},
		"sink": {
			Type:     "sink",
			Terminal: true,
			Inputs:   []HandleSpec{{Name: "in", Kind: KindAny, Required: true}},
			Outputs:  []HandleSpec{{Name: "final", Kind: KindText}},
		},
	}
}

func validDefinition() *Definition {
	return &Definition{
		Nodes: []NodeSpec{
			{ID: "a", Type: "source"},
			{ID: "b", Type: "process"},
			{ID: "z", Type: "sink"},
		},
		Edges: []Edge{
			{Source: "a", SourceHandle: "out", Target: "b", TargetHandle: "in"},
			{Source: "b", SourceHandle: "out", Target: "z", TargetHandle: "in"},
		},
	}
}

func rules(res ValidationResult) []Rule {
	out := make([]Rule, 0, len(res.Violations))
	for _, v := range res.Violations {
		out = append(out, v.Rule)
	}
	return out
}

func TestValidDefinitionPasses(t *testing.T) {
	v := NewValidator(testContracts())
	res := v.Validate(validDefinition())
	assert.True(t, res.OK(), "violations: %v", res.Violations)
	assert.NoError(t, res.Err())
}

func TestValidationIsIdempotent(t *testing.T) {
	v := NewValidator(testContracts())
	def := validDefinition()
	first := v.Validate(def)
	second := v.Validate(def)
	assert.Equal(t, first, second)
}

func TestUnknownNodeType(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeSpec{ID: "x", Type: "bogus"})

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleUnknownNodeType)
}

func TestDuplicateNodeID(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeSpec{ID: "a", Type: "source"})

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleDuplicateNode)
}

func TestEdgeToMissingNode(t *testing.T) {
	def := validDefinition()
	def.Edges = append(def.Edges, Edge{Source: "a", SourceHandle: "out", Target: "ghost", TargetHandle: "in"})

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleUnknownNode)
}

func TestUndeclaredHandle(t *testing.T) {
	def := validDefinition()
	def.Edges[0].SourceHandle = "nope"

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleUnknownHandle)
}

func TestKindMismatch(t *testing.T) {
	def := validDefinition()
	def.Nodes[1] = NodeSpec{ID: "b", Type: "numeric"}

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleKindMismatch)
}

func TestDuplicateProducer(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeSpec{ID: "a2", Type: "source"})
	def.Edges = append(def.Edges, Edge{Source: "a2", SourceHandle: "out", Target: "b", TargetHandle: "in"})

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleDuplicateProducer)
}

func TestMissingRequiredInput(t *testing.T) {
	def := validDefinition()
	def.Edges = def.Edges[1:] // b.in left unwired

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleMissingRequiredInput)
}

func TestMergeInputsAreOptional(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeSpec{ID: "m", Type: "merge"})

	res := NewValidator(testContracts()).Validate(def)
	assert.True(t, res.OK(), "violations: %v", res.Violations)
}

func TestCycleCitesClosingEdge(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeSpec{ID: "c", Type: "process"})
	def.Edges = append(def.Edges,
		Edge{Source: "b", SourceHandle: "out", Target: "c", TargetHandle: "in"},
		Edge{Source: "c", SourceHandle: "out", Target: "b", TargetHandle: "in"},
	)

	res := NewValidator(testContracts()).Validate(def)
	require.False(t, res.OK())

	var cycleEdges []string
	for _, v := range res.Violations {
		if v.Rule == RuleCycle {
			cycleEdges = append(cycleEdges, v.Edge)
		}
	}
	require.NotEmpty(t, cycleEdges)
	assert.Contains(t, cycleEdges, Edge{Source: "c", SourceHandle: "out", Target: "b", TargetHandle: "in"}.String())
}

func TestNoTerminalNode(t *testing.T) {
	def := validDefinition()
	def.Nodes = def.Nodes[:2]
	def.Edges = def.Edges[:1]

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleNoTerminal)
}

func TestMultipleTerminalNodes(t *testing.T) {
	def := validDefinition()
	def.Nodes = append(def.Nodes, NodeSpec{ID: "z2", Type: "sink"})
	def.Edges = append(def.Edges, Edge{Source: "b", SourceHandle: "out", Target: "z2", TargetHandle: "in"})

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleMultipleTerminals)
}

func TestUnreachableTerminal(t *testing.T) {
	// The sink hangs off a two-node cycle, so no entry node reaches it.
	def := &Definition{
		Nodes: []NodeSpec{
			{ID: "a", Type: "source"},
			{ID: "b", Type: "process"},
			{ID: "c", Type: "process"},
			{ID: "z", Type: "sink"},
		},
		Edges: []Edge{
			{Source: "b", SourceHandle: "out", Target: "c", TargetHandle: "in"},
			{Source: "c", SourceHandle: "out", Target: "b", TargetHandle: "in"},
			{Source: "b", SourceHandle: "out", Target: "z", TargetHandle: "in"},
		},
	}

	res := NewValidator(testContracts()).Validate(def)
	assert.Contains(t, rules(res), RuleCycle)
	assert.Contains(t, rules(res), RuleUnreachableTerminal)
}

func TestViolationStringsNameTheOffender(t *testing.T) {
	def := validDefinition()
	def.Edges[0].SourceHandle = "nope"

	res := NewValidator(testContracts()).Validate(def)
	require.False(t, res.OK())
	err := res.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.nope -> b.in")
}
