package workflow

// ValueKind classifies the values that flow along edges. Kinds are advisory:
// KindAny on either end of an edge satisfies compatibility.
type ValueKind string

const (
	KindText      ValueKind = "text"
	KindNumber    ValueKind = "number"
	KindBoolean   ValueKind = "boolean"
	KindDocuments ValueKind = "documents"
	KindObject    ValueKind = "object"
	KindAny       ValueKind = "any"
)

// Compatible reports whether a value of kind k may feed a handle of kind
// other.
func (k ValueKind) Compatible(other ValueKind) bool {
	return k == KindAny || other == KindAny || k == other
}

// HandleSpec declares one named input or output slot on a node type.
type HandleSpec struct {
	Name     string
	Kind     ValueKind
	Required bool
}

// Contract is the declared input/output schema of a node type. The validator
// checks edges against it; the scheduler uses it to resolve inputs and to
// locate the terminal response producer.
type Contract struct {
	Type    string
	Inputs  []HandleSpec
	Outputs []HandleSpec

	// AnyInput relaxes input gating: the node executes as long as at least
	// one wired input survived pruning (merge semantics).
	AnyInput bool
	// Terminal marks the node type whose output becomes the run's response.
	Terminal bool
}

// Input returns the input handle declaration by name.
func (c Contract) Input(name string) (HandleSpec, bool) {
	for _, h := range c.Inputs {
		if h.Name == name {
			return h, true
		}
	}
	return HandleSpec{}, false
}

// Output returns the output handle declaration by name.
func (c Contract) Output(name string) (HandleSpec, bool) {
	for _, h := range c.Outputs {
		if h.Name == name {
			return h, true
		}
	}
	return HandleSpec{}, false
}

// ContractSource resolves a node type tag to its declared contract. The node
// registry is the canonical implementation.
type ContractSource interface {
	Contract(nodeType string) (Contract, bool)
}
