// Package nodes implements the node registry and the built-in executors.
// Each executor is a pure function of (config, inputs, providers): no hidden
// state survives between invocations, and failures are returned as errors
// for the scheduler to capture, never panics.
package nodes

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// Request is everything an executor may consult for one invocation. Inputs
// hold only the handles that survived pruning; Config is the raw editor map.
type Request struct {
	NodeID    string
	Config    map[string]any
	Inputs    map[string]any
	Run       types.RunInput
	Providers *providers.Bundle
	Log       zerolog.Logger
}

// Executor is the single dispatch contract every node type implements.
type Executor interface {
	// Contract declares the node's typed input and output handles.
	Contract() workflow.Contract
	// Execute performs the node's work. The returned error marks the node
	// as failed; recoverable conditions (no regex match, empty retrieval)
	// are ordinary outputs.
	Execute(ctx context.Context, req Request) (types.NodeResult, error)
}

// Registry maps node type tags to executors. It is populated during process
// startup and read-only afterwards, so lookups are safe across concurrent
// runs.
type Registry struct {
	executors map[string]Executor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{executors: make(map[string]Executor)}
}

// Register adds an executor under its contract's type tag.
func (r *Registry) Register(e Executor) error {
	tag := e.Contract().Type
	if tag == "" {
		return errors.New("executor contract has no type tag")
	}
	if _, exists := r.executors[tag]; exists {
		return errors.Errorf("node type %q already registered", tag)
	}
	r.executors[tag] = e
	return nil
}

// Lookup resolves a type tag to its executor.
func (r *Registry) Lookup(nodeType string) (Executor, bool) {
	e, ok := r.executors[nodeType]
	return e, ok
}

// Contract implements workflow.ContractSource.
func (r *Registry) Contract(nodeType string) (workflow.Contract, bool) {
	e, ok := r.executors[nodeType]
	if !ok {
		return workflow.Contract{}, false
	}
	return e.Contract(), true
}

// Types lists the registered type tags in sorted order.
func (r *Registry) Types() []string {
	tags := make([]string, 0, len(r.executors))
	for tag := range r.executors {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Builtins returns a registry with every built-in node type.
func Builtins() *Registry {
	r := NewRegistry()
	for _, e := range []Executor{
		&QueryNode{},
		&TextInputNode{},
		&ResponseNode{},
		&LanguageModelNode{},
		&KnowledgeBaseRetrievalNode{},
		&WebSearchNode{},
		&SummaryNode{},
		&IntentClassificationNode{},
		&ConditionalNode{},
		&MergeNode{},
		&RegexExtractorNode{},
		&TextTransformNode{},
		&CustomAPINode{},
		&EmailNode{},
		&DebugNode{},
		&DocumentLoaderNode{},
	} {
		if err := r.Register(e); err != nil {
			// Duplicate built-in registration is a programming error.
			panic(err)
		}
	}
	return r
}

// decodeConfig maps the editor's loosely typed config values onto a typed
// struct. Weak decoding mirrors what the editor actually sends: booleans as
// "true"/"false" strings, numbers as strings, and so on.
func decodeConfig(cfg map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, "building config decoder")
	}
	if err := dec.Decode(cfg); err != nil {
		return errors.Wrap(err, "decoding node config")
	}
	return nil
}

// asString renders an input value the way it should appear in text handles.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", t)
	}
}

func trimmedString(v any) string {
	return strings.TrimSpace(asString(v))
}

func result(outputs map[string]any, effects ...types.SideEffect) types.NodeResult {
	return types.NodeResult{Outputs: outputs, SideEffects: effects}
}
