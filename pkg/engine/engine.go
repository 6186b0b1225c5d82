// Package engine drives workflow runs: it validates the definition, orders
// the nodes topologically and executes them one by one, pruning branches the
// conditionals did not take. Each run owns an isolated execution context, so
// concurrent runs never share mutable state.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/convoflow/convoflow/pkg/nodes"
	"github.com/convoflow/convoflow/pkg/providers"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// Engine executes workflow definitions. It is read-only after construction
// and safe for concurrent use.
type Engine struct {
	registry  *nodes.Registry
	validator *workflow.Validator
	providers *providers.Bundle
	log       zerolog.Logger
	now       func() time.Time
	newRunID  func() string

	timeouts       map[string]time.Duration
	defaultTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the built-in node registry.
func WithRegistry(r *nodes.Registry) Option {
	return func(e *Engine) { e.registry = r }
}

// WithProviders sets the provider bundle handed to every node.
func WithProviders(b *providers.Bundle) Option {
	return func(e *Engine) { e.providers = b }
}

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithClock replaces the trace timestamp source. Tests use this to assert on
// deterministic timings.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRunID replaces the run id generator.
func WithRunID(gen func() string) Option {
	return func(e *Engine) { e.newRunID = gen }
}

// WithNodeTimeout bounds every execution of the given node type. Expiry is
// surfaced as a provider error on the node, never a process fault.
func WithNodeTimeout(nodeType string, d time.Duration) Option {
	return func(e *Engine) { e.timeouts[nodeType] = d }
}

// WithDefaultTimeout bounds node types without an explicit timeout. Zero
// means unbounded.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Engine) { e.defaultTimeout = d }
}

// New builds an engine over the built-in node set unless WithRegistry says
// otherwise.
func New(opts ...Option) *Engine {
	e := &Engine{
		log:      zerolog.Nop(),
		now:      time.Now,
		newRunID: uuid.NewString,
		timeouts: make(map[string]time.Duration),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = nodes.Builtins()
	}
	e.validator = workflow.NewValidator(e.registry)
	return e
}

// Validate checks the definition without executing it.
func (e *Engine) Validate(def *workflow.Definition) workflow.ValidationResult {
	return e.validator.Validate(def)
}

// Execute validates the definition and runs it to completion. The returned
// RunResult always carries the trace, including on failure and cancellation;
// the error is non-nil for validation failures and critical-path node
// failures. Cancellation is reported through the result status alone.
func (e *Engine) Execute(ctx context.Context, def *workflow.Definition, input types.RunInput) (types.RunResult, error) {
	runID := e.newRunID()
	if err := e.validator.Validate(def).Err(); err != nil {
		return types.RunResult{
			RunID:  runID,
			Status: types.RunFailed,
			Error:  err.Error(),
		}, err
	}

	r := newRun(e, runID, def, input)
	return r.execute(ctx)
}

// timeoutFor returns the execution bound for a node type, zero for none.
func (e *Engine) timeoutFor(nodeType string) time.Duration {
	if d, ok := e.timeouts[nodeType]; ok {
		return d
	}
	return e.defaultTimeout
}
