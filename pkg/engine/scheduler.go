package engine

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/convoflow/convoflow/internal/deepcopy"
	"github.com/convoflow/convoflow/pkg/nodes"
	"github.com/convoflow/convoflow/pkg/types"
	"github.com/convoflow/convoflow/pkg/workflow"
)

// valueKey addresses one produced value in the run's variable store. Handles
// are single-producer, so the key is unambiguous.
type valueKey struct {
	node   string
	handle string
}

// run is the isolated execution context of a single workflow run. Nothing in
// it is shared with other runs.
type run struct {
	engine *Engine
	id     string
	def    *workflow.Definition
	input  types.RunInput
	log    zerolog.Logger

	contracts map[string]workflow.Contract
	values    map[valueKey]any
	trace     []types.TraceEvent
	critical  map[string]bool
	terminal  string
}

func newRun(e *Engine, id string, def *workflow.Definition, input types.RunInput) *run {
	r := &run{
		engine:    e,
		id:        id,
		def:       def,
		input:     input,
		log:       e.log.With().Str("run_id", id).Logger(),
		contracts: make(map[string]workflow.Contract, len(def.Nodes)),
		values:    make(map[valueKey]any),
	}
	for _, n := range def.Nodes {
		c, _ := e.registry.Contract(n.Type)
		r.contracts[n.ID] = c
		if c.Terminal {
			r.terminal = n.ID
		}
	}
	r.critical = r.reverseReachable(r.terminal)
	return r
}

// execute drives the topological order to completion. It always returns a
// RunResult carrying the trace accumulated so far.
func (r *run) execute(ctx context.Context) (types.RunResult, error) {
	for _, id := range r.order() {
		if ctx.Err() != nil {
			r.log.Warn().Str("node_id", id).Msg("run cancelled")
			return types.RunResult{
				RunID:  r.id,
				Status: types.RunCancelled,
				Trace:  r.trace,
				Error:  ctx.Err().Error(),
			}, nil
		}
		if res, err := r.step(ctx, id); res != nil {
			return *res, err
		}
	}

	return types.RunResult{
		RunID:  r.id,
		Status: types.RunSucceeded,
		Output: r.terminalOutput(),
		Trace:  r.trace,
	}, nil
}

// step runs one node. A non-nil result means the node's outcome ended the
// run.
func (r *run) step(ctx context.Context, id string) (*types.RunResult, error) {
	node, _ := r.def.Node(id)
	contract := r.contracts[id]

	inputs, skip, runnable := r.resolveInputs(node, contract)
	if !runnable {
		if id == r.terminal {
			err := &NodeExecutionError{
				NodeID:   id,
				NodeType: node.Type,
				Err:      errors.Errorf("response node input unavailable (%s)", skip),
			}
			r.record(r.skipEvent(node, skip))
			return r.failed(err), err
		}
		r.log.Debug().Str("node_id", id).Str("reason", string(skip)).Msg("node skipped")
		r.record(r.skipEvent(node, skip))
		return nil, nil
	}

	event := types.TraceEvent{
		NodeID:    id,
		NodeType:  node.Type,
		StartedAt: r.engine.now(),
		Inputs:    deepcopy.Map(inputs),
	}

	result, err := r.dispatch(ctx, node, inputs)
	event.FinishedAt = r.engine.now()
	event.SideEffects = result.SideEffects

	if err != nil {
		event.Status = types.NodeFailed
		event.Error = err.Error()
		r.record(event)

		if r.critical[id] {
			r.log.Error().Err(err).Str("node_id", id).Msg("critical-path node failed")
			nodeErr := &NodeExecutionError{NodeID: id, NodeType: node.Type, Err: err}
			return r.failed(nodeErr), nodeErr
		}
		// Off the critical path: the subtree downstream is pruned, the run
		// goes on.
		r.log.Warn().Err(err).Str("node_id", id).Msg("node failed off the critical path")
		return nil, nil
	}

	for handle, value := range result.Outputs {
		r.values[valueKey{id, handle}] = value
	}
	event.Status = types.NodeSucceeded
	event.Outputs = deepcopy.Map(result.Outputs)
	r.record(event)
	return nil, nil
}

// dispatch invokes the executor with the per-type timeout applied.
func (r *run) dispatch(ctx context.Context, node workflow.NodeSpec, inputs map[string]any) (types.NodeResult, error) {
	executor, ok := r.engine.registry.Lookup(node.Type)
	if !ok {
		// Unreachable after validation; kept as a guard for custom callers.
		return types.NodeResult{}, errors.Errorf("node type %q is not registered", node.Type)
	}

	if d := r.engine.timeoutFor(node.Type); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	r.log.Debug().Str("node_id", node.ID).Str("node_type", node.Type).Msg("executing node")
	return executor.Execute(ctx, nodes.Request{
		NodeID:    node.ID,
		Config:    node.Config,
		Inputs:    inputs,
		Run:       r.input,
		Providers: r.engine.providers,
		Log:       r.log.With().Str("node_id", node.ID).Logger(),
	})
}

// resolveInputs gathers the values bound to the node's input handles and
// decides whether the node may run. A required handle with no producing edge
// means missing_input; a wired handle whose producer delivered nothing means
// the branch was pruned. AnyInput nodes run with whatever survived.
func (r *run) resolveInputs(node workflow.NodeSpec, contract workflow.Contract) (map[string]any, types.SkipReason, bool) {
	incoming := r.def.Incoming(node.ID)
	inputs := make(map[string]any, len(incoming))
	wired := make(map[string]bool, len(incoming))
	for _, e := range incoming {
		wired[e.TargetHandle] = true
		if v, ok := r.values[valueKey{e.Source, e.SourceHandle}]; ok {
			inputs[e.TargetHandle] = v
		}
	}

	if contract.AnyInput {
		if len(incoming) == 0 {
			return nil, types.SkipMissingInput, false
		}
		if len(inputs) == 0 {
			return nil, types.SkipPruned, false
		}
		return inputs, "", true
	}

	pruned := false
	for _, h := range contract.Inputs {
		if !h.Required {
			continue
		}
		if !wired[h.Name] {
			return nil, types.SkipMissingInput, false
		}
		if _, ok := inputs[h.Name]; !ok {
			pruned = true
		}
	}
	if pruned {
		return nil, types.SkipPruned, false
	}
	return inputs, "", true
}

// order computes the topological order with Kahn's algorithm. Ties are broken
// by node id so identical definitions always execute identically.
func (r *run) order() []string {
	indeg := make(map[string]int, len(r.def.Nodes))
	succs := make(map[string][]string, len(r.def.Nodes))
	seen := make(map[valueKey]bool)
	for _, n := range r.def.Nodes {
		indeg[n.ID] = 0
	}
	for _, e := range r.def.Edges {
		pair := valueKey{e.Source, e.Target}
		if seen[pair] {
			// Parallel edges between the same pair count once.
			continue
		}
		seen[pair] = true
		succs[e.Source] = append(succs[e.Source], e.Target)
		indeg[e.Target]++
	}

	var ready []string
	for id, d := range indeg {
		if d == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	order := make([]string, 0, len(r.def.Nodes))
	for len(ready) > 0 {
		id := ready[0]
		ready = ready[1:]
		order = append(order, id)

		released := false
		for _, succ := range succs[id] {
			indeg[succ]--
			if indeg[succ] == 0 {
				ready = append(ready, succ)
				released = true
			}
		}
		if released {
			sort.Strings(ready)
		}
	}
	return order
}

// reverseReachable marks every node from which the target can be reached.
func (r *run) reverseReachable(target string) map[string]bool {
	preds := make(map[string][]string, len(r.def.Nodes))
	for _, e := range r.def.Edges {
		preds[e.Target] = append(preds[e.Target], e.Source)
	}

	marked := make(map[string]bool, len(r.def.Nodes))
	var walk func(id string)
	walk = func(id string) {
		if marked[id] {
			return
		}
		marked[id] = true
		for _, p := range preds[id] {
			walk(p)
		}
	}
	if target != "" {
		walk(target)
	}
	return marked
}

func (r *run) skipEvent(node workflow.NodeSpec, reason types.SkipReason) types.TraceEvent {
	now := r.engine.now()
	return types.TraceEvent{
		NodeID:     node.ID,
		NodeType:   node.Type,
		Status:     types.NodeSkipped,
		SkipReason: reason,
		StartedAt:  now,
		FinishedAt: now,
	}
}

func (r *run) record(event types.TraceEvent) {
	r.trace = append(r.trace, event)
}

func (r *run) failed(err error) *types.RunResult {
	return &types.RunResult{
		RunID:  r.id,
		Status: types.RunFailed,
		Trace:  r.trace,
		Error:  err.Error(),
	}
}

// terminalOutput renders the response node's first declared output handle.
func (r *run) terminalOutput() string {
	contract := r.contracts[r.terminal]
	if len(contract.Outputs) == 0 {
		return ""
	}
	v, ok := r.values[valueKey{r.terminal, contract.Outputs[0].Name}]
	if !ok {
		return ""
	}
	if s, isString := v.(string); isString {
		return s
	}
	return fmt.Sprintf("%v", v)
}
