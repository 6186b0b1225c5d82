package types

import "time"

// TraceEvent records the execution of a single node. Events are appended by
// the scheduler in completion order and never mutated afterwards; input and
// output maps are deep copies taken at dispatch time.
type TraceEvent struct {
	NodeID      string         `json:"node_id"`
	NodeType    string         `json:"node_type"`
	Status      NodeStatus     `json:"status"`
	SkipReason  SkipReason     `json:"skip_reason,omitempty"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Inputs      map[string]any `json:"inputs,omitempty"`
	Outputs     map[string]any `json:"outputs,omitempty"`
	SideEffects []SideEffect   `json:"side_effects,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// RunResult is returned for every run, including failed and cancelled ones,
// so callers can always inspect the trace.
type RunResult struct {
	RunID  string       `json:"run_id"`
	Status RunStatus    `json:"status"`
	Output string       `json:"output,omitempty"`
	Trace  []TraceEvent `json:"trace"`
	Error  string       `json:"error,omitempty"`
}
