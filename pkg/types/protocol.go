package types

// Message is a single turn of conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RunInput carries the user-facing payload of a single workflow run.
type RunInput struct {
	Query   string    `json:"query"`
	History []Message `json:"history,omitempty"`
}

// SideEffect describes an external action a node performed (or attempted).
// Side effects are best-effort; they are recorded for the trace, never
// replayed or rolled back.
type SideEffect struct {
	Kind   string         `json:"kind"`
	Detail map[string]any `json:"detail,omitempty"`
}

// NodeResult is what an executor hands back to the scheduler: the values it
// produced per output handle plus any side effects it performed. Execution
// failures travel on the executor's error return, not inside the result.
type NodeResult struct {
	Outputs     map[string]any
	SideEffects []SideEffect
}
