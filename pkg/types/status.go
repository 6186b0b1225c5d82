package types

// RunStatus represents the terminal state of a workflow run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
	RunCancelled RunStatus = "cancelled"
)

// NodeStatus represents the outcome of a single node within a run.
type NodeStatus string

const (
	NodeSucceeded NodeStatus = "succeeded"
	NodeFailed    NodeStatus = "failed"
	NodeSkipped   NodeStatus = "skipped"
)

// SkipReason explains why a node was skipped rather than executed.
type SkipReason string

const (
	// SkipMissingInput means a required input handle had no producing edge.
	SkipMissingInput SkipReason = "missing_input"
	// SkipPruned means every path to a required input traces back to an
	// untaken conditional branch or a failed, isolated subtree.
	SkipPruned SkipReason = "pruned"
)
