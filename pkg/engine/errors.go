package engine

import "fmt"

// NodeExecutionError is returned when a node on the critical path to the
// response node fails. The run's partial trace travels on the RunResult, not
// on the error.
type NodeExecutionError struct {
	NodeID   string
	NodeType string
	Err      error
}

func (e *NodeExecutionError) Error() string {
	return fmt.Sprintf("node %s (%s) failed: %v", e.NodeID, e.NodeType, e.Err)
}

func (e *NodeExecutionError) Unwrap() error {
	return e.Err
}
