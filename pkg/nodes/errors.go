package nodes

import "fmt"

// EvaluationError marks a logic fault inside a node: an unparseable
// expression, an unknown operator, an invalid regex pattern, or a type
// mismatch between operands.
type EvaluationError struct {
	Detail string
	Err    error
}

func (e *EvaluationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("evaluation error: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("evaluation error: %s", e.Detail)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError is returned by the document loader for file formats
// it cannot parse.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document format %q", e.Format)
}
