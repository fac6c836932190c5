package filter

import "fmt"

// CompilationError reports an expression that failed to compile
type CompilationError struct {
	Expression string
	Reason     string
	Err        error
}

func (e *CompilationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to compile filter %q: %s: %v", e.Expression, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to compile filter %q: %s", e.Expression, e.Reason)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError reports an expression that compiled but failed at runtime
type EvaluationError struct {
	Expression string
	Err        error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("failed to evaluate filter %q: %v", e.Expression, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
