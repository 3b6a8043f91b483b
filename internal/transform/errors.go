// Package transform turns a taxonomy skill into a five-level People Protocol
// rubric via one completion call, recovering and validating the JSON reply.
package transform

import (
	"fmt"
	"strings"
)

// ErrInvalidRubricShape indicates the completion produced JSON that does not
// match the rubric contract (missing fields, wrong level keys, non-string
// statements).
type ErrInvalidRubricShape struct {
	Reason string
}

func (e *ErrInvalidRubricShape) Error() string {
	return fmt.Sprintf("completion does not match rubric shape: %s", e.Reason)
}

// ErrSparseLevels indicates one or more levels carried fewer than the
// minimum number of statements. Only raised when enforcement is enabled.
type ErrSparseLevels struct {
	Levels []string
}

func (e *ErrSparseLevels) Error() string {
	return fmt.Sprintf("levels with fewer than %d statements: %s", minStatementsPerLevel, strings.Join(e.Levels, ", "))
}
