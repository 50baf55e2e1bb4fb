package entailment

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedAxiomKind is returned for axiom kinds without an
	// entailment rule
	ErrUnsupportedAxiomKind = errors.New("unsupported axiom kind")

	// ErrCycleDetected is returned when a check re-enters itself on an axiom
	// already being evaluated, or the evaluation chain exceeds the depth
	// limit. It means "cannot determine", not "not entailed".
	ErrCycleDetected = errors.New("entailment cycle detected")
)

// OracleError wraps a failure reported by the Oracle or KnowledgeBase
type OracleError struct {
	Op  string
	Err error
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle %s: %v", e.Op, e.Err)
}

func (e *OracleError) Unwrap() error {
	return e.Err
}

func oracleFailure(op string, err error) error {
	return &OracleError{Op: op, Err: err}
}
