package service

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEdge is returned when an edge record lacks source, target or weight.
	// The engine is never invoked for such requests.
	ErrMalformedEdge = errors.New("malformed edges")
	// ErrNoNetworkSource is returned by network operations when no graph database is configured.
	ErrNoNetworkSource = errors.New("no network source configured")
)

// ComputationError wraps any failure while building the graph or relaxing it.
// No partial results accompany it.
type ComputationError struct {
	Op  string
	Err error
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ComputationError) Unwrap() error {
	return e.Err
}

// IsClientError reports whether err stems from the caller's input rather than
// from an upstream dependency.
func IsClientError(err error) bool {
	var compErr *ComputationError
	return errors.Is(err, ErrMalformedEdge) || errors.As(err, &compErr)
}

// TaskError accumulates the failures of a batch, one entry per failed item.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}
