package builder

import "errors"

var (
	// ErrMalformedEdge indicates an edge record lacks a source, target, or weight.
	ErrMalformedEdge = errors.New("malformed edge")
	// ErrInvalidNodeCount indicates the declared node count is not a positive integer.
	ErrInvalidNodeCount = errors.New("node count must be a positive integer")
	// ErrTooManyNodes indicates the declared node count exceeds the configured limit.
	ErrTooManyNodes = errors.New("node count exceeds limit")
	// ErrInvalidWeight indicates a negative, NaN or infinite edge weight.
	ErrInvalidWeight = errors.New("edge weight must be a finite non-negative number")
	// ErrWeightOverflow indicates the edge weights sum past the largest float64,
	// so some path costs could not be represented.
	ErrWeightOverflow = errors.New("total edge weight overflows float64")
	// ErrUnknownNode indicates an edge endpoint outside the declared node set.
	ErrUnknownNode = errors.New("edge references undeclared node")
	// ErrDuplicateEdge indicates a repeated (source, target) pair under DuplicateReject.
	ErrDuplicateEdge = errors.New("duplicate edge")
)
