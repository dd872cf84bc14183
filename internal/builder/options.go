package builder

import (
	"fmt"
	"strings"
)

// DuplicatePolicy decides what happens when two edges share a (source, target) pair.
type DuplicatePolicy int

const (
	// DuplicateLastWins keeps the weight of the later edge.
	DuplicateLastWins DuplicatePolicy = iota
	// DuplicateKeepMin keeps the smallest weight seen.
	DuplicateKeepMin
	// DuplicateReject fails the build with ErrDuplicateEdge.
	DuplicateReject
)

func (p DuplicatePolicy) String() string {
	switch p {
	case DuplicateKeepMin:
		return "keep_min"
	case DuplicateReject:
		return "reject"
	default:
		return "last_wins"
	}
}

// ParseDuplicatePolicy maps a configuration value onto a DuplicatePolicy.
// An empty value selects DuplicateLastWins.
func ParseDuplicatePolicy(value string) (DuplicatePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "last_wins", "last-wins":
		return DuplicateLastWins, nil
	case "keep_min", "keep-min", "min":
		return DuplicateKeepMin, nil
	case "reject":
		return DuplicateReject, nil
	default:
		return DuplicateLastWins, fmt.Errorf("unknown duplicate policy %q", value)
	}
}

// EndpointPolicy decides what happens to edges whose endpoints were never declared.
type EndpointPolicy int

const (
	// EndpointReject fails the build with ErrUnknownNode.
	EndpointReject EndpointPolicy = iota
	// EndpointIgnore drops the edge and counts it in Stats.Ignored.
	EndpointIgnore
)

func (p EndpointPolicy) String() string {
	if p == EndpointIgnore {
		return "ignore"
	}
	return "reject"
}

// ParseEndpointPolicy maps a configuration value onto an EndpointPolicy.
// An empty value selects EndpointReject.
func ParseEndpointPolicy(value string) (EndpointPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "reject":
		return EndpointReject, nil
	case "ignore":
		return EndpointIgnore, nil
	default:
		return EndpointReject, fmt.Errorf("unknown endpoint policy %q", value)
	}
}

// Options configures a build.
type Options struct {
	MaxNodes   int
	Duplicates DuplicatePolicy
	Endpoints  EndpointPolicy
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns last-write-wins duplicates, rejected unknown endpoints and no node limit.
func DefaultOptions() Options {
	return Options{
		Duplicates: DuplicateLastWins,
		Endpoints:  EndpointReject,
	}
}

// WithMaxNodes limits the declared node count. Zero or negative disables the limit.
func WithMaxNodes(n int) Option {
	return func(o *Options) { o.MaxNodes = n }
}

// WithDuplicatePolicy selects the duplicate-edge policy.
func WithDuplicatePolicy(p DuplicatePolicy) Option {
	return func(o *Options) { o.Duplicates = p }
}

// WithEndpointPolicy selects the undeclared-endpoint policy.
func WithEndpointPolicy(p EndpointPolicy) Option {
	return func(o *Options) { o.Endpoints = p }
}
