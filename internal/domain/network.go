package domain

// Network is a named graph loaded from an external graph source.
type Network struct {
	Name  string
	Nodes []NodeID
	Edges []Edge
}

// NetworkSummary describes a network without its edges.
type NetworkSummary struct {
	Name      string
	NodeCount int64
	EdgeCount int64
}
