package generator

// Config drives the synthetic route request generator.
type Config struct {
	NumRequests        int
	NumNodes           int
	OutDegree          float64 // mean outgoing edges per node
	MaxWeight          int
	DisconnectedChance float64 // probability a node receives no edges at all
	Seed               int64
}

// DefaultConfig returns baseline settings suitable for manual testing and benchmarks.
func DefaultConfig() Config {
	return Config{
		NumRequests:        10,
		NumNodes:           50,
		OutDegree:          3,
		MaxWeight:          20,
		DisconnectedChance: 0.1,
		Seed:               42,
	}
}
