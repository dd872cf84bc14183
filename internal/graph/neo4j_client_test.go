package graph

import (
	"context"
	"testing"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/pathfinder/internal/config"
)

func TestNewNeo4jClient_MissingURI(t *testing.T) {
	_, err := NewNeo4jClient(context.Background(), config.GraphConfig{})
	assert.ErrorIs(t, err, ErrMissingURI)
}

func TestNewNeo4jClient_UnsupportedScheme(t *testing.T) {
	_, err := NewNeo4jClient(context.Background(), config.GraphConfig{URI: "http://localhost:7474"})
	assert.ErrorContains(t, err, "create neo4j driver")
}

func TestTxOptions(t *testing.T) {
	c := &neo4jClient{txTimeout: 3 * time.Second}

	var txCfg neo4j.TransactionConfig
	for _, opt := range c.txOptions() {
		opt(&txCfg)
	}
	assert.Equal(t, 3*time.Second, txCfg.Timeout)
	require.Equal(t, "load_network", txCfg.Metadata["purpose"])

	var untimed neo4j.TransactionConfig
	for _, opt := range (&neo4jClient{}).txOptions() {
		opt(&untimed)
	}
	assert.Zero(t, untimed.Timeout)
}
