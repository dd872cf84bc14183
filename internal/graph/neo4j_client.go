package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/vanshika/pathfinder/internal/config"
)

// txMetadata tags every transaction so network loads can be spotted in the
// server's query log.
var txMetadata = map[string]any{"app": "pathfinder", "purpose": "load_network"}

// NewNeo4jClient establishes a Bolt connection using the official Neo4j driver.
// Queries run as managed read transactions, so a cluster routes them to read
// replicas and the driver retries transient failures for up to cfg.MaxRetryTime.
func NewNeo4jClient(ctx context.Context, cfg config.GraphConfig) (Client, error) {
	if cfg.URI == "" {
		return nil, ErrMissingURI
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		if cfg.MaxConnections > 0 {
			c.MaxConnectionPoolSize = cfg.MaxConnections
		}
		if cfg.MaxRetryTime > 0 {
			c.MaxTransactionRetryTime = cfg.MaxRetryTime
		}
	})
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &neo4jClient{
		driver:    driver,
		database:  cfg.Database,
		txTimeout: cfg.TxTimeout,
	}, nil
}

type neo4jClient struct {
	driver    neo4j.DriverWithContext
	database  string
	txTimeout time.Duration
}

func (c *neo4jClient) ExecuteRead(ctx context.Context, cypher string, params map[string]any) (Result, error) {
	session := c.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: c.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		// Records must be drained before the transaction function returns.
		return collectRecords(ctx, res)
	}, c.txOptions()...)
	if err != nil {
		return Result{}, fmt.Errorf("read transaction: %w", err)
	}
	return out.(Result), nil
}

func (c *neo4jClient) txOptions() []func(*neo4j.TransactionConfig) {
	opts := []func(*neo4j.TransactionConfig){neo4j.WithTxMetadata(txMetadata)}
	if c.txTimeout > 0 {
		opts = append(opts, neo4j.WithTxTimeout(c.txTimeout))
	}
	return opts
}

func (c *neo4jClient) VerifyConnectivity(ctx context.Context) error {
	return c.driver.VerifyConnectivity(ctx)
}

func (c *neo4jClient) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func collectRecords(ctx context.Context, res neo4j.ResultWithContext) (Result, error) {
	var records []Record
	for res.Next(ctx) {
		rec := res.Record()
		record := make(Record, len(rec.Keys))
		for i, key := range rec.Keys {
			record[key] = rec.Values[i]
		}
		records = append(records, record)
	}
	if err := res.Err(); err != nil {
		return Result{}, err
	}
	return Result{Records: records}, nil
}
