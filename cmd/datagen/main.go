package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/vanshika/pathfinder/internal/generator"
)

func main() {
	cfg := generator.DefaultConfig()
	var (
		requests      = flag.Int("requests", cfg.NumRequests, "number of route requests to generate")
		nodes         = flag.Int("nodes", cfg.NumNodes, "nodes per generated graph")
		outDegree     = flag.Float64("out-degree", cfg.OutDegree, "mean outgoing edges per node")
		maxWeight     = flag.Int("max-weight", cfg.MaxWeight, "largest edge weight")
		isolateChance = flag.Float64("isolate-chance", cfg.DisconnectedChance, "probability that a node receives no edges")
		seed          = flag.Int64("seed", cfg.Seed, "random seed for deterministic generation")
		outputDir     = flag.String("output-dir", "data", "directory to write request files and batch.json")
		writeStdout   = flag.Bool("stdout", false, "write the batch to stdout instead of files")
	)
	flag.Parse()

	genCfg := generator.Config{
		NumRequests:        *requests,
		NumNodes:           *nodes,
		OutDegree:          *outDegree,
		MaxWeight:          *maxWeight,
		DisconnectedChance: clampProbability(*isolateChance),
		Seed:               *seed,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gen := generator.New(genCfg)
	dataset, err := gen.Generate(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generation failed: %v\n", err)
		os.Exit(1)
	}

	if *writeStdout {
		if err := json.NewEncoder(os.Stdout).Encode(dataset); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write dataset to stdout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.WriteDataset(dataset, *outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stdout, "Generated %d requests of %d nodes into %s\n", len(dataset.Requests), genCfg.NumNodes, *outputDir)
}

func clampProbability(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
