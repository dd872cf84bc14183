package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vanshika/pathfinder/internal/config"
	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/generator"
	"github.com/vanshika/pathfinder/internal/graph"
	"github.com/vanshika/pathfinder/internal/logging"
	"github.com/vanshika/pathfinder/internal/repository"
	"github.com/vanshika/pathfinder/internal/service"
)

var errNoInput = errors.New("no request files given")

func main() {
	var (
		workers = flag.Int("workers", 0, "Number of concurrent solver workers (defaults to solver.batch_workers)")
		network = flag.String("network", "", "Solve a named network from the graph database instead of request files")
		start   = flag.String("start", "", "Start node for -network")
		asJSON  = flag.Bool("json", false, "Print results as JSON")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "solve")

	settings, err := service.SettingsFromConfig(cfg.Solver)
	if err != nil {
		logger.Error("invalid solver settings", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *network != "" {
		if err := solveNetwork(ctx, logger, cfg, settings, *network, *start, *asJSON); err != nil {
			logger.Error("network solve failed", "error", err, "network", *network)
			os.Exit(1)
		}
		return
	}

	var reqs []service.RouteRequest
	for _, path := range flag.Args() {
		loaded, err := generator.ReadRequests(path)
		if err != nil {
			logger.Error("failed to load requests", "error", err, "path", path)
			os.Exit(1)
		}
		for _, r := range loaded {
			reqs = append(reqs, r.RouteRequest())
		}
	}
	if len(reqs) == 0 {
		logger.Error("nothing to solve", "error", errNoInput)
		os.Exit(2)
	}

	if *workers <= 0 {
		*workers = cfg.Solver.BatchWorkers
	}
	batch, err := service.NewBatchSolver(service.NewRouteService(settings, nil), *workers)
	if err != nil {
		logger.Error("failed to create batch solver", "error", err)
		os.Exit(1)
	}
	defer batch.Release()

	began := time.Now()
	logger.Info("solving requests", "count", len(reqs), "workers", batch.Workers())
	outcomes, err := batch.SolveAll(ctx, reqs)
	for _, out := range outcomes {
		if out.Err != nil {
			fmt.Fprintf(os.Stdout, "request %d: %v\n", out.Index, out.Err)
			continue
		}
		if err := printResult(os.Stdout, out.Result, *asJSON); err != nil {
			logger.Error("failed to print result", "error", err)
		}
	}
	logger.Info("solve complete", "duration", time.Since(began).String(), "requests", len(reqs))

	var taskErr *service.TaskError
	if errors.As(err, &taskErr) {
		logger.Warn("some requests failed", "failed", len(taskErr.Errors))
		os.Exit(1)
	}
	if err != nil {
		logger.Error("batch interrupted", "error", err)
		os.Exit(1)
	}
}

func solveNetwork(ctx context.Context, logger *slog.Logger, cfg config.Config, settings service.Settings, name, start string, asJSON bool) error {
	if start == "" {
		return errors.New("-start is required with -network")
	}
	client, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(context.Background()); err != nil {
			logger.Warn("closing graph client failed", "error", err)
		}
	}()

	svc := service.NewRouteService(settings, repository.New(client))
	res, err := svc.SolveNetwork(ctx, name, domain.NodeID(start))
	if err != nil {
		return err
	}
	return printResult(os.Stdout, res, asJSON)
}

type jsonRoute struct {
	Node     string   `json:"node"`
	Distance *float64 `json:"distance"`
	Path     []string `json:"path"`
}

func printResult(w io.Writer, res domain.Result, asJSON bool) error {
	if asJSON {
		routes := make([]jsonRoute, 0, len(res.Order))
		for _, node := range res.Order {
			r := jsonRoute{Node: string(node), Path: []string{}}
			if res.Reachable(node) {
				d := res.Distances[node]
				r.Distance = &d
			}
			for _, hop := range res.Paths[node] {
				r.Path = append(r.Path, string(hop))
			}
			routes = append(routes, r)
		}
		return json.NewEncoder(w).Encode(map[string]any{"start_node": res.Start, "results": routes})
	}

	fmt.Fprintf(w, "from %s\n", res.Start)
	for _, node := range res.Order {
		d := res.Distances[node]
		if math.IsInf(d, 1) {
			fmt.Fprintf(w, "  %s\tinf\n", node)
			continue
		}
		fmt.Fprintf(w, "  %s\t%g\t%s\n", node, d, res.Paths[node])
	}
	return nil
}

func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		return nil, fmt.Errorf("GRAPH_URI is required for -network")
	}
	client, err := graph.NewNeo4jClient(ctx, cfg.Graph)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to graph", "uri", cfg.Graph.URI, "database", cfg.Graph.Database)
	return client, nil
}
