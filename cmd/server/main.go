package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vanshika/pathfinder/internal/config"
	"github.com/vanshika/pathfinder/internal/graph"
	"github.com/vanshika/pathfinder/internal/logging"
	"github.com/vanshika/pathfinder/internal/metrics"
	"github.com/vanshika/pathfinder/internal/repository"
	"github.com/vanshika/pathfinder/internal/server"
	"github.com/vanshika/pathfinder/internal/service"
	"github.com/vanshika/pathfinder/internal/tracing"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	if cfg.Tracing.Enabled {
		tp := tracing.NewProvider(cfg.Tracing, logger)
		tracing.Install(tp)
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("tracer shutdown failed", "error", err)
			}
		}()
	}

	graphClient, err := buildGraphClient(ctx, logger, cfg)
	if err != nil {
		logger.Error("failed to create graph client", "error", err)
		os.Exit(1)
	}
	defer func() {
		if graphClient != nil {
			if err := graphClient.Close(context.Background()); err != nil {
				logger.Warn("closing graph client failed", "error", err)
			}
		}
	}()

	settings, err := service.SettingsFromConfig(cfg.Solver)
	if err != nil {
		logger.Error("invalid solver settings", "error", err)
		os.Exit(1)
	}

	var networks service.NetworkSource
	if graphClient != nil {
		networks = repository.New(graphClient)
	}
	routeService := service.NewRouteService(settings, networks)

	var m *metrics.Metrics
	if cfg.HTTP.MetricsEnabled {
		m = metrics.New()
		routeService.WithMetrics(m)
	}

	batch, err := service.NewBatchSolver(routeService, cfg.Solver.BatchWorkers)
	if err != nil {
		logger.Error("failed to create batch solver", "error", err)
		os.Exit(1)
	}
	defer batch.Release()

	routeHandlers := server.NewRouteHandlers(logger, routeService, batch, server.HandlerOptions{
		MaxBatchSize: cfg.Solver.MaxBatchSize,
	})

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.NetworkSourceHealth{Client: graphClient},
		Routes:           routeHandlers,
		Metrics:          m,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildGraphClient returns a nil client when no graph URI is configured; the
// service then answers inline requests only.
func buildGraphClient(ctx context.Context, logger *slog.Logger, cfg config.Config) (graph.Client, error) {
	if cfg.Graph.URI == "" {
		logger.Info("no graph URI configured, network routes disabled")
		return nil, nil
	}

	return graph.NewNeo4jClient(ctx, cfg.Graph)
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
