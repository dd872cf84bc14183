package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/vanshika/pathfinder/internal/graph"
)

const defaultProbeTimeout = 2 * time.Second

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// NetworkSourceHealth probes the graph database that serves named networks.
// Inline route requests never touch it, so a failed probe degrades the service
// instead of marking it down.
type NetworkSourceHealth struct {
	Client  graph.Client
	Timeout time.Duration
}

// Enabled reports whether a network source is configured at all.
func (s NetworkSourceHealth) Enabled() bool {
	return s.Client != nil
}

// Probe implements the HealthService interface.
func (s NetworkSourceHealth) Probe(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return s.Client.VerifyConnectivity(ctx)
}

type healthResponse struct {
	Status        string `json:"status"`
	NetworkSource string `json:"network_source"`
	Error         string `json:"error,omitempty"`
}

func healthHandler(logger *slog.Logger, health HealthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Status: "ok", NetworkSource: "disabled"}
		if health == nil {
			respondJSON(w, http.StatusOK, resp)
			return
		}
		if e, ok := health.(interface{ Enabled() bool }); !ok || e.Enabled() {
			resp.NetworkSource = "ok"
		}

		status := http.StatusOK
		if err := health.Probe(r.Context()); err != nil {
			logger.Error("health probe failed", "error", err)
			status = http.StatusServiceUnavailable
			resp.Status = "degraded"
			resp.NetworkSource = "unreachable"
			resp.Error = err.Error()
		}
		respondJSON(w, status, resp)
	}
}
