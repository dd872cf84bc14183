package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/repository"
	"github.com/vanshika/pathfinder/internal/service"
)

// errBodyTooLarge is reported when the server-level body cap cuts a request short.
var errBodyTooLarge = errors.New("request body too large")

// RouteHandlers exposes the shortest-path HTTP handlers.
type RouteHandlers struct {
	logger       *slog.Logger
	service      *service.RouteService
	batch        *service.BatchSolver
	maxBatchSize int
}

// HandlerOptions bounds batch requests. Body size is capped by Server.
type HandlerOptions struct {
	MaxBatchSize int
}

// NewRouteHandlers constructs a RouteHandlers instance. batch may be nil, in
// which case the batch endpoint answers 503.
func NewRouteHandlers(logger *slog.Logger, svc *service.RouteService, batch *service.BatchSolver, opts HandlerOptions) *RouteHandlers {
	return &RouteHandlers{
		logger:       logger,
		service:      svc,
		batch:        batch,
		maxBatchSize: opts.MaxBatchSize,
	}
}

func (h *RouteHandlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	if err := renderIndex(w); err != nil {
		h.logger.Error("failed to render index", "error", err)
	}
}

func (h *RouteHandlers) handleDijkstra(w http.ResponseWriter, r *http.Request) {
	var payload routeRequestPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeText(w, decodeStatus(err), "Error: "+err.Error())
		return
	}

	res, err := h.service.Solve(r.Context(), payload.toServiceRequest())
	if err != nil {
		h.writeSolveError(w, err)
		return
	}

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, newRouteResponse(res))
		return
	}
	if err := renderFragment(w, res); err != nil {
		h.logger.Error("failed to render result", "error", err)
	}
}

func (h *RouteHandlers) handleBatch(w http.ResponseWriter, r *http.Request) {
	if h.batch == nil {
		writeError(w, http.StatusServiceUnavailable, "batch solving is disabled")
		return
	}

	var payload batchRequestPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, decodeStatus(err), err.Error())
		return
	}
	if len(payload.Requests) == 0 {
		writeError(w, http.StatusBadRequest, "requests must not be empty")
		return
	}
	if h.maxBatchSize > 0 && len(payload.Requests) > h.maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d requests per batch", h.maxBatchSize))
		return
	}

	reqs := make([]service.RouteRequest, len(payload.Requests))
	for i, p := range payload.Requests {
		reqs[i] = p.toServiceRequest()
	}

	outcomes, err := h.batch.SolveAll(r.Context(), reqs)
	var taskErr *service.TaskError
	if err != nil && !errors.As(err, &taskErr) {
		h.logger.Warn("batch interrupted", "error", err, "size", len(reqs))
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	resp := batchResponse{Results: make([]batchItemResponse, 0, len(outcomes))}
	for _, out := range outcomes {
		item := batchItemResponse{Index: out.Index}
		if out.Err != nil {
			item.Error = out.Err.Error()
			resp.Failed++
		} else {
			rr := newRouteResponse(out.Result)
			item.Result = &rr
		}
		resp.Results = append(resp.Results, item)
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *RouteHandlers) handleNetworks(w http.ResponseWriter, r *http.Request) {
	networks, err := h.service.ListNetworks(r.Context())
	if err != nil {
		h.writeNetworkError(w, "", err)
		return
	}

	resp := listNetworksResponse{Items: make([]networkSummaryResponse, 0, len(networks))}
	for _, n := range networks {
		resp.Items = append(resp.Items, networkSummaryResponse{
			Name:      n.Name,
			NodeCount: n.NodeCount,
			EdgeCount: n.EdgeCount,
		})
	}
	respondJSON(w, http.StatusOK, resp)
}

func (h *RouteHandlers) handleNetworkRoutes(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	start := strings.TrimSpace(r.URL.Query().Get("start"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "network name is required")
		return
	}
	if start == "" {
		writeError(w, http.StatusBadRequest, "start is required")
		return
	}

	res, err := h.service.SolveNetwork(r.Context(), name, domain.NodeID(start))
	if err != nil {
		h.writeNetworkError(w, name, err)
		return
	}

	resp := newRouteResponse(res)
	resp.Network = name
	respondJSON(w, http.StatusOK, resp)
}

func (h *RouteHandlers) writeSolveError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrMalformedEdge) {
		h.logger.Debug("rejected malformed edges", "error", err)
		writeText(w, http.StatusBadRequest, service.ErrMalformedEdge.Error())
		return
	}
	h.logger.Debug("computation failed", "error", err)
	writeText(w, http.StatusBadRequest, "Error: "+err.Error())
}

func (h *RouteHandlers) writeNetworkError(w http.ResponseWriter, name string, err error) {
	switch {
	case errors.Is(err, service.ErrNoNetworkSource):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, repository.ErrNetworkNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case service.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("failed to load network", "error", err, "network", name)
		writeError(w, http.StatusBadGateway, "failed to load network")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: limit is %d bytes", errBodyTooLarge, tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return errors.New("request body is required")
		}
		return err
	}
	return nil
}

func decodeStatus(err error) int {
	if errors.Is(err, errBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
