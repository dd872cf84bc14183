package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/vanshika/pathfinder/internal/builder"
	"github.com/vanshika/pathfinder/internal/domain"
	"github.com/vanshika/pathfinder/internal/service"
)

// nodeRef accepts a node id given either as a JSON string or as an integer.
type nodeRef domain.NodeID

func (n *nodeRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = nodeRef(s)
		return nil
	}
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("node id must be a string or an integer, got %s", data)
	}
	*n = nodeRef(strconv.FormatInt(id, 10))
	return nil
}

type edgePayload struct {
	Source *nodeRef `json:"source"`
	Target *nodeRef `json:"target"`
	Weight *float64 `json:"weight"`
}

type routeRequestPayload struct {
	Nodes     int           `json:"nodes"`
	Edges     []edgePayload `json:"edges"`
	StartNode nodeRef       `json:"start_node"`
}

func (p routeRequestPayload) toServiceRequest() service.RouteRequest {
	edges := make([]builder.EdgeRecord, 0, len(p.Edges))
	for _, e := range p.Edges {
		edges = append(edges, builder.EdgeRecord{
			Source: (*domain.NodeID)(e.Source),
			Target: (*domain.NodeID)(e.Target),
			Weight: e.Weight,
		})
	}
	return service.RouteRequest{
		Nodes:     p.Nodes,
		Edges:     edges,
		StartNode: domain.NodeID(p.StartNode),
	}
}

type batchRequestPayload struct {
	Requests []routeRequestPayload `json:"requests"`
}

// --- Responses ---

type nodeRouteResponse struct {
	Node      string   `json:"node"`
	Distance  *float64 `json:"distance"`
	Reachable bool     `json:"reachable"`
	Path      []string `json:"path"`
	Route     string   `json:"route"`
}

type routeResponse struct {
	Network   string              `json:"network,omitempty"`
	StartNode string              `json:"start_node"`
	Results   []nodeRouteResponse `json:"results"`
}

type batchItemResponse struct {
	Index  int            `json:"index"`
	Result *routeResponse `json:"result,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItemResponse `json:"results"`
	Failed  int                 `json:"failed"`
}

type networkSummaryResponse struct {
	Name      string `json:"name"`
	NodeCount int64  `json:"nodeCount"`
	EdgeCount int64  `json:"edgeCount"`
}

type listNetworksResponse struct {
	Items []networkSummaryResponse `json:"items"`
}

func newRouteResponse(res domain.Result) routeResponse {
	resp := routeResponse{
		StartNode: string(res.Start),
		Results:   make([]nodeRouteResponse, 0, len(res.Order)),
	}
	for _, node := range res.Order {
		item := nodeRouteResponse{
			Node:      string(node),
			Reachable: res.Reachable(node),
			Path:      []string{},
		}
		if item.Reachable {
			d := res.Distances[node]
			item.Distance = &d
		}
		path := res.Paths[node]
		for _, hop := range path {
			item.Path = append(item.Path, string(hop))
		}
		item.Route = path.String()
		resp.Results = append(resp.Results, item)
	}
	return resp
}
