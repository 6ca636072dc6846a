package connectors

import (
	"context"
	"strings"
	"time"

	"token-radar/internal/domain"
)

const jupiterName = "jupiter"

// JupiterClient implements RoutingSource against a Jupiter-style routing
// aggregator API.
type JupiterClient struct {
	client *providerClient
}

// NewJupiterClient creates a routing aggregator adapter.
func NewJupiterClient(cfg ClientConfig) *JupiterClient {
	return &JupiterClient{client: newProviderClient(jupiterName, cfg)}
}

type jupiterRoutes struct {
	Tokens map[string]struct {
		DirectVenues []string `json:"directVenues"`
		Aggregator   bool     `json:"aggregatorRoutable"`
	} `json:"tokens"`
}

// FetchRoutingSnapshot returns the route availability matrix for the given
// addresses. Tokens the aggregator does not know appear as unavailable.
func (j *JupiterClient) FetchRoutingSnapshot(ctx context.Context, addresses []string) (*domain.RoutingSnapshot, error) {
	const op = "routing_snapshot"
	if len(addresses) == 0 {
		return &domain.RoutingSnapshot{TakenAt: time.Now().UTC(), Routes: map[string]domain.RouteAvailability{}}, nil
	}

	var payload jupiterRoutes
	err := j.client.getJSON(ctx, op, "/v1/routes", map[string]string{
		"mints": strings.Join(addresses, ","),
	}, &payload)
	if err != nil {
		return nil, err
	}
	if payload.Tokens == nil {
		return nil, malformed(jupiterName, op, "missing tokens map")
	}

	snap := &domain.RoutingSnapshot{
		TakenAt: time.Now().UTC(),
		Routes:  make(map[string]domain.RouteAvailability, len(addresses)),
	}
	for _, addr := range addresses {
		entry, ok := payload.Tokens[addr]
		if !ok {
			snap.Routes[addr] = domain.RouteAvailability{}
			continue
		}
		direct := make(map[string]bool, len(entry.DirectVenues))
		for _, venue := range entry.DirectVenues {
			direct[venue] = true
		}
		snap.Routes[addr] = domain.RouteAvailability{
			Direct:     direct,
			Aggregator: entry.Aggregator,
		}
	}

	return snap, nil
}

var _ RoutingSource = (*JupiterClient)(nil)
