package domain

import "time"

// RouteAvailability lists which route providers can currently fill the token.
type RouteAvailability struct {
	Direct     map[string]bool // provider id -> direct route available
	Aggregator bool            // reachable through the routing aggregator
}

// DirectCount returns the number of providers with a direct route.
func (a RouteAvailability) DirectCount() int {
	n := 0
	for _, ok := range a.Direct {
		if ok {
			n++
		}
	}
	return n
}

// TotalRoutes counts direct routes plus the aggregator route.
func (a RouteAvailability) TotalRoutes() int {
	n := a.DirectCount()
	if a.Aggregator {
		n++
	}
	return n
}

// RoutingSnapshot is the periodically refreshed routing availability matrix.
// The core only ever consumes the latest snapshot handed to it.
type RoutingSnapshot struct {
	TakenAt time.Time
	Routes  map[string]RouteAvailability // keyed by token address
}

// Lookup returns availability for an address, or (zero, false) when the
// snapshot has no entry for it.
func (s *RoutingSnapshot) Lookup(address string) (RouteAvailability, bool) {
	if s == nil {
		return RouteAvailability{}, false
	}
	av, ok := s.Routes[address]
	return av, ok
}

// RoutingTier classifies a token's routing availability.
type RoutingTier string

const (
	RouteMultiRoute     RoutingTier = "MULTI_ROUTE"     // >=2 direct providers
	RouteSingleRoute    RoutingTier = "SINGLE_ROUTE"    // exactly 1 direct provider
	RouteAggregatorOnly RoutingTier = "AGGREGATOR_ONLY" // aggregator route only
	RouteUnavailable    RoutingTier = "UNAVAILABLE"
)
