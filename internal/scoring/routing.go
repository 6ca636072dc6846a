package scoring

import "token-radar/internal/domain"

// Routing tier base points.
const (
	multiRoutePoints     = 12.0
	singleRoutePoints    = 8.0
	aggregatorOnlyPoints = 5.0

	comboBonus       = 3.0 // both high-value venues route directly
	routeDepthBonus  = 3.0 // three or more total routes
	routeDepthNeeded = 3
)

// High-value venue pair: direct routes on both signal deep, real liquidity.
var highValueVenues = [2]string{"raydium", "orca"}

// RoutingResult is the routing classification for one token.
type RoutingResult struct {
	Tier   domain.RoutingTier
	Points float64
}

// ScoreRouting classifies a token's routing availability and assigns points.
// Pure and deterministic given the availability entry.
func ScoreRouting(av domain.RouteAvailability) RoutingResult {
	direct := av.DirectCount()

	var res RoutingResult
	switch {
	case direct >= 2:
		res = RoutingResult{Tier: domain.RouteMultiRoute, Points: multiRoutePoints}
	case direct == 1:
		res = RoutingResult{Tier: domain.RouteSingleRoute, Points: singleRoutePoints}
	case av.Aggregator:
		res = RoutingResult{Tier: domain.RouteAggregatorOnly, Points: aggregatorOnlyPoints}
	default:
		return RoutingResult{Tier: domain.RouteUnavailable}
	}

	if av.Direct[highValueVenues[0]] && av.Direct[highValueVenues[1]] {
		res.Points += comboBonus
	}
	if av.TotalRoutes() >= routeDepthNeeded {
		res.Points += routeDepthBonus
	}
	res.Points = clampRange(res.Points, 0, routingMax)
	return res
}
