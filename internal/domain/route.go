package domain

// RouteStop is one station along a planned route.
type RouteStop struct {
	ID       string
	Name     string
	Position Position
}

// RouteSegment annotates a single hop of a route with the service line it
// belongs to. Transfer is set when the line differs from the previous
// segment's line, i.e. the rider changes lines entering this segment.
type RouteSegment struct {
	FromID   string
	ToID     string
	FromName string
	ToName   string
	Line     string
	Color    string
	Transfer bool
}

// RoutePlan is the result of a route request. Found is false when the two
// stations exist but no connecting path does; callers must branch on it
// rather than expect an error.
type RoutePlan struct {
	FromID    string
	ToID      string
	Found     bool
	Hops      int
	Transfers int
	Stops     []RouteStop
	Segments  []RouteSegment
	Itinerary []string
}
