// Package service orchestrates route planning over the loaded map and
// bulk ingestion into the graph database.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bluele/gcache"

	"github.com/solerao/campusmetro/internal/domain"
	"github.com/solerao/campusmetro/internal/lines"
	"github.com/solerao/campusmetro/internal/mapstore"
	"github.com/solerao/campusmetro/internal/metrics"
	"github.com/solerao/campusmetro/internal/route"
)

// ErrUnknownStation indicates a route endpoint that matches no station ID
// or display name.
var ErrUnknownStation = errors.New("unknown station")

// PlannerOptions tunes the route plan cache.
type PlannerOptions struct {
	CacheSize int
	CacheTTL  time.Duration
}

// RoutePlanner resolves endpoints, runs the shortest-path search and
// annotates the result with line and transfer information. Plans are
// cached per graph version, so a map reload naturally invalidates them.
type RoutePlanner struct {
	store  *mapstore.Store
	table  *lines.Table
	cache  gcache.Cache
	logger *slog.Logger
}

// NewRoutePlanner constructs a planner over the given store and line table.
func NewRoutePlanner(store *mapstore.Store, table *lines.Table, opts PlannerOptions, logger *slog.Logger) *RoutePlanner {
	size := opts.CacheSize
	if size <= 0 {
		size = 512
	}
	builder := gcache.New(size).LRU()
	if opts.CacheTTL > 0 {
		builder = builder.Expiration(opts.CacheTTL)
	}

	return &RoutePlanner{
		store:  store,
		table:  table,
		cache:  builder.Build(),
		logger: logger,
	}
}

// PlanRoute computes the shortest route between two stations, addressed
// by ID or exact display name. An unreachable destination is not an
// error: the returned plan carries Found == false.
func (p *RoutePlanner) PlanRoute(ctx context.Context, from, to string) (domain.RoutePlan, error) {
	if err := ctx.Err(); err != nil {
		return domain.RoutePlan{}, err
	}

	g, err := p.store.Graph()
	if err != nil {
		return domain.RoutePlan{}, err
	}

	start, ok := resolveStation(g, from)
	if !ok {
		metrics.RouteRequests.WithLabelValues(metrics.OutcomeUnknownStation).Inc()
		return domain.RoutePlan{}, fmt.Errorf("%w: %q", ErrUnknownStation, from)
	}
	end, ok := resolveStation(g, to)
	if !ok {
		metrics.RouteRequests.WithLabelValues(metrics.OutcomeUnknownStation).Inc()
		return domain.RoutePlan{}, fmt.Errorf("%w: %q", ErrUnknownStation, to)
	}

	cacheKey := fmt.Sprintf("%d|%s|%s", p.store.Version(), start.ID, end.ID)
	if cached, err := p.cache.Get(cacheKey); err == nil {
		if plan, ok := cached.(domain.RoutePlan); ok {
			metrics.RouteCacheHits.Inc()
			return plan, nil
		}
	}

	began := time.Now()
	plan := p.compute(g, start, end)
	metrics.RouteComputeSeconds.Observe(time.Since(began).Seconds())

	outcome := metrics.OutcomeNotFound
	if plan.Found {
		outcome = metrics.OutcomeFound
	}
	metrics.RouteRequests.WithLabelValues(outcome).Inc()

	if err := p.cache.Set(cacheKey, plan); err != nil {
		p.logger.Warn("route cache set failed", "error", err)
	}

	p.logger.Debug("route planned",
		"from", start.ID,
		"to", end.ID,
		"found", plan.Found,
		"hops", plan.Hops,
		"transfers", plan.Transfers,
	)
	return plan, nil
}

func (p *RoutePlanner) compute(g *mapstore.Graph, start, end domain.Station) domain.RoutePlan {
	plan := domain.RoutePlan{FromID: start.ID, ToID: end.ID}

	path := route.ShortestPath(g, start.ID, end.ID)
	if len(path) == 0 {
		return plan
	}

	stations := make([]domain.Station, 0, len(path))
	stops := make([]domain.RouteStop, 0, len(path))
	for _, id := range path {
		st, _ := g.StationByID(id)
		stations = append(stations, st)
		stops = append(stops, domain.RouteStop{ID: st.ID, Name: st.Name, Position: st.Position})
	}

	segments := p.table.Classify(stations)
	transfers := 0
	for _, seg := range segments {
		if seg.Transfer {
			transfers++
		}
	}

	plan.Found = true
	plan.Hops = len(path) - 1
	plan.Transfers = transfers
	plan.Stops = stops
	plan.Segments = segments
	plan.Itinerary = buildItinerary(stops, segments)
	return plan
}

// resolveStation accepts a station ID first, then falls back to the exact
// display name the map front-end shows.
func resolveStation(g *mapstore.Graph, key string) (domain.Station, bool) {
	if st, ok := g.StationByID(key); ok {
		return st, true
	}
	return g.StationByName(key)
}
