package mapstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/solerao/campusmetro/internal/domain"
	"github.com/solerao/campusmetro/internal/metrics"
)

// ErrNotLoaded indicates the store has no graph yet.
var ErrNotLoaded = errors.New("map not loaded")

// Graph is an immutable snapshot of the campus map with an adjacency
// lookup keyed by station ID. Build it once; share it freely across
// concurrent readers.
type Graph struct {
	scheme    string
	stations  map[string]domain.Station
	order     []string
	adjacency map[string][]string
	byName    map[string]string
}

// BuildGraph indexes the stations of a map document. Edge references to
// unknown station IDs are dropped (logged at WARN) so a partially broken
// document still renders; a missing edges list simply means a station with
// no outgoing connections.
func BuildGraph(doc domain.MapDocument, logger *slog.Logger) *Graph {
	g := &Graph{
		scheme:    doc.Scheme,
		stations:  make(map[string]domain.Station, len(doc.Stations)),
		order:     make([]string, 0, len(doc.Stations)),
		adjacency: make(map[string][]string, len(doc.Stations)),
		byName:    make(map[string]string, len(doc.Stations)),
	}
	if g.scheme == "" {
		g.scheme = domain.SchemeGeo
	}

	for _, st := range doc.Stations {
		if st.ID == "" {
			logger.Warn("skipping station without ID", "name", st.Name)
			continue
		}
		if _, dup := g.stations[st.ID]; dup {
			logger.Warn("duplicate station ID, keeping first occurrence", "id", st.ID)
			continue
		}
		g.stations[st.ID] = st
		g.order = append(g.order, st.ID)
		// First declaration wins; display names are not guaranteed unique.
		if _, taken := g.byName[st.Name]; !taken && st.Name != "" {
			g.byName[st.Name] = st.ID
		}
	}

	for _, id := range g.order {
		st := g.stations[id]
		neighbors := make([]string, 0, len(st.Edges))
		for _, edge := range st.Edges {
			if _, ok := g.stations[edge]; !ok {
				logger.Warn("dropping dangling edge", "from", id, "to", edge)
				continue
			}
			neighbors = append(neighbors, edge)
		}
		g.adjacency[id] = neighbors
	}

	return g
}

// Scheme reports the coordinate scheme declared by the map document.
func (g *Graph) Scheme() string { return g.scheme }

// Len returns the number of stations.
func (g *Graph) Len() int { return len(g.order) }

// Stations returns all stations in document order.
func (g *Graph) Stations() []domain.Station {
	out := make([]domain.Station, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.stations[id])
	}
	return out
}

// Neighbors returns the IDs adjacent to id in stored edge order, or an
// empty slice when id is unknown.
func (g *Graph) Neighbors(id string) []string {
	return g.adjacency[id]
}

// StationByID looks a station up by identifier.
func (g *Graph) StationByID(id string) (domain.Station, bool) {
	st, ok := g.stations[id]
	return st, ok
}

// StationByName looks a station up by exact display name.
func (g *Graph) StationByName(name string) (domain.Station, bool) {
	id, ok := g.byName[name]
	if !ok {
		return domain.Station{}, false
	}
	return g.stations[id], true
}

// Store owns the current graph. Load replaces it wholesale behind an
// atomic pointer, so route computations always observe one consistent
// snapshot and never see a half-applied reload.
type Store struct {
	source  Source
	logger  *slog.Logger
	current atomic.Pointer[Graph]
	version atomic.Uint64
}

// NewStore wires a store to its map source. Call Load before serving.
func NewStore(source Source, logger *slog.Logger) *Store {
	return &Store{source: source, logger: logger}
}

// Load fetches the map document, builds a fresh graph and swaps it in.
func (s *Store) Load(ctx context.Context) error {
	doc, err := s.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch map document: %w", err)
	}
	if len(doc.Stations) == 0 {
		return errors.New("map document has no stations")
	}

	g := BuildGraph(doc, s.logger)
	s.current.Store(g)
	version := s.version.Add(1)
	metrics.StationsLoaded.Set(float64(g.Len()))
	s.logger.Info("map loaded", "stations", g.Len(), "scheme", g.Scheme(), "version", version)
	return nil
}

// Graph returns the current snapshot, or an error before the first Load.
func (s *Store) Graph() (*Graph, error) {
	g := s.current.Load()
	if g == nil {
		return nil, ErrNotLoaded
	}
	return g, nil
}

// Version increments with every successful Load. The planner keys its
// cache on it so a reload invalidates stale plans.
func (s *Store) Version() uint64 {
	return s.version.Load()
}
