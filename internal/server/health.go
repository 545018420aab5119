package server

import (
	"context"

	"github.com/solerao/campusmetro/internal/graph"
	"github.com/solerao/campusmetro/internal/mapstore"
)

// HealthService defines behaviour for readiness probes.
type HealthService interface {
	Probe(ctx context.Context) error
}

// MapHealthService reports ready once a map is loaded and, when the map
// lives in a graph database, the database is reachable.
type MapHealthService struct {
	Store  *mapstore.Store
	Client graph.Client
}

// Probe implements the HealthService interface.
func (s MapHealthService) Probe(ctx context.Context) error {
	if s.Store != nil {
		if _, err := s.Store.Graph(); err != nil {
			return err
		}
	}
	if s.Client != nil {
		return s.Client.VerifyConnectivity(ctx)
	}
	return nil
}
