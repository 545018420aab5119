package mapstore

import (
	"context"
	"fmt"

	"github.com/solerao/campusmetro/internal/domain"
)

// StationLister is satisfied by the repository when the map lives in the
// graph database instead of a file.
type StationLister interface {
	ListStations(ctx context.Context) ([]domain.Station, error)
}

// GraphSource fetches the map from the graph database.
type GraphSource struct {
	Repo   StationLister
	Scheme string
}

// Fetch implements Source.
func (g GraphSource) Fetch(ctx context.Context) (domain.MapDocument, error) {
	stations, err := g.Repo.ListStations(ctx)
	if err != nil {
		return domain.MapDocument{}, fmt.Errorf("list stations: %w", err)
	}
	scheme := g.Scheme
	if scheme == "" {
		scheme = domain.SchemeGeo
	}
	return domain.MapDocument{Scheme: scheme, Stations: stations}, nil
}
