// Package repository persists and retrieves the campus map in the graph
// database behind the optional graphdb map source.
package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/solerao/campusmetro/internal/domain"
	"github.com/solerao/campusmetro/internal/graph"
)

// Repository executes station Cypher against a graph.Client.
type Repository struct {
	client graph.Client
}

// New constructs a Repository backed by the provided client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

const upsertStationCypher = `
MERGE (s:Station {id: $stationId})
SET s.name = $name,
    s.x = $x,
    s.y = $y
`

const connectStationsCypher = `
MATCH (a:Station {id: $fromId})
MATCH (b:Station {id: $toId})
MERGE (a)-[:CONNECTS_TO]->(b)
`

const listStationsCypher = `
MATCH (s:Station)
OPTIONAL MATCH (s)-[:CONNECTS_TO]->(n:Station)
RETURN s.id AS id, s.name AS name, s.x AS x, s.y AS y, collect(n.id) AS edges
ORDER BY id
`

// UpsertStation creates or updates a station node.
func (r *Repository) UpsertStation(ctx context.Context, st domain.Station) error {
	if st.ID == "" {
		return errors.New("station ID is required")
	}
	params := map[string]any{
		"stationId": st.ID,
		"name":      st.Name,
		"x":         st.Position.X,
		"y":         st.Position.Y,
	}
	if _, err := r.client.ExecuteWrite(ctx, upsertStationCypher, params); err != nil {
		return fmt.Errorf("upsert station %s: %w", st.ID, err)
	}
	return nil
}

// ConnectStations records a directed CONNECTS_TO edge. Map documents
// declare every connection from both sides, so ingestion calls this once
// per declared direction.
func (r *Repository) ConnectStations(ctx context.Context, fromID, toID string) error {
	if fromID == "" || toID == "" {
		return errors.New("both station IDs are required")
	}
	params := map[string]any{
		"fromId": fromID,
		"toId":   toID,
	}
	if _, err := r.client.ExecuteWrite(ctx, connectStationsCypher, params); err != nil {
		return fmt.Errorf("connect %s -> %s: %w", fromID, toID, err)
	}
	return nil
}

// ListStations returns every station with its outgoing edges.
func (r *Repository) ListStations(ctx context.Context) ([]domain.Station, error) {
	res, err := r.client.ExecuteRead(ctx, listStationsCypher, nil)
	if err != nil {
		return nil, fmt.Errorf("list stations: %w", err)
	}

	stations := make([]domain.Station, 0, len(res.Records))
	for _, rec := range res.Records {
		st := domain.Station{
			ID:   stringValue(rec, "id"),
			Name: stringValue(rec, "name"),
			Position: domain.Position{
				X: floatValue(rec, "x"),
				Y: floatValue(rec, "y"),
			},
			Edges: stringSliceValue(rec, "edges"),
		}
		if st.ID == "" {
			continue
		}
		stations = append(stations, st)
	}
	return stations, nil
}

func stringValue(rec graph.Record, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}
	return ""
}

func floatValue(rec graph.Record, key string) float64 {
	switch v := rec[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func stringSliceValue(rec graph.Record, key string) []string {
	raw, ok := rec[key].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
