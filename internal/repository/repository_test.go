package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/solerao/campusmetro/internal/domain"
	"github.com/solerao/campusmetro/internal/graph"
)

func TestRepository_UpsertStation(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	st := domain.Station{
		ID:       "lane",
		Name:     "Lane",
		Position: domain.Position{X: 42.73, Y: -73.69},
	}

	if err := repo.UpsertStation(context.Background(), st); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	call := calls[0]
	if call.Query != upsertStationCypher {
		t.Fatalf("unexpected query\nexpected:\n%s\ngot:\n%s", upsertStationCypher, call.Query)
	}
	if call.Params["stationId"] != st.ID {
		t.Errorf("expected stationId %s, got %v", st.ID, call.Params["stationId"])
	}
	if call.Params["name"] != st.Name {
		t.Errorf("expected name %s, got %v", st.Name, call.Params["name"])
	}
	if call.Params["x"] != st.Position.X {
		t.Errorf("expected x %v, got %v", st.Position.X, call.Params["x"])
	}
}

func TestRepository_UpsertStationRequiresID(t *testing.T) {
	repo := New(graph.NewMemoryClient())
	if err := repo.UpsertStation(context.Background(), domain.Station{Name: "No ID"}); err == nil {
		t.Fatal("expected error for station without ID")
	}
}

func TestRepository_ConnectStations(t *testing.T) {
	mem := graph.NewMemoryClient()
	repo := New(mem)

	if err := repo.ConnectStations(context.Background(), "lane", "summit"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	calls := mem.WriteCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 write query, got %d", len(calls))
	}
	if calls[0].Params["fromId"] != "lane" || calls[0].Params["toId"] != "summit" {
		t.Fatalf("unexpected params: %v", calls[0].Params)
	}
}

func TestRepository_ListStations(t *testing.T) {
	mem := graph.NewMemoryClient()
	mem.PushReadResult(graph.Result{Records: []graph.Record{
		{"id": "lane", "name": "Lane", "x": 42.73, "y": -73.69, "edges": []any{"summit"}},
		{"id": "summit", "name": "Summit", "x": int64(43), "y": int64(-74), "edges": []any{"lane", "hudson"}},
		{"id": "", "name": "broken record skipped"},
		{"id": "orphan", "name": "Orphan", "x": 0.0, "y": 0.0, "edges": []any{nil}},
	}})
	repo := New(mem)

	stations, err := repo.ListStations(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(stations) != 3 {
		t.Fatalf("expected 3 stations, got %d", len(stations))
	}
	if stations[0].ID != "lane" || stations[0].Position.X != 42.73 {
		t.Fatalf("unexpected first station: %+v", stations[0])
	}
	if got := stations[1].Edges; len(got) != 2 || got[0] != "lane" || got[1] != "hudson" {
		t.Fatalf("unexpected summit edges: %v", got)
	}
	if stations[1].Position.Y != -74 {
		t.Fatalf("expected int64 coordinate conversion, got %v", stations[1].Position.Y)
	}
	if stations[2].Edges != nil {
		t.Fatalf("expected no edges for orphan, got %v", stations[2].Edges)
	}
}

func TestRepository_ListStationsPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	repo := New(graph.NewMemoryClient().WithError(boom))

	if _, err := repo.ListStations(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}
