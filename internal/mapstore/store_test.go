package mapstore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/solerao/campusmetro/internal/domain"
)

type stubSource struct {
	doc domain.MapDocument
	err error
}

func (s *stubSource) Fetch(context.Context) (domain.MapDocument, error) {
	return s.doc, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleDoc() domain.MapDocument {
	return domain.MapDocument{
		Scheme: domain.SchemeGeo,
		Stations: []domain.Station{
			{ID: "lane", Name: "Lane", Edges: []string{"summit"}},
			{ID: "summit", Name: "Summit", Edges: []string{"lane", "hudson", "ghost"}},
			{ID: "hudson", Name: "East Hudson", Edges: []string{"summit"}},
			{ID: "orphan", Name: "Orphan"},
		},
	}
}

func TestBuildGraphDropsDanglingEdges(t *testing.T) {
	g := BuildGraph(sampleDoc(), testLogger())

	if g.Len() != 4 {
		t.Fatalf("expected 4 stations, got %d", g.Len())
	}
	neighbors := g.Neighbors("summit")
	if len(neighbors) != 2 || neighbors[0] != "lane" || neighbors[1] != "hudson" {
		t.Fatalf("expected ghost edge dropped, got %v", neighbors)
	}
}

func TestBuildGraphToleratesMissingEdges(t *testing.T) {
	g := BuildGraph(sampleDoc(), testLogger())

	if got := g.Neighbors("orphan"); len(got) != 0 {
		t.Fatalf("expected no neighbors for orphan, got %v", got)
	}
	if got := g.Neighbors("unknown"); len(got) != 0 {
		t.Fatalf("expected empty neighbors for unknown ID, got %v", got)
	}
}

func TestBuildGraphSkipsBrokenRecords(t *testing.T) {
	doc := domain.MapDocument{Stations: []domain.Station{
		{ID: "a", Name: "A"},
		{Name: "no id"},
		{ID: "a", Name: "duplicate of a"},
		{ID: "b", Name: "B"},
	}}
	g := BuildGraph(doc, testLogger())

	if g.Len() != 2 {
		t.Fatalf("expected 2 stations after skipping broken records, got %d", g.Len())
	}
	if st, _ := g.StationByID("a"); st.Name != "A" {
		t.Fatalf("expected first declaration of a to win, got %q", st.Name)
	}
}

func TestBuildGraphDefaultsScheme(t *testing.T) {
	g := BuildGraph(domain.MapDocument{Stations: []domain.Station{{ID: "a", Name: "A"}}}, testLogger())
	if g.Scheme() != domain.SchemeGeo {
		t.Fatalf("expected default geo scheme, got %q", g.Scheme())
	}
}

func TestGraphLookups(t *testing.T) {
	g := BuildGraph(sampleDoc(), testLogger())

	if st, ok := g.StationByID("hudson"); !ok || st.Name != "East Hudson" {
		t.Fatalf("StationByID failed: %+v %v", st, ok)
	}
	if st, ok := g.StationByName("East Hudson"); !ok || st.ID != "hudson" {
		t.Fatalf("StationByName failed: %+v %v", st, ok)
	}
	if _, ok := g.StationByName("Atlantis"); ok {
		t.Fatal("expected not-found for unknown name")
	}
	if stations := g.Stations(); len(stations) != 4 || stations[0].ID != "lane" {
		t.Fatalf("expected document order preserved, got %v", stations)
	}
}

func TestStoreLoadAndVersion(t *testing.T) {
	source := &stubSource{doc: sampleDoc()}
	store := NewStore(source, testLogger())

	if _, err := store.Graph(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded before first load, got %v", err)
	}
	if store.Version() != 0 {
		t.Fatalf("expected version 0 before load, got %d", store.Version())
	}

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Version() != 1 {
		t.Fatalf("expected version 1, got %d", store.Version())
	}
	g, err := store.Graph()
	if err != nil || g.Len() != 4 {
		t.Fatalf("unexpected graph after load: %v %v", g, err)
	}

	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if store.Version() != 2 {
		t.Fatalf("expected version 2 after reload, got %d", store.Version())
	}
}

func TestStoreLoadFailureKeepsPreviousGraph(t *testing.T) {
	source := &stubSource{doc: sampleDoc()}
	store := NewStore(source, testLogger())
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	source.err = errors.New("fetch blew up")
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if store.Version() != 1 {
		t.Fatalf("failed load must not bump the version, got %d", store.Version())
	}
	if g, err := store.Graph(); err != nil || g.Len() != 4 {
		t.Fatalf("previous graph must survive a failed reload: %v %v", g, err)
	}
}

func TestStoreRejectsEmptyDocument(t *testing.T) {
	store := NewStore(&stubSource{}, testLogger())
	if err := store.Load(context.Background()); err == nil {
		t.Fatal("expected error for empty map document")
	}
}
