package generator

import (
	"context"
	"strings"
	"testing"
)

func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	first, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := New(cfg).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(first.Map.Stations) != len(second.Map.Stations) {
		t.Fatalf("station counts differ: %d vs %d", len(first.Map.Stations), len(second.Map.Stations))
	}
	for i := range first.Map.Stations {
		if first.Map.Stations[i].ID != second.Map.Stations[i].ID {
			t.Fatalf("station %d differs: %s vs %s", i, first.Map.Stations[i].ID, second.Map.Stations[i].ID)
		}
	}
}

func TestGenerateProducesValidSymmetricEdges(t *testing.T) {
	dataset, err := New(Config{NumLines: 4, StationsPerLine: 6, CrossLinks: 3, Seed: 7}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	byID := make(map[string][]string)
	for _, st := range dataset.Map.Stations {
		byID[st.ID] = st.Edges
	}

	for _, st := range dataset.Map.Stations {
		for _, edge := range st.Edges {
			peers, ok := byID[edge]
			if !ok {
				t.Fatalf("edge %s -> %s references unknown station", st.ID, edge)
			}
			found := false
			for _, back := range peers {
				if back == st.ID {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("edge %s -> %s is not declared from both sides", st.ID, edge)
			}
		}
	}
}

func TestGenerateStationsHaveUniqueIDsAndNames(t *testing.T) {
	dataset, err := New(Config{NumLines: 3, StationsPerLine: 8, Seed: 11}).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	ids := make(map[string]bool)
	names := make(map[string]bool)
	for _, st := range dataset.Map.Stations {
		if ids[st.ID] {
			t.Fatalf("duplicate station ID %s", st.ID)
		}
		if names[st.Name] {
			t.Fatalf("duplicate station name %s", st.Name)
		}
		ids[st.ID] = true
		names[st.Name] = true
	}
}

func TestGenerateLineConnectionsUsePairSyntax(t *testing.T) {
	dataset, err := New(DefaultConfig()).Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(dataset.Lines) != DefaultConfig().NumLines {
		t.Fatalf("expected %d lines, got %d", DefaultConfig().NumLines, len(dataset.Lines))
	}
	for _, line := range dataset.Lines {
		if len(line.Connections) == 0 {
			t.Fatalf("line %s has no connections", line.Name)
		}
		for _, conn := range line.Connections {
			if !strings.Contains(conn, "-") {
				t.Fatalf("connection %q is not a pair", conn)
			}
		}
	}
}

func TestGenerateHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(DefaultConfig()).Generate(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
