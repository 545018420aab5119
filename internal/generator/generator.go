// Package generator produces synthetic campus maps for demos and load
// experiments. Every connection is declared from both sides, matching
// the contract of real map documents.
package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/solerao/campusmetro/internal/domain"
)

// Dataset bundles the generated map document with its line table.
type Dataset struct {
	Map   domain.MapDocument `json:"map"`
	Lines []domain.Line      `json:"lines"`
}

// Generator builds random campus maps deterministically from a seed.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

var linePalette = []struct {
	name  string
	color string
}{
	{"Blue", "#1565c0"},
	{"Orange", "#ef6c00"},
	{"Yellow", "#f9a825"},
	{"Green", "#2e7d32"},
	{"Red", "#c62828"},
	{"Purple", "#6a1b9a"},
}

var (
	namePrefixes = []string{"North", "South", "East", "West", "Old", "Upper", "Lower", "New"}
	nameSuffixes = []string{"Hall", "Quad", "Library", "Commons", "Gate", "Annex", "Labs", "Union", "Field", "Tower", "Summit", "Arch"}
)

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumLines <= 0 {
		cfg.NumLines = def.NumLines
	}
	if cfg.NumLines > len(linePalette) {
		cfg.NumLines = len(linePalette)
	}
	if cfg.StationsPerLine < 2 {
		cfg.StationsPerLine = def.StationsPerLine
	}
	if cfg.CrossLinks < 0 {
		cfg.CrossLinks = 0
	}
	if cfg.Scheme == "" {
		cfg.Scheme = def.Scheme
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises a connected campus map. It respects context
// cancellation between lines.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	var (
		stations  []domain.Station
		index     = make(map[string]int)
		usedNames = make(map[string]bool)
		lineDefs  []domain.Line
	)

	addEdge := func(aID, bID string) {
		stations[index[aID]].Edges = append(stations[index[aID]].Edges, bID)
		stations[index[bID]].Edges = append(stations[index[bID]].Edges, aID)
	}

	for li := 0; li < g.cfg.NumLines; li++ {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}

		palette := linePalette[li]
		line := domain.Line{Name: palette.name, Color: palette.color}

		// Every line after the first branches off an existing station so
		// the whole map stays connected.
		var prevID string
		if len(stations) > 0 {
			prevID = stations[g.rand.Intn(len(stations))].ID
		}

		for si := 0; si < g.cfg.StationsPerLine; si++ {
			name := g.uniqueName(usedNames)
			st := domain.Station{
				ID:   slugify(name),
				Name: name,
				Position: domain.Position{
					X: roundCoord(g.rand.Float64() * 100),
					Y: roundCoord(g.rand.Float64() * 100),
				},
			}
			index[st.ID] = len(stations)
			stations = append(stations, st)

			if prevID != "" {
				addEdge(prevID, st.ID)
				line.Connections = append(line.Connections,
					fmt.Sprintf("%s-%s", stations[index[prevID]].Name, st.Name))
			}
			prevID = st.ID
		}

		lineDefs = append(lineDefs, line)
	}

	// Unnamed walkway shortcuts; they classify as the default line.
	for i := 0; i < g.cfg.CrossLinks && len(stations) > 2; i++ {
		a := g.rand.Intn(len(stations))
		b := g.rand.Intn(len(stations))
		if a == b || hasEdge(stations[a], stations[b].ID) {
			continue
		}
		addEdge(stations[a].ID, stations[b].ID)
	}

	return Dataset{
		Map: domain.MapDocument{
			Scheme:   g.cfg.Scheme,
			Stations: stations,
		},
		Lines: lineDefs,
	}, nil
}

func (g *Generator) uniqueName(used map[string]bool) string {
	base := ""
	for attempt := 0; attempt < 32; attempt++ {
		base = namePrefixes[g.rand.Intn(len(namePrefixes))] + " " + nameSuffixes[g.rand.Intn(len(nameSuffixes))]
		if !used[base] {
			used[base] = true
			return base
		}
	}
	// The prefix/suffix pool is exhausted for big maps; number the rest.
	for i := 2; ; i++ {
		name := fmt.Sprintf("%s %d", base, i)
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func hasEdge(st domain.Station, id string) bool {
	for _, edge := range st.Edges {
		if edge == id {
			return true
		}
	}
	return false
}

func roundCoord(v float64) float64 {
	return float64(int(v*100)) / 100
}
