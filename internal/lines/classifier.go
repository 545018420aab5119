// Package lines assigns route hops to named service lines and detects
// transfers between them.
package lines

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/solerao/campusmetro/internal/domain"
)

// Connections absent from every line fall back to the default line; on a
// campus map those are plain walkways between buildings.
const (
	DefaultLineName  = "walk"
	DefaultLineColor = "#9e9e9e"
)

// connKey is an unordered station-name pair.
type connKey struct {
	a, b string
}

func keyFor(a, b string) connKey {
	if b < a {
		a, b = b, a
	}
	return connKey{a: a, b: b}
}

// Table is a compiled line-membership lookup. It is static configuration:
// the table never derives from the graph and an empty table is valid
// (every hop classifies as the default line).
type Table struct {
	lines  []domain.Line
	byConn map[connKey]int
}

// NewTable compiles line definitions into a lookup. Each connection is a
// "Name A-Name B" pair split on the first "-"; station names containing a
// literal hyphen are not representable in this syntax. The first line
// claiming a pair wins.
func NewTable(defs []domain.Line) (*Table, error) {
	t := &Table{
		lines:  append([]domain.Line(nil), defs...),
		byConn: make(map[connKey]int),
	}
	for i, line := range defs {
		if line.Name == "" {
			return nil, fmt.Errorf("line %d has no name", i)
		}
		for _, conn := range line.Connections {
			from, to, ok := strings.Cut(conn, "-")
			if !ok {
				return nil, fmt.Errorf("line %q: connection %q is not a \"A-B\" pair", line.Name, conn)
			}
			key := keyFor(strings.TrimSpace(from), strings.TrimSpace(to))
			if _, claimed := t.byConn[key]; claimed {
				continue
			}
			t.byConn[key] = i
		}
	}
	return t, nil
}

// LoadTable reads line definitions from a JSON document.
func LoadTable(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var defs []domain.Line
	if err := json.NewDecoder(file).Decode(&defs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return NewTable(defs)
}

// Lines returns the compiled definitions in declaration order.
func (t *Table) Lines() []domain.Line {
	return append([]domain.Line(nil), t.lines...)
}

// lineFor resolves the line owning the unordered (a, b) name pair.
func (t *Table) lineFor(a, b string) (string, string) {
	if idx, ok := t.byConn[keyFor(a, b)]; ok {
		line := t.lines[idx]
		color := line.Color
		if color == "" {
			color = DefaultLineColor
		}
		return line.Name, color
	}
	return DefaultLineName, DefaultLineColor
}

// Classify produces one annotated segment per consecutive pair of stops,
// including the final hop. A segment is flagged as a transfer when its
// line differs from the previous segment's line.
func (t *Table) Classify(stops []domain.Station) []domain.RouteSegment {
	if len(stops) < 2 {
		return nil
	}

	segments := make([]domain.RouteSegment, 0, len(stops)-1)
	currentLine := ""
	for i := 1; i < len(stops); i++ {
		from, to := stops[i-1], stops[i]
		name, color := t.lineFor(from.Name, to.Name)
		transfer := currentLine != "" && name != currentLine
		currentLine = name

		segments = append(segments, domain.RouteSegment{
			FromID:   from.ID,
			ToID:     to.ID,
			FromName: from.Name,
			ToName:   to.Name,
			Line:     name,
			Color:    color,
			Transfer: transfer,
		})
	}
	return segments
}
