package lines

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solerao/campusmetro/internal/domain"
)

func stationsNamed(names ...string) []domain.Station {
	out := make([]domain.Station, 0, len(names))
	for _, name := range names {
		out = append(out, domain.Station{ID: "id-" + name, Name: name})
	}
	return out
}

func blueTable(t *testing.T) *Table {
	t.Helper()
	table, err := NewTable([]domain.Line{
		{Name: "Blue", Color: "#1565c0", Connections: []string{"Lane-Summit", "Summit-East Hudson"}},
	})
	require.NoError(t, err)
	return table
}

func TestClassifySingleLineNoTransfer(t *testing.T) {
	table := blueTable(t)

	segments := table.Classify(stationsNamed("Lane", "Summit", "East Hudson"))
	require.Len(t, segments, 2)

	for _, seg := range segments {
		assert.Equal(t, "Blue", seg.Line)
		assert.False(t, seg.Transfer)
	}
	assert.Equal(t, "Lane", segments[0].FromName)
	assert.Equal(t, "East Hudson", segments[1].ToName)
}

func TestClassifyMatchesReversedTraversal(t *testing.T) {
	table := blueTable(t)

	// The table declares "Lane-Summit"; walking Summit->Lane must still
	// match.
	segments := table.Classify(stationsNamed("East Hudson", "Summit", "Lane"))
	require.Len(t, segments, 2)
	assert.Equal(t, "Blue", segments[0].Line)
	assert.Equal(t, "Blue", segments[1].Line)
}

func TestClassifyMarksTransfers(t *testing.T) {
	table, err := NewTable([]domain.Line{
		{Name: "Blue", Color: "#1565c0", Connections: []string{"A-B", "B-C"}},
		{Name: "Orange", Color: "#ef6c00", Connections: []string{"C-D"}},
	})
	require.NoError(t, err)

	segments := table.Classify(stationsNamed("A", "B", "C", "D"))
	require.Len(t, segments, 3)

	assert.False(t, segments[0].Transfer, "first segment never transfers")
	assert.False(t, segments[1].Transfer, "consecutive Blue segments must not transfer")
	assert.True(t, segments[2].Transfer, "entering Orange from Blue is a transfer")
	assert.Equal(t, "Orange", segments[2].Line)
}

func TestClassifyDefaultLine(t *testing.T) {
	table := blueTable(t)

	segments := table.Classify(stationsNamed("Lane", "Summit", "Library"))
	require.Len(t, segments, 2)
	assert.Equal(t, DefaultLineName, segments[1].Line)
	assert.Equal(t, DefaultLineColor, segments[1].Color)
	assert.True(t, segments[1].Transfer, "leaving Blue for a walkway counts as a line change")
}

func TestClassifyEvaluatesFinalHop(t *testing.T) {
	table, err := NewTable([]domain.Line{
		{Name: "Blue", Connections: []string{"A-B"}},
		{Name: "Yellow", Connections: []string{"B-C"}},
	})
	require.NoError(t, err)

	segments := table.Classify(stationsNamed("A", "B", "C"))
	require.Len(t, segments, 2, "classification covers every consecutive pair, including the last")
	assert.Equal(t, "Yellow", segments[1].Line)
	assert.True(t, segments[1].Transfer)
}

func TestClassifySegmentCount(t *testing.T) {
	table := blueTable(t)

	assert.Nil(t, table.Classify(nil))
	assert.Nil(t, table.Classify(stationsNamed("Lane")))
	assert.Len(t, table.Classify(stationsNamed("Lane", "Summit")), 1)
	assert.Len(t, table.Classify(stationsNamed("Lane", "Summit", "East Hudson")), 2)
}

func TestClassifyEmptyTable(t *testing.T) {
	table, err := NewTable(nil)
	require.NoError(t, err)

	segments := table.Classify(stationsNamed("A", "B"))
	require.Len(t, segments, 1)
	assert.Equal(t, DefaultLineName, segments[0].Line)
	assert.False(t, segments[0].Transfer)
}

func TestNewTableRejectsMalformedConnection(t *testing.T) {
	_, err := NewTable([]domain.Line{{Name: "Blue", Connections: []string{"LaneSummit"}}})
	require.Error(t, err)

	_, err = NewTable([]domain.Line{{Connections: []string{"A-B"}}})
	require.Error(t, err, "unnamed lines are rejected")
}

func TestFirstLineClaimingAPairWins(t *testing.T) {
	table, err := NewTable([]domain.Line{
		{Name: "Blue", Connections: []string{"A-B"}},
		{Name: "Orange", Connections: []string{"B-A"}},
	})
	require.NoError(t, err)

	segments := table.Classify(stationsNamed("A", "B"))
	require.Len(t, segments, 1)
	assert.Equal(t, "Blue", segments[0].Line)
}

func TestLoadTable(t *testing.T) {
	defs := []domain.Line{
		{Name: "Blue", Color: "#1565c0", Connections: []string{"Lane-Summit"}},
		{Name: "Orange", Color: "#ef6c00", Connections: []string{"Summit-Quad"}},
	}
	payload, err := json.Marshal(defs)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "lines.json")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Len(t, table.Lines(), 2)

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
