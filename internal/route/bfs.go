// Package route implements shortest-path search over the campus map.
package route

import (
	"github.com/solerao/campusmetro/internal/domain"
)

// Graph is the read-only view the search needs from the map store.
type Graph interface {
	Neighbors(id string) []string
	StationByID(id string) (domain.Station, bool)
}

// ShortestPath returns the minimum hop-count path from startID to endID,
// both inclusive, or nil when either endpoint is unknown or the two are
// disconnected. Equal-length ties resolve to the path discovered first
// when neighbors are visited in stored adjacency order.
//
// The search follows adjacency exactly as declared; map sources declare
// every connection from both sides, which is what makes the graph
// effectively undirected.
func ShortestPath(g Graph, startID, endID string) []string {
	if _, ok := g.StationByID(startID); !ok {
		return nil
	}
	if _, ok := g.StationByID(endID); !ok {
		return nil
	}
	if startID == endID {
		return []string{startID}
	}

	visited := map[string]bool{startID: true}
	parent := make(map[string]string)
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, next := range g.Neighbors(current) {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = current
			if next == endID {
				return reconstruct(parent, startID, endID)
			}
			queue = append(queue, next)
		}
	}

	return nil
}

// reconstruct walks the parent links back from end to start and reverses
// the result.
func reconstruct(parent map[string]string, startID, endID string) []string {
	path := []string{endID}
	for current := endID; current != startID; {
		current = parent[current]
		path = append(path, current)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
