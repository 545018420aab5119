package domain

// Coordinate schemes a map document may declare. The backend never
// interprets positions; the scheme only tells the front-end how to place
// markers (geographic map vs. percentage offsets on a static canvas).
const (
	SchemeGeo     = "geo"
	SchemePercent = "percent"
)

// Position is a station's 2D location. Under the "geo" scheme X carries
// latitude and Y longitude; under "percent" both are offsets in [0,100].
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Station is a named stop on the campus metro map. Edges lists the IDs of
// directly connected stations. Map sources declare every connection from
// both sides, which is what makes the graph effectively undirected.
type Station struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position Position `json:"position"`
	Edges    []string `json:"edges,omitempty"`
}

// MapDocument is the on-disk shape of a campus map.
type MapDocument struct {
	Scheme   string    `json:"scheme"`
	Stations []Station `json:"stations"`
}
