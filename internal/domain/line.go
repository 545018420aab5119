package domain

// Line groups specific map connections under a named, colored service
// line. Connections are station display-name pairs joined by "-" in one
// fixed textual order; matching must ignore traversal direction.
type Line struct {
	Name        string   `json:"name"`
	Color       string   `json:"color,omitempty"`
	Connections []string `json:"connections"`
}
