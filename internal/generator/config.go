package generator

// Config drives the synthetic campus map generator.
type Config struct {
	NumLines        int
	StationsPerLine int
	CrossLinks      int // extra unnamed walkway connections between lines
	Scheme          string
	Seed            int64
}

// DefaultConfig returns a small but connected campus.
func DefaultConfig() Config {
	return Config{
		NumLines:        3,
		StationsPerLine: 5,
		CrossLinks:      2,
		Scheme:          "percent",
		Seed:            42,
	}
}
