package mapstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/solerao/campusmetro/internal/domain"
)

// FileSource reads the map document from a JSON file on disk.
type FileSource struct {
	Path string
}

// Fetch implements Source.
func (f FileSource) Fetch(_ context.Context) (domain.MapDocument, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return domain.MapDocument{}, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer file.Close()

	var doc domain.MapDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return domain.MapDocument{}, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return doc, nil
}
