package mapstore

import (
	"context"

	"github.com/solerao/campusmetro/internal/domain"
)

// Source supplies the raw map document the store builds its graph from.
type Source interface {
	Fetch(ctx context.Context) (domain.MapDocument, error)
}
