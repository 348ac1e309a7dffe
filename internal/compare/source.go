package compare

import (
	"context"
	"strings"

	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/storage"
)

// Source yields comparable vehicles for a target record.
type Source interface {
	Search(ctx context.Context, target domain.Vehicle) ([]domain.Vehicle, error)
}

// FileSource reads comparables from a JSON snapshot on disk. It is the
// default source so evaluations stay reproducible offline.
type FileSource struct {
	path string
}

// NewFileSource builds a FileSource over the given snapshot path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Search loads the snapshot and filters it to the target's brand and model.
// An empty brand or model on the target matches everything.
func (s *FileSource) Search(_ context.Context, target domain.Vehicle) ([]domain.Vehicle, error) {
	vehicles, err := storage.LoadVehicles(s.path)
	if err != nil {
		return nil, err
	}
	matches := make([]domain.Vehicle, 0, len(vehicles))
	for _, vehicle := range vehicles {
		if target.Brand != "" && !strings.EqualFold(vehicle.Brand, target.Brand) {
			continue
		}
		if target.Model != "" && !strings.EqualFold(vehicle.Model, target.Model) {
			continue
		}
		matches = append(matches, vehicle)
	}
	return matches, nil
}
