// Package enrich augments normalized vehicles with repair cost estimates.
package enrich

import (
	"context"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// DefaultRepairCost is assumed when no estimate is available.
const DefaultRepairCost = 500.0

const placeholderNote = "Repair cost estimated from defaults, not from damage analysis"

// Enricher fills in fields the crawler cannot derive from the listing alone.
type Enricher interface {
	Enrich(ctx context.Context, vehicle domain.Vehicle) (domain.Vehicle, error)
}

// Placeholder is the stand-in enricher used until a model-backed one exists.
// It only supplies a flat repair cost default.
type Placeholder struct{}

// Enrich sets the default repair cost when none is present and records that
// the estimate is a placeholder.
func (Placeholder) Enrich(_ context.Context, vehicle domain.Vehicle) (domain.Vehicle, error) {
	if vehicle.EstimatedRepairCost == nil {
		cost := DefaultRepairCost
		vehicle.EstimatedRepairCost = &cost
		vehicle.Comments = append(vehicle.Comments, placeholderNote)
	}
	return vehicle, nil
}
