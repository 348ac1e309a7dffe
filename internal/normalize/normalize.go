// Package normalize merges scraped listing and detail data into canonical
// vehicle records. Normalization is total: missing or wrongly typed fields
// resolve to documented fallbacks and never produce an error.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/parse"
)

// Fallbacks applied when a raw field is absent or unparseable.
const (
	DefaultDoors    = 5
	DefaultFeesRate = 0.15
)

// Clock supplies the current time, injectable for deterministic tests.
type Clock interface {
	Now() time.Time
}

// Normalizer converts RawRecords into Vehicles.
type Normalizer struct {
	clock Clock
}

// New builds a Normalizer using the given clock.
func New(clock Clock) *Normalizer {
	return &Normalizer{clock: clock}
}

// Normalize merges a RawRecord and, when available, the listing card it was
// discovered through into a canonical Vehicle. The card's list price takes
// precedence over any price found on the detail page.
func (n *Normalizer) Normalize(raw domain.RawRecord, card *domain.ListingCard) domain.Vehicle {
	now := n.clock.Now()

	merged := raw
	if card != nil {
		merged.ListPrice = card.ListPrice
		if card.ListPriceType != "" {
			merged.ListPriceType = card.ListPriceType
		}
		if card.ListPriceLabel != "" {
			merged.ListPriceLabel = card.ListPriceLabel
		}
		if card.LotNumber != "" {
			merged.LotNumber = card.LotNumber
		}
	}

	vehicle := domain.Vehicle{
		ID:              normalizeID(merged.ID, now),
		Source:          domain.SourceAlcopa,
		Brand:           stringOr(merged.Brand, "Unknown"),
		Model:           stringOr(merged.Model, "Unknown"),
		Version:         strings.TrimSpace(merged.Version),
		Year:            normalizeYear(merged.Year, merged.RegistrationYear, now),
		MileageKm:       parse.Number(firstPresent(merged.Mileage, merged.MileageKm), 0),
		FuelType:        stringOr(firstString(merged.Fuel, merged.FuelType), "Unknown"),
		Gearbox:         stringOr(firstString(merged.Gearbox, merged.Transmission), "Unknown"),
		Doors:           normalizeDoors(merged.Doors),
		HorsePower:      parse.Number(firstPresent(merged.HorsePower, merged.HP), 0),
		CO2:             parse.Number(merged.CO2, 0),
		Options:         cleanList(merged.Options),
		Condition:       normalizeCondition(merged.Condition),
		ObservedDamages: cleanList(merged.ObservedDamages),
		Comments:        buildComments(merged),
		Price:           normalizePrice(merged),
		FeesRate:        DefaultFeesRate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if merged.FeesRate != nil {
		vehicle.FeesRate = *merged.FeesRate
	}
	if merged.EstimatedRepairCost != nil {
		cost := parse.Number(merged.EstimatedRepairCost, 0)
		vehicle.EstimatedRepairCost = &cost
	}
	if merged.EstimatedResalePrice != nil {
		price := parse.Number(merged.EstimatedResalePrice, 0)
		vehicle.EstimatedResalePrice = &price
	}

	return vehicle
}

// normalizeID keeps the scraped id when present. The time-based fallback is
// not unique under concurrent synthesis; that matches the upstream behavior
// and is documented rather than fixed.
func normalizeID(id string, now time.Time) string {
	if trimmed := strings.TrimSpace(id); trimmed != "" {
		return trimmed
	}
	return fmt.Sprintf("ALC-%d", now.UnixMilli())
}

func normalizeYear(year, registrationYear any, now time.Time) int {
	if parsed := int(parse.Number(firstPresent(year, registrationYear), 0)); parsed > 0 {
		return parsed
	}
	return now.Year()
}

func normalizeDoors(doors any) int {
	if parsed := int(parse.Number(doors, 0)); parsed > 0 {
		return parsed
	}
	return DefaultDoors
}

func normalizeCondition(condition string) domain.Condition {
	cleaned := strings.ToUpper(strings.TrimSpace(condition))
	if cleaned == "" {
		return domain.ConditionUsed
	}
	return domain.Condition(cleaned)
}

// normalizePrice prefers the listing-page price over the detail-page price
// when both are present.
func normalizePrice(raw domain.RawRecord) float64 {
	if raw.ListPrice != nil {
		return parse.Number(raw.ListPrice, 0)
	}
	return parse.Number(raw.Price, 0)
}

// buildComments cleans the scraped comments and appends provenance notes for
// the price source and lot number. Empty strings are filtered out.
func buildComments(raw domain.RawRecord) []string {
	comments := cleanList(raw.Comments)
	comments = append(comments, priceSourceNote(raw))
	if lot := strings.TrimSpace(raw.LotNumber); lot != "" {
		comments = append(comments, fmt.Sprintf("Lot: %s", lot))
	}

	filtered := comments[:0]
	for _, comment := range comments {
		if comment != "" {
			filtered = append(filtered, comment)
		}
	}
	return filtered
}

func priceSourceNote(raw domain.RawRecord) string {
	switch raw.ListPriceType {
	case domain.PriceBidCurrent:
		return "Price source: enchère courante"
	case domain.PriceStarting:
		return "Price source: mise à prix"
	default:
		if label := strings.TrimSpace(raw.ListPriceLabel); label != "" {
			return fmt.Sprintf("Price source: %s", label)
		}
		return "Price source: inconnu"
	}
}

func cleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		if text := parse.CleanText(item); text != "" {
			cleaned = append(cleaned, text)
		}
	}
	return cleaned
}

func stringOr(s, fallback string) string {
	if trimmed := strings.TrimSpace(s); trimmed != "" {
		return trimmed
	}
	return fallback
}

func firstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstPresent(values ...any) any {
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && strings.TrimSpace(s) == "" {
			continue
		}
		return v
	}
	return nil
}
