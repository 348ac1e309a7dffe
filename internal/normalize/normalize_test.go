package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

func newTestNormalizer() (*Normalizer, time.Time) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	return New(fixedClock{now: now}), now
}

func TestNormalizeAppliesFallbacks(t *testing.T) {
	t.Parallel()

	n, now := newTestNormalizer()
	vehicle := n.Normalize(domain.RawRecord{}, nil)

	require.NotEmpty(t, vehicle.ID)
	require.Equal(t, domain.SourceAlcopa, vehicle.Source)
	require.Equal(t, "Unknown", vehicle.Brand)
	require.Equal(t, "Unknown", vehicle.Model)
	require.Equal(t, now.Year(), vehicle.Year)
	require.Equal(t, DefaultDoors, vehicle.Doors)
	require.InDelta(t, 0, vehicle.MileageKm, 1e-9)
	require.InDelta(t, 0, vehicle.HorsePower, 1e-9)
	require.InDelta(t, 0, vehicle.CO2, 1e-9)
	require.Equal(t, domain.ConditionUsed, vehicle.Condition)
	require.InDelta(t, DefaultFeesRate, vehicle.FeesRate, 1e-9)
	require.Nil(t, vehicle.EstimatedRepairCost)
	require.Nil(t, vehicle.EstimatedResalePrice)
	require.Equal(t, now, vehicle.CreatedAt)
	require.Equal(t, now, vehicle.UpdatedAt)
}

func TestNormalizeCoercesStringFields(t *testing.T) {
	t.Parallel()

	n, _ := newTestNormalizer()
	vehicle := n.Normalize(domain.RawRecord{
		ID:        "ALC-TEST",
		Brand:     "Peugeot",
		Model:     "208",
		Version:   "1.2 PureTech",
		Year:      "2019",
		Mileage:   "48 000 km",
		Fuel:      "Essence",
		Gearbox:   "Manuelle",
		Doors:     "5 portes",
		CO2:       "110 g/km",
		Condition: "damaged",
	}, nil)

	require.Equal(t, "ALC-TEST", vehicle.ID)
	require.Equal(t, 2019, vehicle.Year)
	require.InDelta(t, 48000, vehicle.MileageKm, 1e-9)
	require.Equal(t, "Essence", vehicle.FuelType)
	require.Equal(t, "Manuelle", vehicle.Gearbox)
	require.Equal(t, 5, vehicle.Doors)
	require.InDelta(t, 110, vehicle.CO2, 1e-9)
	require.Equal(t, domain.ConditionDamaged, vehicle.Condition)
}

func TestNormalizeListPricePrecedence(t *testing.T) {
	t.Parallel()

	n, _ := newTestNormalizer()
	card := &domain.ListingCard{
		ListPrice:     9500,
		ListPriceType: domain.PriceBidCurrent,
		LotNumber:     "L42",
	}
	vehicle := n.Normalize(domain.RawRecord{Price: "7 200 €"}, card)

	require.InDelta(t, 9500, vehicle.Price, 1e-9)
}

func TestNormalizeDetailPriceWithoutCard(t *testing.T) {
	t.Parallel()

	n, _ := newTestNormalizer()
	vehicle := n.Normalize(domain.RawRecord{Price: "7 200 €"}, nil)

	require.InDelta(t, 7200, vehicle.Price, 1e-9)
}

func TestNormalizeCommentSynthesis(t *testing.T) {
	t.Parallel()

	n, _ := newTestNormalizer()
	card := &domain.ListingCard{
		ListPrice:     9500,
		ListPriceType: domain.PriceBidCurrent,
		LotNumber:     "L42",
	}
	vehicle := n.Normalize(domain.RawRecord{
		Comments: []string{"  révision   faite ", "", "   "},
	}, card)

	require.Contains(t, vehicle.Comments, "révision faite")
	require.Contains(t, vehicle.Comments, "Lot: L42")
	require.NotContains(t, vehicle.Comments, "")

	var mentionsBid bool
	for _, comment := range vehicle.Comments {
		if comment == "Price source: enchère courante" {
			mentionsBid = true
		}
	}
	require.True(t, mentionsBid, "expected a comment naming the bid price source")
}

func TestNormalizePriceSourceNotes(t *testing.T) {
	t.Parallel()

	n, _ := newTestNormalizer()

	starting := n.Normalize(domain.RawRecord{ListPriceType: domain.PriceStarting}, nil)
	require.Contains(t, starting.Comments, "Price source: mise à prix")

	unknown := n.Normalize(domain.RawRecord{}, nil)
	require.Contains(t, unknown.Comments, "Price source: inconnu")

	labeled := n.Normalize(domain.RawRecord{ListPriceLabel: "Prix marteau"}, nil)
	require.Contains(t, labeled.Comments, "Price source: Prix marteau")
}

func TestNormalizeIdempotentWithFixedClock(t *testing.T) {
	t.Parallel()

	n, _ := newTestNormalizer()
	raw := domain.RawRecord{
		ID:      "ALC-42",
		Brand:   "Renault",
		Model:   "Clio V",
		Year:    2021,
		Mileage: "12 000 km",
	}
	card := &domain.ListingCard{ListPrice: 8100, ListPriceType: domain.PriceStarting}

	first := n.Normalize(raw, card)
	second := n.Normalize(raw, card)
	require.Equal(t, first, second)
}
