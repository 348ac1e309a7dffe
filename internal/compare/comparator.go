// Package compare finds and ranks comparable vehicles used to estimate a
// resale price for a crawled lot.
package compare

import (
	"math"
	"sort"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// Similarity weights. Mileage distance is counted per 1000 km; a fuel or
// gearbox mismatch costs more than a year of age difference.
const (
	yearWeight     = 2
	fuelWeight     = 5
	gearboxWeight  = 3
	mileagePerUnit = 1000
)

// ResalePrice returns the rounded average price of the comparables, or 0
// when there are none.
func ResalePrice(comparables []domain.Vehicle) float64 {
	if len(comparables) == 0 {
		return 0
	}
	var total float64
	for _, vehicle := range comparables {
		total += vehicle.Price
	}
	return math.Round(total / float64(len(comparables)))
}

// RankBySimilarity orders the comparables by closeness to the target, most
// similar first. The input slice is not modified.
func RankBySimilarity(target domain.Vehicle, comparables []domain.Vehicle) []domain.Vehicle {
	ranked := append([]domain.Vehicle(nil), comparables...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return similarityScore(target, ranked[i]) < similarityScore(target, ranked[j])
	})
	return ranked
}

func similarityScore(target, candidate domain.Vehicle) float64 {
	score := math.Abs(candidate.MileageKm-target.MileageKm) / mileagePerUnit
	score += math.Abs(float64(candidate.Year-target.Year)) * yearWeight
	if candidate.FuelType != target.FuelType {
		score += fuelWeight
	}
	if candidate.Gearbox != target.Gearbox {
		score += gearboxWeight
	}
	return score
}
