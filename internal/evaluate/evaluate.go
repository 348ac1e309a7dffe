// Package evaluate decides whether bidding on a crawled vehicle makes
// financial sense given an estimated resale price.
package evaluate

import (
	"fmt"
	"math"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// Defaults applied when the caller leaves a parameter unset.
const (
	DefaultFeesRate   = 0.15
	DefaultMarginRate = 0.10
)

// Params drives a single deal evaluation.
type Params struct {
	// ResalePrice is the estimated resale value, typically from the
	// comparables average.
	ResalePrice float64
	// FeesRate overrides the vehicle's fee rate when > 0.
	FeesRate float64
	// MarginRate is the target margin as a fraction of the resale price.
	MarginRate float64
}

// ResolveResale picks the resale estimate for a vehicle: the comparables
// average when available, then the vehicle's own stored estimate, then a
// conservative 10% over the current price.
func ResolveResale(vehicle domain.Vehicle, comparablesAverage float64) float64 {
	if comparablesAverage > 0 {
		return comparablesAverage
	}
	if vehicle.EstimatedResalePrice != nil && *vehicle.EstimatedResalePrice > 0 {
		return *vehicle.EstimatedResalePrice
	}
	return math.Round(vehicle.Price * 1.10)
}

// Deal computes the full cost of acquiring the vehicle and the maximum price
// worth bidding. A deal is interesting when the current price sits at or
// below that maximum.
func Deal(vehicle domain.Vehicle, params Params) domain.DealEvaluation {
	feesRate := params.FeesRate
	if feesRate <= 0 {
		feesRate = vehicle.FeesRate
	}
	if feesRate <= 0 {
		feesRate = DefaultFeesRate
	}
	marginRate := params.MarginRate
	if marginRate <= 0 {
		marginRate = DefaultMarginRate
	}

	var repairs float64
	if vehicle.EstimatedRepairCost != nil {
		repairs = *vehicle.EstimatedRepairCost
	}

	totalCost := vehicle.Price*(1+feesRate) + repairs
	targetMargin := params.ResalePrice * marginRate
	maxInvestment := math.Max(0, (params.ResalePrice-targetMargin-repairs)/(1+feesRate))

	return domain.DealEvaluation{
		IsInteresting:      vehicle.Price <= maxInvestment,
		MaxInvestmentPrice: math.Round(maxInvestment),
		TargetMargin:       math.Round(targetMargin),
		TotalEstimatedCost: math.Round(totalCost),
		Reasoning: fmt.Sprintf(
			"Resale ~€%.0f, fees %.0f%%, repairs €%.0f, target margin %.0f%%.",
			params.ResalePrice, feesRate*100, repairs, marginRate*100,
		),
	}
}
