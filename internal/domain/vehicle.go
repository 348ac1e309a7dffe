// Package domain defines the core types shared across the scraping,
// normalization, and evaluation subsystems.
package domain

import "time"

// Source identifies where a vehicle record originated.
type Source string

// Known record sources.
const (
	SourceAlcopa    Source = "ALCOPA"
	SourceLeboncoin Source = "LEBONCOIN"
	SourceUnknown   Source = "UNKNOWN"
)

// Condition represents the coarse state of a vehicle.
type Condition string

// Supported vehicle conditions.
const (
	ConditionNew     Condition = "NEW"
	ConditionUsed    Condition = "USED"
	ConditionDamaged Condition = "DAMAGED"
	ConditionUnknown Condition = "UNKNOWN"
)

// Vehicle is the canonical record produced by the normalizer and consumed by
// downstream valuation. All numeric fields are finite; unparseable inputs are
// resolved to documented fallbacks during normalization, never to errors.
type Vehicle struct {
	ID                   string    `json:"id"`
	Source               Source    `json:"source"`
	Brand                string    `json:"brand"`
	Model                string    `json:"model"`
	Version              string    `json:"version"`
	Year                 int       `json:"year"`
	MileageKm            float64   `json:"mileageKm"`
	FuelType             string    `json:"fuelType"`
	Gearbox              string    `json:"gearbox"`
	Doors                int       `json:"doors"`
	HorsePower           float64   `json:"horsePower"`
	CO2                  float64   `json:"co2"`
	Options              []string  `json:"options"`
	Condition            Condition `json:"condition"`
	ObservedDamages      []string  `json:"observedDamages"`
	Comments             []string  `json:"comments"`
	Price                float64   `json:"price"`
	FeesRate             float64   `json:"feesRate"`
	EstimatedRepairCost  *float64  `json:"estimatedRepairCost"`
	EstimatedResalePrice *float64  `json:"estimatedResalePrice"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// DealEvaluation summarizes whether a vehicle is worth bidding on.
type DealEvaluation struct {
	IsInteresting      bool    `json:"isInteresting"`
	MaxInvestmentPrice float64 `json:"maxInvestmentPrice"`
	TargetMargin       float64 `json:"targetMargin"`
	TotalEstimatedCost float64 `json:"totalEstimatedCost"`
	Reasoning          string  `json:"reasoning"`
}
