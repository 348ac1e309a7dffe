package domain

// PriceType classifies the price shown on a listing card.
type PriceType string

// Listing price types. A card showing a live auction price is BID_CURRENT;
// a reserve/starting price is STARTING_PRICE.
const (
	PriceBidCurrent  PriceType = "BID_CURRENT"
	PriceStarting    PriceType = "STARTING_PRICE"
	PriceTypeUnknown PriceType = "UNKNOWN"
)

// ListingCard is the summary extracted from one card on a paginated results
// page. It is produced once per discovered card and never mutated.
type ListingCard struct {
	DetailURL      string
	SourceURL      string
	LotNumber      string
	RawTitle       string
	ListPrice      float64
	ListPriceLabel string
	ListPriceType  PriceType
}

// RawRecord is the loosely typed bag of fields scraped from a detail page.
// Any field may be absent, and numeric-ish fields may arrive as strings; the
// normalizer owns all coercion and fallback logic. RawRecord only lives
// between extraction and normalization.
type RawRecord struct {
	ID                   string
	Brand                string
	Model                string
	Version              string
	Year                 any
	RegistrationYear     any
	Mileage              any
	MileageKm            any
	Fuel                 string
	FuelType             string
	Gearbox              string
	Transmission         string
	Doors                any
	HorsePower           any
	HP                   any
	CO2                  any
	Options              []string
	Condition            string
	ObservedDamages      []string
	Comments             []string
	Price                any
	FeesRate             *float64
	EstimatedRepairCost  any
	EstimatedResalePrice any
	CreatedAt            string
	UpdatedAt            string
	ListPrice            any
	ListPriceType        PriceType
	ListPriceLabel       string
	LotNumber            string
}
