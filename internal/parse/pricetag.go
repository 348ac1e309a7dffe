package parse

import (
	"math"
	"regexp"
	"strings"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// priceTagPattern locates a known price label immediately followed by a
// numeric amount (digits, spaces, separators). The label order matters: the
// current-bid label is tried alongside the starting-price label and the
// first occurrence in the text wins.
var priceTagPattern = regexp.MustCompile(`(?i)(Enchère courante|Mise à prix)[^0-9]*([0-9\s.,]+)`)

// PriceTag is the labeled amount extracted from a listing card footer.
type PriceTag struct {
	Amount float64
	Label  string
	Type   domain.PriceType
}

// ParsePriceTag scans free-form footer text for a labeled price. It returns
// false when no label+amount pair is present or the amount is not finite; an
// un-priced lot cannot be evaluated downstream.
func ParsePriceTag(text string) (PriceTag, bool) {
	match := priceTagPattern.FindStringSubmatch(text)
	if match == nil {
		return PriceTag{}, false
	}

	label := CleanText(match[1])
	amount := Number(strings.ReplaceAll(match[2], "€", ""), math.NaN())
	if math.IsNaN(amount) {
		return PriceTag{}, false
	}

	priceType := domain.PriceStarting
	if strings.Contains(strings.ToLower(label), "enchère") {
		priceType = domain.PriceBidCurrent
	}

	return PriceTag{Amount: amount, Label: label, Type: priceType}, true
}
