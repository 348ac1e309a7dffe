package scrape

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/parse"
)

// labelSet is an ordered list of candidate substrings identifying one target
// field among the page's label/value pairs. Labels vary across listings, so
// matching is fuzzy: the first spec entry whose label contains any candidate
// wins. Candidate order is a deliberate priority, not alphabetical.
type labelSet []string

var (
	yearLabels    = labelSet{"mise", "année", "circulation"}
	mileageLabels = labelSet{"kilom", "km"}
	fuelLabels    = labelSet{"carburant", "energie"}
	gearboxLabels = labelSet{"boîte", "transmission"}
	powerLabels   = labelSet{"puissance"}
	co2Labels     = labelSet{"co2"}
	doorLabels    = labelSet{"portes"}
)

// Detail-page list containers. Listings use different markup generations, so
// several containers are tried per group; a missing group yields an empty
// list, never a failed extraction.
const (
	optionsSelector  = ".options li, .equipements li, .equipment-list li"
	damagesSelector  = ".damages li, .damage-list li"
	commentsSelector = ".observations li, .notes li, .card-body p"
	headerSelector   = "h1, .vehicle-title"
)

type specEntry struct {
	key   string
	value string
}

// extractDetail scrapes one detail page into a RawRecord. The free-text
// header is tokenized on whitespace: first token brand, next two model, rest
// version. Titles are not machine-structured, so this stays best-effort.
func extractDetail(doc *goquery.Document, pageURL string) domain.RawRecord {
	header := parse.CleanText(doc.Find(headerSelector).First().Text())
	tokens := strings.Fields(header)

	raw := domain.RawRecord{
		ID:              detailID(pageURL),
		Brand:           "Unknown",
		Model:           joinTokens(tokens, 1, 3),
		Version:         joinTokens(tokens, 3, len(tokens)),
		Options:         listText(doc, optionsSelector),
		ObservedDamages: listText(doc, damagesSelector),
		Comments:        listText(doc, commentsSelector),
		Condition:       "USED",
	}
	if len(tokens) > 0 {
		raw.Brand = tokens[0]
	}

	entries := collectSpecEntries(doc)
	if value, ok := yearLabels.lookup(entries); ok {
		if year, found := parse.Year(value); found {
			raw.Year = year
		}
	}
	if value, ok := mileageLabels.lookup(entries); ok {
		raw.Mileage = value
	}
	if value, ok := fuelLabels.lookup(entries); ok {
		raw.Fuel = value
	}
	if value, ok := gearboxLabels.lookup(entries); ok {
		raw.Gearbox = value
	}
	if value, ok := powerLabels.lookup(entries); ok {
		if hp, found := parse.HorsePower(value); found {
			raw.HorsePower = hp
		}
	}
	if value, ok := co2Labels.lookup(entries); ok {
		raw.CO2 = value
	}
	if value, ok := doorLabels.lookup(entries); ok {
		raw.Doors = value
	}

	return raw
}

// lookup scans the spec entries in page order and returns the value of the
// first entry whose label contains any of the candidates, case-insensitive.
func (ls labelSet) lookup(entries []specEntry) (string, bool) {
	for _, entry := range entries {
		normalized := strings.ToLower(entry.key)
		for _, candidate := range ls {
			if strings.Contains(normalized, candidate) {
				value := strings.TrimSpace(entry.value)
				if value != "" {
					return value, true
				}
				return "", false
			}
		}
	}
	return "", false
}

// collectSpecEntries reads the specification table as dt/dd pairs.
func collectSpecEntries(doc *goquery.Document) []specEntry {
	var entries []specEntry
	doc.Find("dl dt").Each(func(_ int, dt *goquery.Selection) {
		entries = append(entries, specEntry{
			key:   strings.TrimSpace(dt.Text()),
			value: strings.TrimSpace(dt.Next().Text()),
		})
	})
	return entries
}

func listText(doc *goquery.Document, selector string) []string {
	var items []string
	doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		if text := parse.CleanText(sel.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// detailID derives a record id from the last non-empty URL path segment. The
// time-based fallback is not unique under concurrent synthesis; that matches
// the upstream behavior.
func detailID(pageURL string) string {
	if parsed, err := url.Parse(pageURL); err == nil {
		segments := strings.FieldsFunc(parsed.Path, func(r rune) bool { return r == '/' })
		if len(segments) > 0 {
			return segments[len(segments)-1]
		}
	}
	return fmt.Sprintf("ALC-%d", time.Now().UnixMilli())
}

func joinTokens(tokens []string, from, to int) string {
	if from >= len(tokens) {
		return ""
	}
	if to > len(tokens) {
		to = len(tokens)
	}
	return strings.TrimSpace(strings.Join(tokens[from:to], " "))
}
