// Package parse converts the noisy text scraped from auction pages into
// numbers, years, and currency amounts. Every function is total: bad input
// resolves to the caller-supplied fallback, never to an error.
package parse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	numericChars   = regexp.MustCompile(`[^0-9.,-]`)
	yearPattern    = regexp.MustCompile(`(20\d{2}|19\d{2})`)
	powerPattern   = regexp.MustCompile(`(?i)([0-9]+)\s?(?:cv|ch|kw)`)
)

// CleanText collapses whitespace runs to single spaces and trims the result.
func CleanText(s string) string {
	return strings.TrimSpace(whitespaceRuns.ReplaceAllString(s, " "))
}

// Number coerces a string-or-number value into a finite float64. Strings are
// stripped to [0-9.,-] with commas treated as decimal points, which handles
// amounts like "2 400 €" and "48 000 km". Anything unparseable, non-finite,
// or of an unexpected type yields fallback.
func Number(v any, fallback float64) float64 {
	switch val := v.(type) {
	case nil:
		return fallback
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return fallback
		}
		return val
	case float32:
		return Number(float64(val), fallback)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		normalized := numericChars.ReplaceAllString(val, "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
		parsed, err := strconv.ParseFloat(normalized, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return fallback
		}
		return parsed
	default:
		return fallback
	}
}

// Year extracts the first plausible four-digit year (19xx or 20xx).
func Year(s string) (int, bool) {
	match := yearPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return year, true
}

// EuroAmount parses a euro-formatted amount, tolerating thousands separators
// and a currency symbol. Unparseable input yields 0.
func EuroAmount(s string) float64 {
	return Number(strings.ReplaceAll(s, "€", ""), 0)
}

// HorsePower parses a power reading. A unit-suffixed number ("110 cv",
// "81kW") wins; without a recognizable unit the generic numeric parse is the
// fallback. The boolean reports whether any value was found.
func HorsePower(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if m := powerPattern.FindStringSubmatch(s); len(m) > 1 {
		parsed, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			return parsed, true
		}
	}
	value := Number(s, math.NaN())
	if math.IsNaN(value) {
		return 0, false
	}
	return value, true
}
