package scrape

import (
	"context"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// nextPageSelectors are tried in order; the first strategy yielding a
// non-empty, non-self-referential URL wins.
var nextPageSelectors = []string{
	`a[rel="next"]`,
	`nav.pagination a[aria-label="Suivant"]`,
	`nav.pagination a.next`,
}

// collectCards walks the sale's pagination sequentially and returns every
// extractable listing card, in discovery order. Pagination must be
// sequential: next-page discovery depends on the DOM of the page just
// loaded. A page that fails to load or never shows results is fatal to the
// remaining pagination but not to the cards already collected.
func (s *Scraper) collectCards(ctx context.Context, page Pager, saleURL string) []domain.ListingCard {
	var cards []domain.ListingCard
	currentURL := saleURL

	for pageIndex := 1; pageIndex <= s.cfg.MaxPages; pageIndex++ {
		s.logger.Info("Loading sale page",
			zap.Int("page", pageIndex),
			zap.String("url", currentURL),
		)

		if err := page.Navigate(ctx, currentURL); err != nil {
			s.logger.Warn("Sale page failed to load; keeping cards collected so far",
				zap.String("url", currentURL), zap.Error(err))
			break
		}
		if err := page.WaitVisible(ctx, searchResultsSelector+" "+cardSelector); err != nil {
			s.logger.Warn("Results never appeared; keeping cards collected so far",
				zap.String("url", currentURL), zap.Error(err))
			break
		}
		doc, err := pageDocument(ctx, page)
		if err != nil {
			s.logger.Warn("Sale page could not be parsed; keeping cards collected so far",
				zap.String("url", currentURL), zap.Error(err))
			break
		}
		PagesCrawled.Inc()

		pageCards := s.extractCards(doc, currentURL)
		if len(pageCards) == 0 {
			s.logger.Warn("Sale page yielded no cards", zap.String("url", currentURL))
		}
		cards = append(cards, pageCards...)

		next, ok := findNextPageURL(doc, currentURL)
		if !ok || next == currentURL {
			break
		}
		currentURL = next
	}

	return cards
}

func (s *Scraper) extractCards(doc *goquery.Document, baseURL string) []domain.ListingCard {
	var cards []domain.ListingCard
	doc.Find(searchResultsSelector + " " + cardSelector).Each(func(_ int, sel *goquery.Selection) {
		card, ok := s.extractCard(sel, baseURL)
		if !ok {
			return
		}
		cards = append(cards, card)
		CardsDiscovered.Inc()
	})
	return cards
}

// findNextPageURL tries each pagination strategy in order and returns the
// first link resolving to a different URL. The cycle guard only covers
// immediate repetition of the current URL, matching the upstream behavior.
func findNextPageURL(doc *goquery.Document, currentURL string) (string, bool) {
	for _, selector := range nextPageSelectors {
		href, ok := doc.Find(selector).First().Attr("href")
		if !ok || href == "" {
			continue
		}
		next := resolveURL(currentURL, href)
		if next != "" && next != currentURL {
			return next, true
		}
	}
	return "", false
}

// resolveURL makes href absolute against base; on parse failure the raw href
// is returned as-is.
func resolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	resolved, err := baseURL.Parse(href)
	if err != nil {
		return href
	}
	return resolved.String()
}
