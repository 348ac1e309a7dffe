package scrape

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/parse"
)

// extractCard turns one card node into a ListingCard. A card without a title
// link is dropped silently; a card whose footer carries no recognizable
// price pattern is dropped with a warning, since an un-priced lot cannot be
// evaluated downstream. Lot number and title are best-effort.
func (s *Scraper) extractCard(sel *goquery.Selection, baseURL string) (domain.ListingCard, bool) {
	link := sel.Find(".card-title a").First()
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return domain.ListingCard{}, false
	}
	detailURL := resolveURL(baseURL, href)

	rawTitle := parse.CleanText(link.Text())
	lotNumber := parse.CleanText(sel.Find(".card-title small, .card-title .text-muted").First().Text())

	footerText := sel.Find(".card-footer").Text()
	tag, ok := parse.ParsePriceTag(footerText)
	if !ok {
		s.logger.Warn("Price not found for card", zap.String("url", detailURL))
		CardsDropped.Inc()
		return domain.ListingCard{}, false
	}

	return domain.ListingCard{
		DetailURL:      detailURL,
		SourceURL:      baseURL,
		LotNumber:      lotNumber,
		RawTitle:       rawTitle,
		ListPrice:      tag.Amount,
		ListPriceLabel: tag.Label,
		ListPriceType:  tag.Type,
	}, true
}
