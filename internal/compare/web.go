package compare

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/parse"
)

const defaultSearchBase = "https://www.leboncoin.fr/recherche"

// Clock supplies timestamps for scraped comparables.
type Clock interface {
	Now() time.Time
}

// WebConfig controls the classified-ads collector.
type WebConfig struct {
	// BaseURL is the search endpoint; the production default is the
	// leboncoin search page.
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// WebSource scrapes live comparables from leboncoin search results.
type WebSource struct {
	cfg           WebConfig
	clock         Clock
	baseCollector *colly.Collector
}

// NewWebSource builds a WebSource.
func NewWebSource(cfg WebConfig, clock Clock) *WebSource {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSearchBase
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &WebSource{
		cfg:           cfg,
		clock:         clock,
		baseCollector: colly.NewCollector(colly.Async(false)),
	}
}

// Search queries the ads site for the target's brand and model and returns
// one comparable per priced result. Unpriced or untitled ads are skipped.
func (s *WebSource) Search(ctx context.Context, target domain.Vehicle) ([]domain.Vehicle, error) {
	collector := s.baseCollector.Clone()
	collector.IgnoreRobotsTxt = true
	collector.SetRequestTimeout(s.cfg.Timeout)
	if s.cfg.UserAgent != "" {
		collector.UserAgent = s.cfg.UserAgent
	}

	now := s.clock.Now()
	var comparables []domain.Vehicle
	collector.OnHTML(`[data-qa-id="aditem_container"]`, func(e *colly.HTMLElement) {
		title := parse.CleanText(e.ChildText(`[data-qa-id="aditem_title"]`))
		price := parse.EuroAmount(e.ChildText(`[data-qa-id="aditem_price"]`))
		if title == "" || price <= 0 {
			return
		}
		comparables = append(comparables, domain.Vehicle{
			ID:        fmt.Sprintf("LBC-%d", e.Index),
			Source:    domain.SourceLeboncoin,
			Brand:     target.Brand,
			Model:     target.Model,
			Version:   title,
			Year:      target.Year,
			FuelType:  target.FuelType,
			Gearbox:   target.Gearbox,
			MileageKm: target.MileageKm,
			Condition: domain.ConditionUsed,
			Price:     price,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})

	if err := s.visit(ctx, collector, s.searchURL(target)); err != nil {
		return nil, err
	}
	return comparables, nil
}

func (s *WebSource) searchURL(target domain.Vehicle) string {
	query := parse.CleanText(strings.Join([]string{target.Brand, target.Model}, " "))
	return fmt.Sprintf("%s?category=2&text=%s", s.cfg.BaseURL, url.QueryEscape(query))
}

func (s *WebSource) visit(ctx context.Context, collector *colly.Collector, searchURL string) error {
	done := make(chan error, 1)
	go func() {
		done <- collector.Visit(searchURL)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("comparables search canceled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return fmt.Errorf("comparables search failed: %w", err)
		}
		return nil
	}
}
