// Package scrape implements the Alcopa sale crawl pipeline: pagination
// discovery, listing-card extraction, concurrent detail fetching, and the
// hand-off to normalization.
package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/normalize"
)

// Selectors for the Alcopa sale pages. The results list lives inside a turbo
// frame that is populated after the initial document load.
const (
	searchResultsSelector = "turbo-frame#search-results"
	cardSelector          = ".card"
)

// Defaults applied when the config leaves a knob unset.
const (
	defaultMaxPages          = 3
	defaultDetailConcurrency = 3
)

// Pager is a single browser tab.
type Pager interface {
	Navigate(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, selector string) error
	HTML(ctx context.Context) (string, error)
	Close()
}

// Session opens tabs on one shared browsing context so detail fetches reuse
// cookies and connection state.
type Session interface {
	NewPage() (Pager, error)
}

// Config holds the scrape settings.
type Config struct {
	MaxPages          int
	DetailConcurrency int
}

// Scraper drives the crawl of one sale.
type Scraper struct {
	cfg        Config
	session    Session
	normalizer *normalize.Normalizer
	logger     *zap.Logger
}

// New builds a Scraper.
func New(cfg Config, session Session, normalizer *normalize.Normalizer, logger *zap.Logger) *Scraper {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	if cfg.DetailConcurrency <= 0 {
		cfg.DetailConcurrency = defaultDetailConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		cfg:        cfg,
		session:    session,
		normalizer: normalizer,
		logger:     logger,
	}
}

// ScrapeSale crawls every listing page of a sale, then fetches each
// discovered lot's detail page under bounded concurrency. Per-card failures
// are dropped with a warning; the returned slice is in completion order.
func (s *Scraper) ScrapeSale(ctx context.Context, saleURL string) ([]domain.Vehicle, error) {
	page, err := s.session.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open listing page: %w", err)
	}
	cards := s.collectCards(ctx, page, saleURL)
	page.Close()

	if len(cards) == 0 {
		s.logger.Warn("No vehicles detected", zap.String("url", saleURL))
		return []domain.Vehicle{}, nil
	}

	s.logger.Info("Cards discovered across the sale; fetching details",
		zap.Int("cards", len(cards)),
		zap.Int("concurrency", s.cfg.DetailConcurrency),
	)
	return s.fetchVehicles(ctx, cards), nil
}

// ScrapeVehicle fetches and normalizes a single detail page without any
// listing-card context.
func (s *Scraper) ScrapeVehicle(ctx context.Context, detailURL string) (domain.Vehicle, error) {
	page, err := s.session.NewPage()
	if err != nil {
		return domain.Vehicle{}, fmt.Errorf("open detail page: %w", err)
	}
	defer page.Close()
	return s.scrapeDetail(ctx, page, detailURL, nil)
}

func (s *Scraper) scrapeDetail(ctx context.Context, page Pager, detailURL string, card *domain.ListingCard) (domain.Vehicle, error) {
	if err := page.Navigate(ctx, detailURL); err != nil {
		return domain.Vehicle{}, fmt.Errorf("navigate detail: %w", err)
	}
	doc, err := pageDocument(ctx, page)
	if err != nil {
		return domain.Vehicle{}, err
	}
	raw := extractDetail(doc, detailURL)
	return s.normalizer.Normalize(raw, card), nil
}

func pageDocument(ctx context.Context, page Pager) (*goquery.Document, error) {
	html, err := page.HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}
	return doc, nil
}
