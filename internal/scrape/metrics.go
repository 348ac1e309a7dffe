package scrape

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PagesCrawled tracks the number of listing pages successfully loaded.
	PagesCrawled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_listing_pages_total",
		Help: "The total number of listing pages crawled.",
	})
	// CardsDiscovered tracks the number of listing cards extracted.
	CardsDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_cards_discovered_total",
		Help: "The total number of listing cards extracted from sale pages.",
	})
	// CardsDropped tracks cards discarded for missing links or prices.
	CardsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_cards_dropped_total",
		Help: "The total number of listing cards dropped during extraction.",
	})
	// DetailFailures tracks detail pages that failed to fetch or extract.
	DetailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_detail_failures_total",
		Help: "The total number of detail fetches that failed.",
	})
	// VehiclesNormalized tracks records that completed the full pipeline.
	VehiclesNormalized = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_vehicles_normalized_total",
		Help: "The total number of vehicles normalized from detail pages.",
	})
)
