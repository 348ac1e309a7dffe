package scrape

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/dealscout/alcopa-crawler/internal/domain"
)

// fetchVehicles drains the card set with a fixed-size worker pool. Each
// worker opens its own tab on the shared session, so one slow page never
// blocks the others. A failed card is logged and dropped; failure never
// propagates to sibling workers. Result order is completion order.
func (s *Scraper) fetchVehicles(ctx context.Context, cards []domain.ListingCard) []domain.Vehicle {
	queue := make(chan domain.ListingCard, len(cards))
	for _, card := range cards {
		queue <- card
	}
	close(queue)

	workers := s.cfg.DetailConcurrency
	if workers > len(cards) {
		workers = len(cards)
	}

	var (
		mu       sync.Mutex
		vehicles []domain.Vehicle
		wg       sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for card := range queue {
				vehicle, err := s.fetchCard(ctx, card, workerID)
				if err != nil {
					s.logger.Warn("Dropping card",
						zap.Int("worker", workerID),
						zap.String("url", card.DetailURL),
						zap.Error(err),
					)
					DetailFailures.Inc()
					continue
				}
				mu.Lock()
				vehicles = append(vehicles, vehicle)
				mu.Unlock()
				VehiclesNormalized.Inc()
			}
		}(i)
	}
	wg.Wait()

	return vehicles
}

func (s *Scraper) fetchCard(ctx context.Context, card domain.ListingCard, workerID int) (domain.Vehicle, error) {
	s.logger.Debug("Fetching detail page",
		zap.Int("worker", workerID),
		zap.String("url", card.DetailURL),
	)
	page, err := s.session.NewPage()
	if err != nil {
		return domain.Vehicle{}, err
	}
	defer page.Close()
	return s.scrapeDetail(ctx, page, card.DetailURL, &card)
}
