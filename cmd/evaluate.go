package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	clock "github.com/dealscout/alcopa-crawler/internal/clock/system"
	"github.com/dealscout/alcopa-crawler/internal/compare"
	"github.com/dealscout/alcopa-crawler/internal/domain"
	"github.com/dealscout/alcopa-crawler/internal/enrich"
	"github.com/dealscout/alcopa-crawler/internal/evaluate"
	"github.com/dealscout/alcopa-crawler/internal/storage"
)

// maxComparables caps how many of the closest comparables feed the resale
// price average.
const maxComparables = 5

// newEvaluateCmd creates the 'evaluate' subcommand. It reads a crawl result
// file and reports which lots are worth bidding on.
func newEvaluateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <vehicles.json>",
		Short: "Evaluate crawled vehicles against comparable ads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}
			return runEvaluate(cmd.Context(), rt, args[0], cmd.OutOrStdout())
		},
	}
}

func runEvaluate(ctx context.Context, rt *runtime, path string, out io.Writer) error {
	vehicles, err := storage.LoadVehicles(path)
	if err != nil {
		return fmt.Errorf("load vehicles: %w", err)
	}

	source := comparablesSource(rt)
	enricher := enrich.Placeholder{}

	for _, vehicle := range vehicles {
		enriched, err := enricher.Enrich(ctx, vehicle)
		if err != nil {
			rt.logger.Warn("Enrichment failed", zap.String("id", vehicle.ID), zap.Error(err))
			enriched = vehicle
		}

		comparables, err := source.Search(ctx, enriched)
		if err != nil {
			rt.logger.Warn("Comparables lookup failed", zap.String("id", vehicle.ID), zap.Error(err))
		}

		ranked := compare.RankBySimilarity(enriched, comparables)
		if len(ranked) > maxComparables {
			ranked = ranked[:maxComparables]
		}
		resale := evaluate.ResolveResale(enriched, compare.ResalePrice(ranked))

		result := evaluate.Deal(enriched, evaluate.Params{ResalePrice: resale})
		printEvaluation(out, enriched, result, len(ranked))
	}
	return nil
}

func comparablesSource(rt *runtime) compare.Source {
	if rt.cfg.ComparablesLive {
		return compare.NewWebSource(compare.WebConfig{
			UserAgent: rt.cfg.UserAgent,
			Timeout:   rt.cfg.NavTimeout,
		}, clock.New())
	}
	return compare.NewFileSource(rt.cfg.ComparablesFile)
}

func printEvaluation(out io.Writer, vehicle domain.Vehicle, result domain.DealEvaluation, comparables int) {
	verdict := "PASS"
	if result.IsInteresting {
		verdict = "BID"
	}
	fmt.Fprintf(out, "%s  %s %s %s (%d)\n", verdict, vehicle.ID, vehicle.Brand, vehicle.Model, vehicle.Year)
	fmt.Fprintf(out, "  price €%.0f, total cost €%.0f, max bid €%.0f (%d comparables)\n",
		vehicle.Price, result.TotalEstimatedCost, result.MaxInvestmentPrice, comparables)
	fmt.Fprintf(out, "  %s\n", result.Reasoning)
}
