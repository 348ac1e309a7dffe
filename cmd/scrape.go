package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealscout/alcopa-crawler/internal/browser"
	clock "github.com/dealscout/alcopa-crawler/internal/clock/system"
	idgen "github.com/dealscout/alcopa-crawler/internal/id/uuid"
	"github.com/dealscout/alcopa-crawler/internal/normalize"
	"github.com/dealscout/alcopa-crawler/internal/scrape"
	"github.com/dealscout/alcopa-crawler/internal/storage"
)

// newScrapeSaleCmd creates the 'scrape-sale' subcommand. It crawls one sale
// end to end and writes the normalized vehicles to a JSON file.
func newScrapeSaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape-sale <sale-url>",
		Short: "Crawl an Alcopa sale and save the vehicles as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}
			return runScrapeSale(cmd.Context(), rt, args[0], cmd.OutOrStdout())
		},
	}
}

func runScrapeSale(ctx context.Context, rt *runtime, saleURL string, out io.Writer) error {
	logger := rt.logger
	if runID, err := idgen.NewGenerator().NewID(); err == nil {
		logger = logger.With(zap.String("run_id", runID))
	}

	session, err := browser.NewSession(browser.Config{
		Headless:   rt.cfg.Headless,
		UserAgent:  rt.cfg.UserAgent,
		NavTimeout: rt.cfg.NavTimeout,
		DomainQPS:  rt.cfg.DomainQPS,
	}, logger)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			logger.Warn("Failed to close browser session", zap.Error(cerr))
		}
	}()

	scraper := scrape.New(scrape.Config{
		MaxPages:          rt.cfg.MaxPages,
		DetailConcurrency: rt.cfg.DetailConcurrency,
	}, sessionAdapter{session}, normalize.New(clock.New()), logger)

	vehicles, err := scraper.ScrapeSale(ctx, saleURL)
	if err != nil {
		return fmt.Errorf("scrape sale: %w", err)
	}

	path := outputPath(rt.cfg.OutputDir, saleURL)
	if err := storage.SaveVehicles(path, vehicles); err != nil {
		return fmt.Errorf("save vehicles: %w", err)
	}

	logger.Info("Sale scraped",
		zap.Int("vehicles", len(vehicles)),
		zap.String("output", path),
	)
	fmt.Fprintf(out, "Saved %d vehicles to %s\n", len(vehicles), path)
	return nil
}

// sessionAdapter narrows *browser.Session to the scraper's Session interface.
type sessionAdapter struct {
	session *browser.Session
}

func (a sessionAdapter) NewPage() (scrape.Pager, error) {
	page, err := a.session.NewPage()
	if err != nil {
		return nil, err
	}
	return page, nil
}

// outputPath derives data/alcopa-<saleID>.json from the sale URL, where the
// sale ID is the last non-empty path segment.
func outputPath(dir, saleURL string) string {
	return storage.EnsureJSONPath(filepath.Join(dir, "alcopa-"+saleID(saleURL)))
}

func saleID(saleURL string) string {
	parsed, err := url.Parse(saleURL)
	if err != nil {
		return "sale"
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	last := segments[len(segments)-1]
	if last == "" {
		return "sale"
	}
	return last
}
