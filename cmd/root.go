// Package cmd defines and implements the CLI commands for the dealscout
// executable.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dealscout/alcopa-crawler/internal/config"
	"github.com/dealscout/alcopa-crawler/internal/logging"
)

// runtimeKeyType is the key for storing the runtime in the command context.
type runtimeKeyType string

const runtimeKey runtimeKeyType = "runtime"

// runtime bundles the loaded configuration and logger for subcommands.
type runtime struct {
	cfg    config.Config
	logger *zap.Logger
}

// newRuntime is a variable so tests can inject a canned runtime.
var newRuntime = func() (*runtime, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.Development)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &runtime{cfg: cfg, logger: logger}, nil
}

func runtimeFrom(ctx context.Context) (*runtime, error) {
	rt, ok := ctx.Value(runtimeKey).(*runtime)
	if !ok || rt == nil {
		return nil, fmt.Errorf("runtime not initialized")
	}
	return rt, nil
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dealscout",
		Short: "Crawls Alcopa auction sales and evaluates the deals.",
		Long: `dealscout crawls Alcopa auction sale pages with a headless browser,
normalizes each lot into a canonical vehicle record, and estimates whether
bidding is worthwhile against comparable classified ads.`,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime()
			if err != nil {
				return fmt.Errorf("initialize runtime: %w", err)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), runtimeKey, rt))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if rt, ok := cmd.Context().Value(runtimeKey).(*runtime); ok && rt != nil {
				_ = rt.logger.Sync()
			}
		},
	}

	cobra.OnInitialize(func() {
		// A .env file is optional; environment variables win either way.
		_ = godotenv.Load()
		config.Init()
	})

	cmd.AddCommand(newScrapeSaleCmd())
	cmd.AddCommand(newEvaluateCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
