// Package config initializes and loads the application's configuration. It
// uses Viper so settings can come from a config file, environment variables
// (ALCOPA_ prefix), or defaults, and hands the crawl pipeline an explicit
// struct instead of ambient process-wide state.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a scrape run.
type Config struct {
	MaxPages          int
	DetailConcurrency int
	NavTimeout        time.Duration
	UserAgent         string
	DomainQPS         float64
	Headless          bool
	OutputDir         string
	ComparablesFile   string
	ComparablesLive   bool
	Development       bool
}

// Init registers defaults, search paths, and the ALCOPA_ environment prefix.
// Call once at startup, before Load.
func Init() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.dealscout")

	viper.SetDefault("max_pages", 3)
	viper.SetDefault("detail_concurrency", 3)
	viper.SetDefault("nav_timeout", "35s")
	viper.SetDefault("user_agent", "DealScout/1.0 (+https://github.com/dealscout/alcopa-crawler)")
	viper.SetDefault("domain_qps", 0.5)
	viper.SetDefault("headless", true)
	viper.SetDefault("output_dir", "data")
	viper.SetDefault("comparables_file", "data/leboncoin-samples.json")
	viper.SetDefault("comparables_live", false)
	viper.SetDefault("development", false)

	// ALCOPA_MAX_PAGES, ALCOPA_DETAIL_CONCURRENCY, ...
	viper.SetEnvPrefix("ALCOPA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Parse failures are surfaced once a logger exists; defaults and
			// environment variables still apply.
			fmt.Printf("config: error reading config file: %v\n", err)
		}
	}
}

// Load constructs a Config by reading from Viper and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		MaxPages:          v.GetInt("max_pages"),
		DetailConcurrency: v.GetInt("detail_concurrency"),
		NavTimeout:        v.GetDuration("nav_timeout"),
		UserAgent:         v.GetString("user_agent"),
		DomainQPS:         v.GetFloat64("domain_qps"),
		Headless:          v.GetBool("headless"),
		OutputDir:         v.GetString("output_dir"),
		ComparablesFile:   v.GetString("comparables_file"),
		ComparablesLive:   v.GetBool("comparables_live"),
		Development:       v.GetBool("development"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.MaxPages <= 0 {
		return fmt.Errorf("max_pages must be > 0")
	}
	if c.DetailConcurrency <= 0 {
		return fmt.Errorf("detail_concurrency must be > 0")
	}
	if c.NavTimeout <= 0 {
		return fmt.Errorf("nav_timeout must be > 0")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent must be set")
	}
	if c.DomainQPS < 0 {
		return fmt.Errorf("domain_qps must be >= 0")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must be set")
	}
	return nil
}
