package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("max_pages", 3)
	v.SetDefault("detail_concurrency", 3)
	v.SetDefault("nav_timeout", "35s")
	v.SetDefault("user_agent", "test-agent")
	v.SetDefault("domain_qps", 0.5)
	v.SetDefault("headless", true)
	v.SetDefault("output_dir", "data")
	v.SetDefault("comparables_file", "data/leboncoin-samples.json")
	v.SetDefault("comparables_live", false)
	v.SetDefault("development", false)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(newTestViper())
	require.NoError(t, err)
	require.Equal(t, 3, cfg.MaxPages)
	require.Equal(t, 3, cfg.DetailConcurrency)
	require.Equal(t, 35*time.Second, cfg.NavTimeout)
	require.True(t, cfg.Headless)
	require.Equal(t, "data", cfg.OutputDir)
}

func TestLoadOverrides(t *testing.T) {
	t.Parallel()

	v := newTestViper()
	v.Set("max_pages", 10)
	v.Set("detail_concurrency", 5)

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 10, cfg.MaxPages)
	require.Equal(t, 5, cfg.DetailConcurrency)
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*viper.Viper)
	}{
		{name: "zero max pages", mutate: func(v *viper.Viper) { v.Set("max_pages", 0) }},
		{name: "zero concurrency", mutate: func(v *viper.Viper) { v.Set("detail_concurrency", 0) }},
		{name: "zero timeout", mutate: func(v *viper.Viper) { v.Set("nav_timeout", "0s") }},
		{name: "empty user agent", mutate: func(v *viper.Viper) { v.Set("user_agent", "") }},
		{name: "negative qps", mutate: func(v *viper.Viper) { v.Set("domain_qps", -1.0) }},
		{name: "empty output dir", mutate: func(v *viper.Viper) { v.Set("output_dir", "") }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			v := newTestViper()
			tc.mutate(v)
			_, err := Load(v)
			require.Error(t, err)
		})
	}
}
