package config

import (
	"os"
	"path/filepath"
	"testing"

	"traderscout/internal/domain"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func Test_Default(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	require.Equal(t, 30, cfg.Reliability.MinAccountAgeDays)
	require.Equal(t, 50, cfg.Reliability.MinTotalTrades)
	require.Equal(t, 40.0, cfg.Reliability.MaxSingleTradePnlPct)
	require.Equal(t, 3, cfg.Reliability.MinDiversification)
	require.Equal(t, 90.0, cfg.Reliability.SuspiciousWinRatePct)
	require.Len(t, cfg.Scoring.Profiles, 3)
	require.Equal(t, 20.0, cfg.Scoring.Profiles[domain.RiskProfile_Moderate].Limits.MaxDrawdownPct)
}

func Test_Load(t *testing.T) {
	t.Run("file values overlay defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
engine:
  batch_concurrency: 2
reliability:
  min_total_trades: 25
log:
  level: debug
`)

		cfg, err := Load(path)
		require.NoError(t, err)

		require.Equal(t, 2, cfg.Engine.BatchConcurrency)
		require.Equal(t, 25, cfg.Reliability.MinTotalTrades)
		require.Equal(t, "debug", cfg.Log.Level)
		// untouched keys keep their defaults
		require.Equal(t, 3, cfg.Engine.TopCoinsLimit)
		require.Equal(t, 30, cfg.Reliability.MinAccountAgeDays)
		require.Len(t, cfg.Scoring.Profiles, 3)
	})

	t.Run("LOG_LEVEL env wins over the file", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "warn")
		path := writeConfigFile(t, "log:\n  level: debug\n")

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "warn", cfg.Log.Level)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed YAML is an error", func(t *testing.T) {
		path := writeConfigFile(t, "engine: [not a mapping")
		_, err := Load(path)
		require.Error(t, err)
	})

	t.Run("weights that do not sum to 100 are rejected", func(t *testing.T) {
		path := writeConfigFile(t, `
scoring:
  profiles:
    moderate:
      weights:
        max_drawdown: 25
        win_rate: 20
        roi: 25
        consistency: 15
        risk_adjusted_return: 10
      limits:
        max_drawdown_pct: 20
`)
		_, err := Load(path)
		require.ErrorContains(t, err, "must sum to 100")
	})
}

func Test_Validate(t *testing.T) {
	t.Run("negative age threshold", func(t *testing.T) {
		cfg := Default()
		cfg.Reliability.MinAccountAgeDays = -1
		require.ErrorContains(t, cfg.Validate(), "min_account_age_days")
	})

	t.Run("missing profile", func(t *testing.T) {
		cfg := Default()
		delete(cfg.Scoring.Profiles, domain.RiskProfile_Aggressive)
		require.ErrorContains(t, cfg.Validate(), "missing")
	})

	t.Run("zero drawdown ceiling", func(t *testing.T) {
		cfg := Default()
		p := cfg.Scoring.Profiles[domain.RiskProfile_Conservative]
		p.Limits.MaxDrawdownPct = 0
		cfg.Scoring.Profiles[domain.RiskProfile_Conservative] = p
		require.ErrorContains(t, cfg.Validate(), "max_drawdown_pct")
	})
}
