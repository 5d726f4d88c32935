package config

import (
	"fmt"
	"math"
	"os"

	"traderscout/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config carries every tunable the engine reads. All reliability
// thresholds and scoring weights live here rather than as inline
// literals, so boundary values can be tested and tuned without code
// changes.
type Config struct {
	Engine      EngineConfig      `yaml:"engine"`
	Reliability ReliabilityConfig `yaml:"reliability"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Log         LogConfig         `yaml:"log"`
}

// EngineConfig controls the orchestrator.
type EngineConfig struct {
	BatchConcurrency int `yaml:"batch_concurrency"`
	TopCoinsLimit    int `yaml:"top_coins_limit"`
}

// ReliabilityConfig holds the trustworthiness heuristics. The
// concentration and win-rate numbers are heuristic defaults, not
// statistically derived.
type ReliabilityConfig struct {
	MinAccountAgeDays    int     `yaml:"min_account_age_days"`
	MinTotalTrades       int     `yaml:"min_total_trades"`
	MaxSingleTradePnlPct float64 `yaml:"max_single_trade_pnl_pct"`
	MinDiversification   int     `yaml:"min_diversification"`
	SuspiciousWinRatePct float64 `yaml:"suspicious_win_rate_pct"`
}

// ScoringConfig holds the per-profile weight tables and metric bounds.
type ScoringConfig struct {
	RiskFreeRatePct  float64                              `yaml:"risk_free_rate_pct"`
	RarScalingFactor float64                              `yaml:"rar_scaling_factor"`
	Profiles         map[domain.RiskProfile]ProfileConfig `yaml:"profiles"`
}

// ProfileConfig is one risk-tolerance regime.
type ProfileConfig struct {
	Weights WeightsConfig `yaml:"weights"`
	Limits  LimitsConfig  `yaml:"limits"`
}

// WeightsConfig must sum to 100 within a profile.
type WeightsConfig struct {
	MaxDrawdown        float64 `yaml:"max_drawdown"`
	WinRate            float64 `yaml:"win_rate"`
	Roi                float64 `yaml:"roi"`
	Consistency        float64 `yaml:"consistency"`
	RiskAdjustedReturn float64 `yaml:"risk_adjusted_return"`
}

// LimitsConfig bounds metrics for one profile. MaxDrawdownPct is both the
// drawdown-score ceiling (a drawdown at the ceiling scores 0) and the
// profile-fit limit. The remaining fields feed advisory profile-fit
// findings only.
type LimitsConfig struct {
	MaxDrawdownPct float64 `yaml:"max_drawdown_pct"`
	MinRoiPct      float64 `yaml:"min_roi_pct"`
	MaxRoiPct      float64 `yaml:"max_roi_pct"`
	MinWinRatePct  float64 `yaml:"min_win_rate_pct"`
	MinDaysActive  int     `yaml:"min_days_active"`
	MinCopiers     int     `yaml:"min_copiers"`
}

// LogConfig controls log output.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Default returns a complete engine configuration with the documented
// threshold and weight defaults.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			BatchConcurrency: 8,
			TopCoinsLimit:    3,
		},
		Reliability: ReliabilityConfig{
			MinAccountAgeDays:    30,
			MinTotalTrades:       50,
			MaxSingleTradePnlPct: 40,
			MinDiversification:   3,
			SuspiciousWinRatePct: 90,
		},
		Scoring: ScoringConfig{
			RiskFreeRatePct:  0,
			RarScalingFactor: 100.0 / 3.0, // RAR of ~3 maps to ~100
			Profiles: map[domain.RiskProfile]ProfileConfig{
				domain.RiskProfile_Conservative: {
					Weights: WeightsConfig{MaxDrawdown: 30, WinRate: 25, Roi: 15, Consistency: 20, RiskAdjustedReturn: 10},
					Limits:  LimitsConfig{MaxDrawdownPct: 10, MinRoiPct: 10, MaxRoiPct: 30, MinWinRatePct: 60, MinDaysActive: 180, MinCopiers: 200},
				},
				domain.RiskProfile_Moderate: {
					Weights: WeightsConfig{MaxDrawdown: 25, WinRate: 20, Roi: 25, Consistency: 15, RiskAdjustedReturn: 15},
					Limits:  LimitsConfig{MaxDrawdownPct: 20, MinRoiPct: 20, MaxRoiPct: 60, MinWinRatePct: 55, MinDaysActive: 90, MinCopiers: 100},
				},
				domain.RiskProfile_Aggressive: {
					Weights: WeightsConfig{MaxDrawdown: 20, WinRate: 15, Roi: 30, Consistency: 10, RiskAdjustedReturn: 25},
					Limits:  LimitsConfig{MaxDrawdownPct: 35, MinRoiPct: 40, MaxRoiPct: 200, MinWinRatePct: 50, MinDaysActive: 60, MinCopiers: 50},
				},
			},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads the YAML config at path over the defaults, then applies .env
// and environment overrides. Keys absent from the file keep their default.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(cfg)
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func setDefaults(cfg *Config) {
	def := Default()
	if cfg.Engine.BatchConcurrency <= 0 {
		cfg.Engine.BatchConcurrency = def.Engine.BatchConcurrency
	}
	if cfg.Engine.TopCoinsLimit <= 0 {
		cfg.Engine.TopCoinsLimit = def.Engine.TopCoinsLimit
	}
	if cfg.Scoring.RarScalingFactor <= 0 {
		cfg.Scoring.RarScalingFactor = def.Scoring.RarScalingFactor
	}
	if len(cfg.Scoring.Profiles) == 0 {
		cfg.Scoring.Profiles = def.Scoring.Profiles
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
}

// Validate rejects configs the engine cannot score with.
func (c *Config) Validate() error {
	if c.Reliability.MinAccountAgeDays < 0 {
		return fmt.Errorf("reliability.min_account_age_days must be >= 0, got %d", c.Reliability.MinAccountAgeDays)
	}
	if c.Reliability.MinTotalTrades < 0 {
		return fmt.Errorf("reliability.min_total_trades must be >= 0, got %d", c.Reliability.MinTotalTrades)
	}
	for _, profile := range []domain.RiskProfile{domain.RiskProfile_Conservative, domain.RiskProfile_Moderate, domain.RiskProfile_Aggressive} {
		p, ok := c.Scoring.Profiles[profile]
		if !ok {
			return fmt.Errorf("scoring.profiles missing %q", profile)
		}
		w := p.Weights
		sum := w.MaxDrawdown + w.WinRate + w.Roi + w.Consistency + w.RiskAdjustedReturn
		if math.Abs(sum-100) > 0.01 {
			return fmt.Errorf("scoring.profiles[%s].weights must sum to 100, got %.2f", profile, sum)
		}
		if p.Limits.MaxDrawdownPct <= 0 {
			return fmt.Errorf("scoring.profiles[%s].limits.max_drawdown_pct must be > 0, got %.2f", profile, p.Limits.MaxDrawdownPct)
		}
	}
	return nil
}
