package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type RiskProfile string

const (
	RiskProfile_Conservative RiskProfile = "conservative"
	RiskProfile_Moderate     RiskProfile = "moderate"
	RiskProfile_Aggressive   RiskProfile = "aggressive"
)

func ParseRiskProfile(s string) (RiskProfile, error) {
	switch RiskProfile(s) {
	case RiskProfile_Conservative, RiskProfile_Moderate, RiskProfile_Aggressive:
		return RiskProfile(s), nil
	}
	return "", fmt.Errorf("unknown risk profile %q", s)
}

// ValidationMetrics are the raw numbers behind a reliability judgment.
type ValidationMetrics struct {
	AccountAgeDays           int             `json:"accountAgeDays"`
	TotalTrades              int             `json:"totalTrades"`
	WinRatePct               float64         `json:"winRatePct"`
	AvgTradeNotional         decimal.Decimal `json:"avgTradeNotional"`
	LargestSingleTradePnlPct float64         `json:"largestSingleTradePnlPct"`
	Diversification          int             `json:"diversification"`
}

// ValidationResult is the reliability verdict for one account. Reasons are
// ordered: each entry names a specific failed or flagged check.
type ValidationResult struct {
	IsReliable bool              `json:"isReliable"`
	Reasons    []string          `json:"reasons"`
	Metrics    ValidationMetrics `json:"metrics"`
}

// CoinPerformance aggregates closed trades for one instrument.
type CoinPerformance struct {
	Instrument string          `json:"instrument"`
	Pnl        decimal.Decimal `json:"pnl"`
	TradeCount int             `json:"tradeCount"`
	WinRatePct float64         `json:"winRatePct"`
}

type Classification string

const (
	Classification_Excellent  Classification = "Excellent"
	Classification_Good       Classification = "Good"
	Classification_Acceptable Classification = "Acceptable"
	Classification_Marginal   Classification = "Marginal"
	Classification_Poor       Classification = "Poor"
)

// ScoreBreakdown is the weighted composite score for one risk profile.
// Component scores are each on a 0-100 scale before weighting.
type ScoreBreakdown struct {
	DrawdownScore           float64        `json:"drawdownScore"`
	WinRateScore            float64        `json:"winRateScore"`
	RoiScore                float64        `json:"roiScore"`
	ConsistencyScore        float64        `json:"consistencyScore"`
	RiskAdjustedReturnScore float64        `json:"riskAdjustedReturnScore"`
	TotalScore              float64        `json:"totalScore"`
	Classification          Classification `json:"classification"`
	Recommendation          string         `json:"recommendation"`
}

// EvaluationRequest is the engine's input contract. Fills and leaderboard
// data have already been fetched by the caller. Leaderboard is the primary
// (allTime) snapshot; Windows optionally carries additional windows for
// consistency scoring. AsOf anchors account-age math so identical inputs
// produce identical outputs; zero means "handler clock".
type EvaluationRequest struct {
	AccountID     string                `json:"accountId"`
	Fills         []Fill                `json:"fills"`
	Leaderboard   LeaderboardSnapshot   `json:"leaderboard"`
	Windows       []LeaderboardSnapshot `json:"windows,omitempty"`
	RiskProfile   RiskProfile           `json:"riskProfile"`
	TopCoinsLimit int                   `json:"topCoinsLimit,omitempty"`
	AsOf          time.Time             `json:"asOf,omitempty"`
}

// EvaluationResult is the engine's output contract. Every evaluation
// returns a complete result; there is no partial state.
type EvaluationResult struct {
	AccountID       string            `json:"accountId"`
	RiskProfile     RiskProfile       `json:"riskProfile"`
	Validation      ValidationResult  `json:"validation"`
	MaxDrawdownPct  float64           `json:"maxDrawdownPct"`
	TopCoins        []CoinPerformance `json:"topCoins"`
	Score           ScoreBreakdown    `json:"score"`
	ProfileFindings []string          `json:"profileFindings,omitempty"`
}
