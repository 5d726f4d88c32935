package service

import (
	"fmt"

	"traderscout/config"
	"traderscout/internal/domain"
	"traderscout/internal/util"

	"github.com/montanaflynn/stats"
)

// Classification thresholds are fixed across profiles.
const (
	excellentThreshold  = 85.0
	goodThreshold       = 70.0
	acceptableThreshold = 55.0
	marginalThreshold   = 40.0
)

// ScoreInput is an account's aggregate metrics for one evaluation window.
// RoiWindows carries the ROI of each available leaderboard window and
// feeds the consistency score.
type ScoreInput struct {
	RoiPct         float64
	RoiWindows     []float64
	MaxDrawdownPct float64
	WinRatePct     float64
	DaysActive     int
	Copiers        int
}

// ScoringService normalizes heterogeneous metrics against
// profile-specific bounds and combines them into one comparable number
// per risk-tolerance regime.
type ScoringService interface {
	// Score produces the weighted composite breakdown for the profile.
	Score(input ScoreInput, profile domain.RiskProfile) (domain.ScoreBreakdown, error)
	// ProfileFit returns advisory findings where the account sits outside
	// the profile's stated metric ranges. Findings never alter the score.
	ProfileFit(input ScoreInput, profile domain.RiskProfile) ([]string, error)
}

type scoringServiceHandler struct {
	cfg config.ScoringConfig
}

func NewScoringService(cfg config.ScoringConfig) ScoringService {
	return scoringServiceHandler{cfg: cfg}
}

func (h scoringServiceHandler) Score(input ScoreInput, profile domain.RiskProfile) (domain.ScoreBreakdown, error) {
	p, ok := h.cfg.Profiles[profile]
	if !ok {
		return domain.ScoreBreakdown{}, fmt.Errorf("no scoring profile configured for %q", profile)
	}

	// linear penalty reaching 0 at the profile's drawdown ceiling
	drawdownScore := util.ClampScore(100 - input.MaxDrawdownPct*100/p.Limits.MaxDrawdownPct)
	winRateScore := util.ClampScore(input.WinRatePct)
	// ROI above 100% is capped for scoring, not for display
	roiScore := util.ClampScore(input.RoiPct)
	consistencyScore := consistencyScore(input.RoiWindows)
	rarScore := h.rarScore(input.RoiPct, input.MaxDrawdownPct)

	w := p.Weights
	total := (drawdownScore*w.MaxDrawdown +
		winRateScore*w.WinRate +
		roiScore*w.Roi +
		consistencyScore*w.Consistency +
		rarScore*w.RiskAdjustedReturn) / 100
	total = util.Round2(util.ClampScore(total))

	classification := classify(total)

	return domain.ScoreBreakdown{
		DrawdownScore:           drawdownScore,
		WinRateScore:            winRateScore,
		RoiScore:                roiScore,
		ConsistencyScore:        consistencyScore,
		RiskAdjustedReturnScore: rarScore,
		TotalScore:              total,
		Classification:          classification,
		Recommendation:          recommendationFor(classification),
	}, nil
}

func (h scoringServiceHandler) ProfileFit(input ScoreInput, profile domain.RiskProfile) ([]string, error) {
	p, ok := h.cfg.Profiles[profile]
	if !ok {
		return nil, fmt.Errorf("no scoring profile configured for %q", profile)
	}

	findings := []string{}
	if input.RoiPct < p.Limits.MinRoiPct {
		findings = append(findings, fmt.Sprintf(
			"ROI %.1f%% below profile minimum %.1f%%", input.RoiPct, p.Limits.MinRoiPct))
	}
	if input.RoiPct > p.Limits.MaxRoiPct {
		findings = append(findings, fmt.Sprintf(
			"ROI %.1f%% above profile maximum %.1f%%", input.RoiPct, p.Limits.MaxRoiPct))
	}
	if input.MaxDrawdownPct > p.Limits.MaxDrawdownPct {
		findings = append(findings, fmt.Sprintf(
			"Max drawdown %.1f%% above profile limit %.1f%%", input.MaxDrawdownPct, p.Limits.MaxDrawdownPct))
	}
	if input.WinRatePct < p.Limits.MinWinRatePct {
		findings = append(findings, fmt.Sprintf(
			"Win rate %.1f%% below profile minimum %.1f%%", input.WinRatePct, p.Limits.MinWinRatePct))
	}
	if input.DaysActive < p.Limits.MinDaysActive {
		findings = append(findings, fmt.Sprintf(
			"Only %d days active (profile minimum %d)", input.DaysActive, p.Limits.MinDaysActive))
	}
	if input.Copiers < p.Limits.MinCopiers {
		findings = append(findings, fmt.Sprintf(
			"Only %d copiers (profile minimum %d)", input.Copiers, p.Limits.MinCopiers))
	}
	return findings, nil
}

// consistencyScore is the inverse coefficient of variation of returns
// across windows, on a 0-100 scale. Fewer than two windows is not enough
// signal either way, so it scores neutral. A non-positive mean scores 0.
func consistencyScore(roiWindows []float64) float64 {
	if len(roiWindows) < 2 {
		return 50
	}

	mean, err := stats.Mean(roiWindows)
	if err != nil || mean <= 0 {
		return 0
	}
	stddev, err := stats.StandardDeviation(roiWindows)
	if err != nil {
		return 0
	}
	return util.ClampScore(100 * (1 - stddev/mean))
}

// rarScore scales risk-adjusted return so a RAR of ~3 maps to ~100. Zero
// drawdown makes the ratio undefined; any return with no drawdown is
// treated as maximally efficient.
func (h scoringServiceHandler) rarScore(roiPct, maxDrawdownPct float64) float64 {
	if maxDrawdownPct <= 0 {
		return 100
	}
	rar := (roiPct - h.cfg.RiskFreeRatePct) / maxDrawdownPct
	return util.ClampScore(rar * h.cfg.RarScalingFactor)
}

func classify(score float64) domain.Classification {
	switch {
	case score >= excellentThreshold:
		return domain.Classification_Excellent
	case score >= goodThreshold:
		return domain.Classification_Good
	case score >= acceptableThreshold:
		return domain.Classification_Acceptable
	case score >= marginalThreshold:
		return domain.Classification_Marginal
	default:
		return domain.Classification_Poor
	}
}

func recommendationFor(c domain.Classification) string {
	switch c {
	case domain.Classification_Excellent:
		return "Immediate approval"
	case domain.Classification_Good:
		return "Approve with review"
	case domain.Classification_Acceptable:
		return "Detailed review required"
	case domain.Classification_Marginal:
		return "Reject or monitor"
	default:
		return "Reject"
	}
}
