package service

import (
	"fmt"
	"time"

	"traderscout/config"
	"traderscout/internal/domain"
	"traderscout/internal/util"

	"github.com/shopspring/decimal"
)

// ValidationService judges whether an account's statistics are
// trustworthy: not too new, not under-traded, not dominated by one lucky
// trade, not concentrated in a single instrument.
type ValidationService interface {
	// Validate computes reliability metrics over normalized fills.
	// leaderboardPnl is the account's allTime PnL, used as the
	// denominator for the single-trade concentration check. now anchors
	// the account-age computation so results are reproducible.
	Validate(fills []domain.Fill, leaderboardPnl decimal.Decimal, now time.Time) domain.ValidationResult
}

type validationServiceHandler struct {
	cfg config.ReliabilityConfig
}

func NewValidationService(cfg config.ReliabilityConfig) ValidationService {
	return validationServiceHandler{cfg: cfg}
}

func (h validationServiceHandler) Validate(fills []domain.Fill, leaderboardPnl decimal.Decimal, now time.Time) domain.ValidationResult {
	if len(fills) == 0 {
		return domain.ValidationResult{
			IsReliable: false,
			Reasons:    []string{"No trade history available"},
			Metrics:    domain.ValidationMetrics{AvgTradeNotional: decimal.Zero},
		}
	}

	metrics := computeMetrics(fills, leaderboardPnl, now)

	reliable := true
	reasons := []string{}

	if metrics.AccountAgeDays < h.cfg.MinAccountAgeDays {
		reliable = false
		reasons = append(reasons, fmt.Sprintf(
			"Account too new: %d days old (minimum %d days)",
			metrics.AccountAgeDays, h.cfg.MinAccountAgeDays))
	}
	if metrics.TotalTrades < h.cfg.MinTotalTrades {
		reliable = false
		reasons = append(reasons, fmt.Sprintf(
			"Insufficient trade history: %d trades (minimum %d)",
			metrics.TotalTrades, h.cfg.MinTotalTrades))
	}
	if metrics.LargestSingleTradePnlPct > h.cfg.MaxSingleTradePnlPct {
		reliable = false
		reasons = append(reasons, fmt.Sprintf(
			"Single trade accounts for %.1f%% of total PnL (limit %.1f%%)",
			metrics.LargestSingleTradePnlPct, h.cfg.MaxSingleTradePnlPct))
	}
	if metrics.Diversification < h.cfg.MinDiversification {
		reliable = false
		reasons = append(reasons, fmt.Sprintf(
			"Low diversification: %d instruments traded (minimum %d)",
			metrics.Diversification, h.cfg.MinDiversification))
	}
	// advisory only: flags the stat without failing the account
	if metrics.WinRatePct > h.cfg.SuspiciousWinRatePct {
		reasons = append(reasons, fmt.Sprintf(
			"Suspiciously high win rate: %.1f%%", metrics.WinRatePct))
	}

	return domain.ValidationResult{
		IsReliable: reliable,
		Reasons:    reasons,
		Metrics:    metrics,
	}
}

func computeMetrics(fills []domain.Fill, leaderboardPnl decimal.Decimal, now time.Time) domain.ValidationMetrics {
	earliest := fills[0].TimestampMs
	instruments := map[string]struct{}{}
	totalNotional := decimal.Zero

	closingCount := 0
	wins := 0
	largestClosedPnl := decimal.Zero
	for _, f := range fills {
		if f.TimestampMs < earliest {
			earliest = f.TimestampMs
		}
		instruments[f.Instrument] = struct{}{}
		totalNotional = totalNotional.Add(f.Notional())

		if !f.IsClosing() {
			continue
		}
		closingCount++
		if f.ClosedPnl.IsPositive() {
			wins++
		}
		if closingCount == 1 || f.ClosedPnl.GreaterThan(largestClosedPnl) {
			largestClosedPnl = f.ClosedPnl
		}
	}

	ageDays := util.DaysSinceMs(now, earliest)

	winRatePct := 0.0
	if closingCount > 0 {
		winRatePct = float64(wins) / float64(closingCount) * 100
	}

	largestPct := 0.0
	if leaderboardPnl.IsPositive() {
		largestPct, _ = largestClosedPnl.Div(leaderboardPnl).Mul(decimal.NewFromInt(100)).Float64()
	}

	avgNotional := totalNotional.Div(decimal.NewFromInt(int64(len(fills))))

	return domain.ValidationMetrics{
		AccountAgeDays:           ageDays,
		TotalTrades:              len(fills),
		WinRatePct:               winRatePct,
		AvgTradeNotional:         avgNotional,
		LargestSingleTradePnlPct: largestPct,
		Diversification:          len(instruments),
	}
}
