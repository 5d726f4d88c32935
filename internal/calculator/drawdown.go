package calculator

import (
	"traderscout/internal/domain"
	"traderscout/internal/util"

	"github.com/shopspring/decimal"
)

// MaxDrawdown rebuilds the cumulative realized-PnL curve from fills in
// time order and returns the maximum percentage decline from a running
// peak, on a 0-100 scale. An account whose cumulative PnL never exceeds
// zero has no defined peak and scores 0.
//
// The curve uses closed-trade PnL only; mark-to-market swings inside an
// open position are invisible here, so true intratrade risk is
// understated.
func MaxDrawdown(fills []domain.Fill) float64 {
	cumulative := decimal.Zero
	peak := decimal.Zero
	maxDrawdownPct := 0.0

	for _, f := range fills {
		cumulative = cumulative.Add(f.ClosedPnl)
		if cumulative.GreaterThan(peak) {
			peak = cumulative
		}
		if peak.IsPositive() {
			dd := peak.Sub(cumulative).Div(peak).InexactFloat64() * 100
			if dd > maxDrawdownPct {
				maxDrawdownPct = dd
			}
		}
	}

	// a collapse far below a small peak can exceed 100 on this scale
	return util.Clamp(maxDrawdownPct, 0, 100)
}
