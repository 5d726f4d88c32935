package calculator

import (
	"sort"

	"traderscout/internal/domain"

	"github.com/shopspring/decimal"
)

// DefaultTopCoinsLimit is used when the caller does not supply a limit.
const DefaultTopCoinsLimit = 3

// TopCoinPerformance groups position-closing fills by instrument,
// computes per-instrument PnL, trade count and win rate, and returns the
// top performers by PnL descending. Ties break on instrument name so the
// ranking is deterministic.
func TopCoinPerformance(fills []domain.Fill, limit int) []domain.CoinPerformance {
	if limit <= 0 {
		limit = DefaultTopCoinsLimit
	}

	type bucket struct {
		pnl    decimal.Decimal
		trades int
		wins   int
	}
	byInstrument := map[string]*bucket{}
	for _, f := range fills {
		if !f.IsClosing() {
			continue
		}
		b, ok := byInstrument[f.Instrument]
		if !ok {
			b = &bucket{}
			byInstrument[f.Instrument] = b
		}
		b.pnl = b.pnl.Add(f.ClosedPnl)
		b.trades++
		if f.ClosedPnl.IsPositive() {
			b.wins++
		}
	}

	perf := make([]domain.CoinPerformance, 0, len(byInstrument))
	for instrument, b := range byInstrument {
		winRate := 0.0
		if b.trades > 0 {
			winRate = float64(b.wins) / float64(b.trades) * 100
		}
		perf = append(perf, domain.CoinPerformance{
			Instrument: instrument,
			Pnl:        b.pnl,
			TradeCount: b.trades,
			WinRatePct: winRate,
		})
	}

	sort.Slice(perf, func(i, j int) bool {
		if !perf[i].Pnl.Equal(perf[j].Pnl) {
			return perf[i].Pnl.GreaterThan(perf[j].Pnl)
		}
		return perf[i].Instrument < perf[j].Instrument
	})

	if len(perf) > limit {
		perf = perf[:limit]
	}
	return perf
}
