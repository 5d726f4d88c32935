package calculator

import (
	"testing"

	"traderscout/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_TopCoinPerformance(t *testing.T) {
	t.Run("ranks by pnl descending and truncates to the limit", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("A", 100, 60),
			testFill("A", 200, 40),
			testFill("B", 300, 300),
			testFill("C", 400, -50),
		}

		top := TopCoinPerformance(fills, 2)

		require.Len(t, top, 2)
		require.Equal(t, "B", top[0].Instrument)
		require.Equal(t, "A", top[1].Instrument)
		require.True(t, top[0].Pnl.Equal(decimal.NewFromInt(300)))
		require.True(t, top[1].Pnl.Equal(decimal.NewFromInt(100)))
	})

	t.Run("only closing fills count", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("BTC", 100, 0), // opening leg
			testFill("BTC", 200, 25),
			testFill("BTC", 300, -5),
		}

		top := TopCoinPerformance(fills, 3)

		require.Len(t, top, 1)
		require.Equal(t, 2, top[0].TradeCount)
		require.InDelta(t, 50.0, top[0].WinRatePct, 1e-9)
	})

	t.Run("zero or negative limit falls back to the default", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("A", 1, 1),
			testFill("B", 2, 2),
			testFill("C", 3, 3),
			testFill("D", 4, 4),
		}

		top := TopCoinPerformance(fills, 0)
		require.Len(t, top, DefaultTopCoinsLimit)
		require.Equal(t, "D", top[0].Instrument)
	})

	t.Run("equal pnl breaks ties on instrument name", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("ZEC", 1, 10),
			testFill("ADA", 2, 10),
		}

		top := TopCoinPerformance(fills, 2)
		require.Equal(t, "ADA", top[0].Instrument)
		require.Equal(t, "ZEC", top[1].Instrument)
	})

	t.Run("no closing fills yields an empty ranking", func(t *testing.T) {
		fills := []domain.Fill{testFill("BTC", 1, 0)}
		require.Empty(t, TopCoinPerformance(fills, 3))
	})
}
