package calculator

import (
	"testing"

	"traderscout/internal/domain"

	"github.com/stretchr/testify/require"
)

func Test_MaxDrawdown(t *testing.T) {
	t.Run("no fills means no drawdown", func(t *testing.T) {
		require.Zero(t, MaxDrawdown(nil))
	})

	t.Run("account that never turns profitable has zero drawdown", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("BTC", 100, -10),
			testFill("BTC", 200, -5),
			testFill("BTC", 300, 2),
		}
		require.Zero(t, MaxDrawdown(fills))
	})

	t.Run("tracks the worst decline from the running peak", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("BTC", 100, 100), // cum 100, peak 100
			testFill("BTC", 200, -30), // cum 70, dd 30%
			testFill("BTC", 300, 60),  // cum 130, peak 130
			testFill("BTC", 400, -65), // cum 65, dd 50%
			testFill("BTC", 500, 100), // recovery does not erase the max
		}
		require.InDelta(t, 50.0, MaxDrawdown(fills), 1e-9)
	})

	t.Run("collapse below a small peak is capped at 100", func(t *testing.T) {
		fills := []domain.Fill{
			testFill("BTC", 100, 10),
			testFill("BTC", 200, -100),
		}
		require.Equal(t, 100.0, MaxDrawdown(fills))
	})

	t.Run("stays within the 0-100 scale", func(t *testing.T) {
		sequences := [][]float64{
			{},
			{0, 0, 0},
			{5, -5, 5, -5},
			{1000, -999.99},
			{-1, 2, -3, 4, -5},
			{0.0001, -0.0002, 0.0003},
		}
		for _, pnls := range sequences {
			fills := make([]domain.Fill, 0, len(pnls))
			for i, p := range pnls {
				fills = append(fills, testFill("BTC", int64(i*100), p))
			}
			dd := MaxDrawdown(fills)
			require.GreaterOrEqual(t, dd, 0.0)
			require.LessOrEqual(t, dd, 100.0)
		}
	})
}
