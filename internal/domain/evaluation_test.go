package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_ParseRiskProfile(t *testing.T) {
	for _, valid := range []string{"conservative", "moderate", "aggressive"} {
		p, err := ParseRiskProfile(valid)
		require.NoError(t, err)
		require.Equal(t, RiskProfile(valid), p)
	}

	_, err := ParseRiskProfile("Moderate")
	require.Error(t, err)
	_, err = ParseRiskProfile("")
	require.Error(t, err)
}

func Test_Fill_Validate(t *testing.T) {
	valid := Fill{
		Instrument:  "BTC",
		Price:       decimal.NewFromInt(50_000),
		Size:        decimal.NewFromFloat(0.5),
		Side:        FillSide_Buy,
		TimestampMs: 1_700_000_000_000,
	}
	require.NoError(t, valid.Validate())

	for name, mutate := range map[string]func(*Fill){
		"empty instrument":   func(f *Fill) { f.Instrument = "" },
		"unknown side":       func(f *Fill) { f.Side = "hold" },
		"negative price":     func(f *Fill) { f.Price = decimal.NewFromInt(-1) },
		"negative size":      func(f *Fill) { f.Size = decimal.NewFromInt(-1) },
		"negative timestamp": func(f *Fill) { f.TimestampMs = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			f := valid
			mutate(&f)
			require.Error(t, f.Validate())
		})
	}
}

func Test_SnapshotByWindow(t *testing.T) {
	snapshots := []LeaderboardSnapshot{
		{WindowLabel: Window_AllTime, Roi: 0.45},
		{WindowLabel: Window_Month, Roi: 0.12},
	}

	require.Equal(t, 0.12, SnapshotByWindow(snapshots, Window_Month).Roi)

	missing := SnapshotByWindow(snapshots, Window_Week)
	require.Equal(t, Window_Week, missing.WindowLabel)
	require.Zero(t, missing.Roi)
}

func Test_RoiPct(t *testing.T) {
	require.Equal(t, 45.0, LeaderboardSnapshot{Roi: 0.45}.RoiPct())
	require.Equal(t, -12.5, LeaderboardSnapshot{Roi: -0.125}.RoiPct())
}
