package domain

import "github.com/shopspring/decimal"

const (
	Window_AllTime = "allTime"
	Window_Month   = "month"
	Window_Week    = "week"
	Window_Day     = "day"
)

// LeaderboardSnapshot holds aggregate stats for an account over a stated
// window, as reported by the upstream venue. Roi is fractional
// (0.15 = 15%).
type LeaderboardSnapshot struct {
	AccountID    string          `json:"accountId"`
	WindowLabel  string          `json:"windowLabel"`
	Pnl          decimal.Decimal `json:"pnl"`
	Roi          float64         `json:"roi"`
	Volume       decimal.Decimal `json:"volume"`
	AccountValue decimal.Decimal `json:"accountValue"`
	Copiers      int             `json:"copiers,omitempty"`
}

// RoiPct is the window's return on a 0-100 scale.
func (s LeaderboardSnapshot) RoiPct() float64 {
	return s.Roi * 100
}

// SnapshotByWindow looks up the snapshot for a window label. A missing
// window is not an error: it yields zero metrics for that window.
func SnapshotByWindow(snapshots []LeaderboardSnapshot, windowLabel string) LeaderboardSnapshot {
	for _, s := range snapshots {
		if s.WindowLabel == windowLabel {
			return s
		}
	}
	return LeaderboardSnapshot{WindowLabel: windowLabel}
}

// RoiWindows collects the per-window ROI percentages for consistency
// scoring, in snapshot order.
func RoiWindows(snapshots []LeaderboardSnapshot) []float64 {
	out := []float64{}
	for _, s := range snapshots {
		out = append(out, s.RoiPct())
	}
	return out
}
