package util

import (
	"time"
)

const msPerDay = 86_400_000

// DaysSinceMs is the number of whole days between an epoch-millisecond
// timestamp and now. Never negative.
func DaysSinceMs(now time.Time, ms int64) int {
	days := int((now.UnixMilli() - ms) / msPerDay)
	if days < 0 {
		return 0
	}
	return days
}
