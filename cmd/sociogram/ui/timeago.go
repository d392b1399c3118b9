package ui

import (
	"time"

	"sociogram/internal/types"

	"github.com/dustin/go-humanize"
)

// TimeAgo renders an ISO-8601 timestamp relative to now. Unparseable input
// renders as "".
func TimeAgo(ts string, now time.Time) string {
	t, err := types.ParseTimestamp(ts)
	if err != nil {
		return ""
	}
	if d := now.Sub(t); d < time.Minute && d > -time.Minute {
		return "just now"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
