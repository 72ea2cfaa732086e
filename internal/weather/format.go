package weather

import (
	"fmt"
	"time"
)

// FormattedLastUpdated describes how long ago the snapshot was last updated,
// measured against the coordinator's clock at the time of the call.
func (c *Coordinator) FormattedLastUpdated() string {
	c.mu.Lock()
	last := c.state.LastUpdatedAt
	c.mu.Unlock()
	return FormatLastUpdated(last, c.now())
}

// FormatLastUpdated renders the age of last relative to now, e.g. "Just now",
// "1 minute ago" or "3 days ago". A nil last is "Never".
func FormatLastUpdated(last *time.Time, now time.Time) string {
	if last == nil {
		return "Never"
	}
	age := now.Sub(*last)
	switch {
	case age < 30*time.Second:
		return "Just now"
	case age < time.Minute:
		return fmt.Sprintf("%d seconds ago", int(age/time.Second))
	case age < time.Hour:
		return plural(int(age/time.Minute), "minute")
	case age < 24*time.Hour:
		return plural(int(age/time.Hour), "hour")
	default:
		return plural(int(age/(24*time.Hour)), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
