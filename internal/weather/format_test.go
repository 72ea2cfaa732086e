package weather

import (
	"testing"
	"time"
)

func TestFormatLastUpdated(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "Just now"},
		{29 * time.Second, "Just now"},
		{30 * time.Second, "30 seconds ago"},
		{59 * time.Second, "59 seconds ago"},
		{60 * time.Second, "1 minute ago"},
		{75 * time.Second, "1 minute ago"},
		{2 * time.Minute, "2 minutes ago"},
		{59*time.Minute + 59*time.Second, "59 minutes ago"},
		{time.Hour, "1 hour ago"},
		{5*time.Hour + 30*time.Minute, "5 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{47 * time.Hour, "1 day ago"},
		{72 * time.Hour, "3 days ago"},
	}

	for _, tt := range tests {
		last := now.Add(-tt.ago)
		if got := FormatLastUpdated(&last, now); got != tt.want {
			t.Errorf("FormatLastUpdated(now-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}

	if got := FormatLastUpdated(nil, now); got != "Never" {
		t.Errorf("FormatLastUpdated(nil) = %q, want Never", got)
	}
}
