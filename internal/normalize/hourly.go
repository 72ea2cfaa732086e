package normalize

import (
	"time"

	"github.com/lox/weatherlookup/internal/models"
	"github.com/lox/weatherlookup/internal/provider"
)

// HourlyWindow is the most hourly entries HourlyEntries returns once the
// provider sends more than that.
const HourlyWindow = 24

const (
	hourLayout = "2006-01-02 15:04"
	dateLayout = "2006-01-02"
)

// HourlyEntries flattens every forecast day's hours into one chronological
// sequence. Sequences longer than HourlyWindow are cut to the next
// HourlyWindow hours, starting at the current hour of the location's clock
// (see LocationClock).
func HourlyEntries(raw *provider.RawForecast, now time.Time) []models.HourlyEntry {
	var hours []models.HourlyEntry
	for _, d := range forecastDays(raw) {
		for _, h := range d.Hour {
			hours = append(hours, models.HourlyEntry{
				Time:                h.Time,
				Temperature:         h.TempF,
				Condition:           h.Condition.Text,
				ConditionIconURL:    IconURL(h.Condition.Icon),
				PrecipitationChance: PrecipitationChance(h.ChanceOfRain, h.ChanceOfSnow),
				WindSpeed:           h.WindMph,
				Humidity:            h.Humidity,
			})
		}
	}
	if hours == nil {
		return []models.HourlyEntry{}
	}
	if len(hours) <= HourlyWindow {
		return hours
	}

	tz := ""
	if raw.Location != nil {
		tz = raw.Location.TzID
	}
	return Window(hours, LocationClock(tz, now))
}

// LocationClock returns now on the wall clock of the IANA zone tz. When tz is
// empty or unknown, now is returned unchanged, i.e. the caller's clock.
func LocationClock(tz string, now time.Time) time.Time {
	if tz == "" {
		return now
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return now
	}
	return now.In(loc)
}

// Window keeps the entries at or after clock's current hour (entries dated
// after clock's day, or on that day with an hour >= clock's hour) and returns
// the first HourlyWindow of them. Entries whose time cannot be parsed are
// dropped.
func Window(hours []models.HourlyEntry, clock time.Time) []models.HourlyEntry {
	today := clock.Format(dateLayout)
	hour := clock.Hour()

	out := make([]models.HourlyEntry, 0, HourlyWindow)
	for _, h := range hours {
		t, err := time.Parse(hourLayout, h.Time)
		if err != nil {
			continue
		}
		date := t.Format(dateLayout)
		if date > today || (date == today && t.Hour() >= hour) {
			out = append(out, h)
			if len(out) == HourlyWindow {
				break
			}
		}
	}
	return out
}
