// Package normalize maps provider responses onto the models shapes.
package normalize

import (
	"strings"

	"github.com/lox/weatherlookup/internal/models"
	"github.com/lox/weatherlookup/internal/provider"
)

// CurrentConditions returns nil when raw has no current section.
func CurrentConditions(raw *provider.RawForecast) *models.CurrentConditions {
	if raw == nil || raw.Current == nil {
		return nil
	}
	c := raw.Current
	return &models.CurrentConditions{
		Temperature:      c.TempF,
		FeelsLike:        c.FeelsLikeF,
		Condition:        c.Condition.Text,
		ConditionIconURL: IconURL(c.Condition.Icon),
		Humidity:         c.Humidity,
		WindSpeed:        c.WindMph,
		WindDirection:    optional(c.WindDir),
		ObservedAt:       c.LastUpdated,
	}
}

// LocationInfo returns nil when raw has no location section.
func LocationInfo(raw *provider.RawForecast) *models.LocationInfo {
	if raw == nil || raw.Location == nil {
		return nil
	}
	l := raw.Location
	return &models.LocationInfo{
		City:      l.Name,
		Region:    optional(&l.Region),
		Country:   optional(&l.Country),
		Timezone:  l.TzID,
		LocalTime: l.Localtime,
	}
}

// DailyEntries maps each forecast day in provider order. It never returns nil.
func DailyEntries(raw *provider.RawForecast) []models.DailyEntry {
	days := forecastDays(raw)
	out := make([]models.DailyEntry, 0, len(days))
	for _, d := range days {
		out = append(out, models.DailyEntry{
			Date:                d.Date,
			HighTemp:            d.Day.MaxTempF,
			LowTemp:             d.Day.MinTempF,
			Condition:           d.Day.Condition.Text,
			ConditionIconURL:    IconURL(d.Day.Condition.Icon),
			PrecipitationChance: PrecipitationChance(d.Day.DailyChanceOfRain, d.Day.DailyChanceOfSnow),
		})
	}
	return out
}

// PrecipitationChance collapses rain and snow probability into one number:
// rain when present and non-zero, otherwise snow when present and non-zero,
// otherwise 0.
func PrecipitationChance(rain, snow *float64) float64 {
	if rain != nil && *rain != 0 {
		return *rain
	}
	if snow != nil && *snow != 0 {
		return *snow
	}
	return 0
}

// IconURL makes provider icon references absolute and https.
func IconURL(icon string) string {
	switch {
	case icon == "":
		return ""
	case strings.HasPrefix(icon, "//"):
		return "https:" + icon
	case strings.HasPrefix(icon, "http://"):
		return "https://" + strings.TrimPrefix(icon, "http://")
	default:
		return icon
	}
}

func forecastDays(raw *provider.RawForecast) []provider.RawForecastDay {
	if raw == nil || raw.Forecast == nil {
		return nil
	}
	return raw.Forecast.ForecastDay
}

func optional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
