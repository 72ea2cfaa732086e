package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lox/weatherlookup/internal/models"
	"github.com/lox/weatherlookup/internal/search"
)

type jsonSnapshot struct {
	models.Snapshot
	LastUpdated string `json:"lastUpdated"`
}

func writeJSON(w io.Writer, s models.Snapshot, lastUpdated string) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonSnapshot{Snapshot: s, LastUpdated: lastUpdated})
}

func writeText(w io.Writer, s models.Snapshot, lastUpdated string) error {
	if s.Error != nil {
		fmt.Fprintf(w, "! %s\n\n", *s.Error)
	}
	if s.Location == nil || s.Current == nil {
		fmt.Fprintln(w, "No weather data.")
		return nil
	}

	fmt.Fprintf(w, "%s\n", locationLine(s.Location))
	cur := s.Current
	fmt.Fprintf(w, "Now: %.0f°F %s (feels like %.0f°F)\n", cur.Temperature, cur.Condition, cur.FeelsLike)
	wind := fmt.Sprintf("%.1f mph", cur.WindSpeed)
	if cur.WindDirection != nil {
		wind += " " + *cur.WindDirection
	}
	fmt.Fprintf(w, "Humidity %d%%, wind %s\n", cur.Humidity, wind)
	fmt.Fprintf(w, "Updated: %s\n", lastUpdated)

	if len(s.Hourly) > 0 {
		fmt.Fprintln(w, "\nNext hours")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		boundaries := make(map[int]bool)
		for _, i := range models.DayBoundaries(s.Hourly) {
			boundaries[i] = true
		}
		for i, h := range s.Hourly {
			if boundaries[i] {
				date, _, _ := strings.Cut(h.Time, " ")
				fmt.Fprintf(tw, "-- %s --\t\t\t\n", date)
			}
			_, clock, _ := strings.Cut(h.Time, " ")
			fmt.Fprintf(tw, "%s\t%.0f°F\t%s\t%.0f%%\n", clock, h.Temperature, h.Condition, h.PrecipitationChance)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	if len(s.Daily) > 0 {
		fmt.Fprintln(w, "\nForecast")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, d := range s.Daily {
			fmt.Fprintf(tw, "%s\t%.0f°F / %.0f°F\t%s\t%.0f%%\n", d.Date, d.HighTemp, d.LowTemp, d.Condition, d.PrecipitationChance)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func locationLine(l *models.LocationInfo) string {
	parts := []string{l.City}
	if l.Region != nil {
		parts = append(parts, *l.Region)
	}
	if l.Country != nil {
		parts = append(parts, *l.Country)
	}
	line := strings.Join(parts, ", ")
	if l.LocalTime != "" {
		line += fmt.Sprintf(" (local time %s)", l.LocalTime)
	}
	return line
}

// queryTypeLabel turns "zip_code" into "Zip Code".
func queryTypeLabel(t search.QueryType) string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(t), "_", " "))
}
