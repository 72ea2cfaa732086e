package models

import (
	"strings"
	"time"
)

// CurrentConditions is a point-in-time observation for the resolved location.
// Temperatures are °F and wind speed is mph.
type CurrentConditions struct {
	Temperature      float64 `json:"temperature"`
	FeelsLike        float64 `json:"feelsLike"`
	Condition        string  `json:"condition"`
	ConditionIconURL string  `json:"conditionIconUrl"`
	Humidity         int     `json:"humidity"`
	WindSpeed        float64 `json:"windSpeed"`
	WindDirection    *string `json:"windDirection,omitempty"`
	ObservedAt       string  `json:"observedAt"`
}

type HourlyEntry struct {
	Time                string  `json:"time"` // "2006-01-02 15:04", location local
	Temperature         float64 `json:"temperature"`
	Condition           string  `json:"condition"`
	ConditionIconURL    string  `json:"conditionIconUrl"`
	PrecipitationChance float64 `json:"precipitationChance"`
	WindSpeed           float64 `json:"windSpeed"`
	Humidity            int     `json:"humidity"`
}

type DailyEntry struct {
	Date                string  `json:"date"` // "2006-01-02"
	HighTemp            float64 `json:"highTemp"`
	LowTemp             float64 `json:"lowTemp"`
	Condition           string  `json:"condition"`
	ConditionIconURL    string  `json:"conditionIconUrl"`
	PrecipitationChance float64 `json:"precipitationChance"`
}

type LocationInfo struct {
	City      string  `json:"city"`
	Region    *string `json:"region,omitempty"`
	Country   *string `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	LocalTime string  `json:"localTime"`
}

// Snapshot is the coordinator's owned state. Values handed out to readers are
// copies; mutating them has no effect on the coordinator.
type Snapshot struct {
	Current       *CurrentConditions `json:"current"`
	Hourly        []HourlyEntry      `json:"hourly"`
	Daily         []DailyEntry       `json:"daily"`
	Location      *LocationInfo      `json:"location"`
	IsLoading     bool               `json:"isLoading"`
	Error         *string            `json:"error"`
	LastUpdatedAt *time.Time         `json:"lastUpdatedAt"`
}

// NewSnapshot returns the empty state the application starts with.
func NewSnapshot() Snapshot {
	return Snapshot{
		Hourly: []HourlyEntry{},
		Daily:  []DailyEntry{},
	}
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Current != nil {
		c := *s.Current
		c.WindDirection = cloneString(s.Current.WindDirection)
		out.Current = &c
	}
	if s.Location != nil {
		l := *s.Location
		l.Region = cloneString(s.Location.Region)
		l.Country = cloneString(s.Location.Country)
		out.Location = &l
	}
	out.Hourly = append([]HourlyEntry{}, s.Hourly...)
	out.Daily = append([]DailyEntry{}, s.Daily...)
	out.Error = cloneString(s.Error)
	if s.LastUpdatedAt != nil {
		t := *s.LastUpdatedAt
		out.LastUpdatedAt = &t
	}
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// DayBoundaries returns the indexes in hourly where the calendar date differs
// from the previous entry, i.e. where the sequence crosses midnight.
func DayBoundaries(hourly []HourlyEntry) []int {
	var idx []int
	prev := ""
	for i, h := range hourly {
		date, _, _ := strings.Cut(h.Time, " ")
		if i > 0 && date != prev {
			idx = append(idx, i)
		}
		prev = date
	}
	return idx
}
