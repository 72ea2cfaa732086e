package models

import (
	"reflect"
	"testing"
	"time"
)

func TestDayBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		times []string
		want  []int
	}{
		{"empty", nil, nil},
		{"single day", []string{"2024-01-15 22:00", "2024-01-15 23:00"}, nil},
		{"crosses midnight", []string{"2024-01-15 22:00", "2024-01-15 23:00", "2024-01-16 00:00", "2024-01-16 01:00"}, []int{2}},
		{"two crossings", []string{"2024-01-15 23:00", "2024-01-16 00:00", "2024-01-16 23:00", "2024-01-17 00:00"}, []int{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hours []HourlyEntry
			for _, ts := range tt.times {
				hours = append(hours, HourlyEntry{Time: ts})
			}
			if got := DayBoundaries(hours); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DayBoundaries = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSnapshotClone(t *testing.T) {
	dir, region, msg := "N", "Ontario", "oops"
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	s := Snapshot{
		Current:       &CurrentConditions{Temperature: 10, WindDirection: &dir},
		Hourly:        []HourlyEntry{{Time: "2024-01-15 12:00"}},
		Daily:         []DailyEntry{{Date: "2024-01-15"}},
		Location:      &LocationInfo{City: "Toronto", Region: &region},
		Error:         &msg,
		LastUpdatedAt: &now,
	}

	c := s.Clone()
	if !reflect.DeepEqual(c, s) {
		t.Fatalf("Clone differs:\n%+v\n%+v", c, s)
	}

	*c.Current.WindDirection = "S"
	c.Current.Temperature = 99
	c.Hourly[0].Time = "changed"
	c.Daily[0].Date = "changed"
	*c.Location.Region = "changed"
	*c.Error = "changed"
	*c.LastUpdatedAt = now.Add(time.Hour)

	if dir != "N" || s.Current.Temperature != 10 || s.Hourly[0].Time != "2024-01-15 12:00" ||
		s.Daily[0].Date != "2024-01-15" || region != "Ontario" || msg != "oops" || !s.LastUpdatedAt.Equal(now) {
		t.Errorf("mutating the clone changed the original: %+v", s)
	}
}

func TestNewSnapshot(t *testing.T) {
	s := NewSnapshot()
	if s.Hourly == nil || s.Daily == nil {
		t.Error("sequences should be empty, not nil")
	}
	if s.Clone().Hourly == nil {
		t.Error("clone of empty snapshot should keep non-nil sequences")
	}
}
