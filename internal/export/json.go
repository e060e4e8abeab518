package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/hourtrack/internal/tracker"
)

type jsonExport struct {
	ExportedAt         string     `json:"exported_at"`
	WorkingHoursPerDay int        `json:"working_hours_per_day"`
	Count              int        `json:"count"`
	Weeks              []jsonWeek `json:"weeks"`
}

type jsonWeek struct {
	Week          int    `json:"week"`
	WorkingDays   int    `json:"working_days"`
	DurationSec   int64  `json:"duration_seconds"`
	Duration      string `json:"duration"`
	Worked        string `json:"worked"`
	AveragePerDay string `json:"average_per_day"`
}

// ToJSON writes the closed weeks as an indented JSON document.
func ToJSON(weeks []tracker.WeekRecord, hoursPerDay int, path string) error {
	export := jsonExport{
		ExportedAt:         time.Now().UTC().Format(time.RFC3339),
		WorkingHoursPerDay: hoursPerDay,
		Count:              len(weeks),
	}

	for _, wk := range weeks {
		export.Weeks = append(export.Weeks, jsonWeek{
			Week:          wk.Week,
			WorkingDays:   wk.WorkingDays,
			DurationSec:   wk.Seconds,
			Duration:      formatDuration(wk.Seconds),
			Worked:        tracker.FormatSeconds(wk.Seconds, hoursPerDay),
			AveragePerDay: formatDuration(averagePerDay(wk)),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
