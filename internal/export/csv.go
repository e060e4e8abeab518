package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/sadopc/hourtrack/internal/tracker"
)

// ToCSV writes one row per closed week.
func ToCSV(weeks []tracker.WeekRecord, hoursPerDay int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	// Header
	if err := w.Write([]string{"Week", "Working days", "Duration (s)", "Duration", "Worked", "Average per day"}); err != nil {
		return err
	}

	for _, wk := range weeks {
		row := []string{
			fmt.Sprintf("%d", wk.Week),
			fmt.Sprintf("%d", wk.WorkingDays),
			fmt.Sprintf("%d", wk.Seconds),
			formatDuration(wk.Seconds),
			tracker.FormatSeconds(wk.Seconds, hoursPerDay),
			formatDuration(averagePerDay(wk)),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

func averagePerDay(wk tracker.WeekRecord) int64 {
	if wk.WorkingDays <= 0 {
		return 0
	}
	return wk.Seconds / int64(wk.WorkingDays)
}
