package tracker

import "fmt"

// FormatSeconds renders seconds using the coarsest non-zero unit. Days are
// working days of hoursPerDay hours; hoursPerDay <= 0 disables them.
func FormatSeconds(seconds int64, hoursPerDay int) string {
	negative := seconds < 0
	if negative {
		seconds = -seconds
	}

	var days, hours int64
	minutes := seconds / 60
	if minutes > 59 {
		hours = minutes / 60
		minutes = minutes % 60
	}
	if hoursPerDay > 0 && hours >= int64(hoursPerDay) {
		days = hours / int64(hoursPerDay)
		hours = hours % int64(hoursPerDay)
	}

	var result string
	switch {
	case days > 0:
		result = fmt.Sprintf("%d days and %dh%dmin", days, hours, minutes)
	case hours > 0:
		result = fmt.Sprintf("%dh%dmin", hours, minutes)
	case minutes > 0:
		result = fmt.Sprintf("%dmin", minutes)
	default:
		result = fmt.Sprintf("%ds", seconds)
	}

	if negative {
		return "-" + result
	}
	return result
}

// formatToday renders today's total followed by the amount left to (or over)
// the daily quota.
func formatToday(todaySeconds int64, cfg Config) string {
	remaining := todaySeconds - cfg.WorkdaySeconds()
	return fmt.Sprintf("%s (%s)",
		FormatSeconds(todaySeconds, cfg.WorkingHoursPerDay),
		FormatSeconds(remaining, cfg.WorkingHoursPerDay),
	)
}
