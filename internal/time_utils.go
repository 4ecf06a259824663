package internal

import (
	"fmt"
	"time"
)

// DisplayTimeFormat is the standard time format used across the application
const DisplayTimeFormat = "2006-01-02 15:04:05"

// FormatLocal formats t in the local time zone.
func FormatLocal(t time.Time) string {
	return t.Local().Format(DisplayTimeFormat)
}

// FormatRemaining renders a duration as "2h5m", "45m" or "expired".
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return "expired"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	if minutes == 0 {
		return "<1m"
	}
	return fmt.Sprintf("%dm", minutes)
}
