package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintfFunc()
	red    = color.New(color.FgRed).SprintfFunc()
	yellow = color.New(color.FgYellow).SprintfFunc()
	faint  = color.New(color.Faint).SprintfFunc()
)

// FormatDuration renders a millisecond value with scale-appropriate
// precision, switching to seconds above one second.
func FormatDuration(ms float64) string {
	switch {
	case ms < 1:
		return fmt.Sprintf("%.3fms", ms)
	case ms < 10:
		return fmt.Sprintf("%.2fms", ms)
	case ms < 1000:
		return fmt.Sprintf("%.1fms", ms)
	default:
		return fmt.Sprintf("%.2fs", ms/1000)
	}
}

// FormatMemory renders a megabyte value for display.
func FormatMemory(mb float64) string {
	return fmt.Sprintf("%.0fMB", mb)
}

// FormatPercent renders a 0..1 ratio as a percentage.
func FormatPercent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}

// FormatCohensD renders an effect size with its magnitude bucket. Infinite
// values come from zero-variance samples with shifted means and get a fixed
// label instead of a formatted float.
func FormatCohensD(d float64, label string) string {
	if math.IsInf(d, 1) {
		return "inf (absolute)"
	}
	if math.IsInf(d, -1) {
		return "-inf (absolute)"
	}
	return fmt.Sprintf("%+.2f (%s)", d, label)
}

// formatWindow renders a UTC time window for table headers.
func formatWindow(start, end time.Time) string {
	return fmt.Sprintf("%s to %s UTC",
		start.UTC().Format("2006-01-02 15:04"),
		end.UTC().Format("2006-01-02 15:04"))
}

// truncateString truncates a string to the given max length and adds "..." if necessary
func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
