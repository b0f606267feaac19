package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var timeRangePattern = regexp.MustCompile(`^(\d+)([hdwm])$`)

// ParseTimeRange parses a relative time range like "1h", "24h", "7d" or
// "1w". A month ("1m") is approximated as 30 days.
func ParseTimeRange(s string) (time.Duration, error) {
	m := timeRangePattern.FindStringSubmatch(strings.ToLower(s))
	if m == nil {
		return 0, fmt.Errorf("invalid time range %q, use a format like 1h, 24h, 7d, 1w, 1m", s)
	}

	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time range %q: %w", s, err)
	}

	switch m[2] {
	case "h":
		return time.Duration(value) * time.Hour, nil
	case "d":
		return time.Duration(value) * 24 * time.Hour, nil
	case "w":
		return time.Duration(value) * 7 * 24 * time.Hour, nil
	case "m":
		return time.Duration(value) * 30 * 24 * time.Hour, nil
	}

	return 0, fmt.Errorf("unknown time unit %q", m[2])
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. A timestamp without a zone is
// treated as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q, expected ISO-8601 like 2024-01-15T10:00:00Z", s)
}
