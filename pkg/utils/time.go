package utils

import (
	"fmt"
	"strconv"
	"time"
)

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseUserTime accepts RFC3339, a zone-less timestamp (UTC), a bare date or
// unix seconds. A bare date used as an end bound covers the whole day.
func ParseUserTime(timeStr string, isEndTime bool) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, timeStr); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse(dateLayout, timeStr); err == nil {
		if isEndTime {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return t, nil
	}

	if secs, err := strconv.ParseInt(timeStr, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("invalid time format, expected RFC3339, YYYY-MM-DD or unix seconds, got %s", timeStr)
}
