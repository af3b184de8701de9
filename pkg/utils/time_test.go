package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUserTime(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		isEndTime bool
		want      time.Time
	}{
		{"rfc3339", "2025-07-01T10:30:00Z", false, time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)},
		{"rfc3339 fraction", "2025-07-01T10:30:00.5Z", false, time.Date(2025, 7, 1, 10, 30, 0, 500000000, time.UTC)},
		{"zone-less", "2025-07-01T10:30:00", false, time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)},
		{"space separated", "2025-07-01 10:30:00", false, time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)},
		{"date start", "2025-07-01", false, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"date end", "2025-07-01", true, time.Date(2025, 7, 1, 23, 59, 59, 999999999, time.UTC)},
		{"unix seconds", "1751365800", false, time.Date(2025, 7, 1, 10, 30, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseUserTime(tt.input, tt.isEndTime)

			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s", got)
		})
	}
}

func TestParseUserTimeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "yesterday", "07/01/2025", "-5"} {
		_, err := ParseUserTime(input, false)
		assert.Error(t, err, input)
	}
}
