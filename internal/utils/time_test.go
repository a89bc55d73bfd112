package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-18", time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)},
		{"2025-03-18T08:30", time.Date(2025, 3, 18, 8, 30, 0, 0, time.UTC)},
		{"2025-03-18T08:30:15", time.Date(2025, 3, 18, 8, 30, 15, 0, time.UTC)},
		{"2025-03-18T08:30:15Z", time.Date(2025, 3, 18, 8, 30, 15, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.want), "ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
	}

	for _, bad := range []string{"", "yesterday", "18/03/2025", "2025-3-18"} {
		_, err := ParseTimestamp(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOfUsesUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	// 02:00 on the 19th in UTC+9 is still the 18th in UTC.
	at := time.Date(2025, 3, 19, 2, 0, 0, 0, loc)
	assert.Equal(t, "2025-03-18", DateOf(at))
}
