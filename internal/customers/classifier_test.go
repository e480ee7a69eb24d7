package customers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lucasmedina/viandas-backend/pkg/enums"
)

func TestClassify_NoOrdersIsInactive(t *testing.T) {
	assert.Equal(t, enums.CustomerStatusInactive, Classify(nil, time.Now()))
}

func TestClassify_Boundaries(t *testing.T) {
	now := time.Date(2025, 8, 31, 15, 0, 0, 0, time.UTC)

	cases := []struct {
		name     string
		daysAgo  int
		expected enums.CustomerStatus
	}{
		{"same day", 0, enums.CustomerStatusActive},
		{"one day", 1, enums.CustomerStatusActive},
		{"edge of active", 14, enums.CustomerStatusActive},
		{"just past active", 15, enums.CustomerStatusWarming},
		{"edge of warming", 30, enums.CustomerStatusWarming},
		{"just past warming", 31, enums.CustomerStatusInactive},
		{"long gone", 200, enums.CustomerStatusInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			last := now.AddDate(0, 0, -tc.daysAgo)
			assert.Equal(t, tc.expected, Classify(&last, now))
		})
	}
}

func TestClassify_CalendarDayGranularity(t *testing.T) {
	// 23:50 yesterday vs 00:10 today is one calendar day, not zero
	now := time.Date(2025, 8, 31, 0, 10, 0, 0, time.UTC)
	last := time.Date(2025, 8, 30, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, enums.CustomerStatusActive, Classify(&last, now))

	// 14 calendar days ago but less than 14*24h of wall time still counts as 14
	last = time.Date(2025, 8, 17, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, enums.CustomerStatusActive, Classify(&last, now))

	// one more calendar day tips it into warming
	last = time.Date(2025, 8, 16, 23, 50, 0, 0, time.UTC)
	assert.Equal(t, enums.CustomerStatusWarming, Classify(&last, now))
}

func TestClassify_FutureTimestampClampsToActive(t *testing.T) {
	now := time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour)
	assert.Equal(t, enums.CustomerStatusActive, Classify(&future, now))
}
