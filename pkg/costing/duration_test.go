package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationHours(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     float64
	}{
		{"full workday", "PT8H", 8},
		{"hours and minutes", "PT2H30M", 2.5},
		{"minutes only", "PT45M", 0.75},
		{"seconds contribute fractionally", "PT1H30M36S", 1.51},
		{"zero components", "PT0H0M0S", 0},
		{"empty string", "", 0},
		{"garbage", "8 hours", 0},
		{"date components are not supported", "P1DT2H", 0},
		{"negative durations are not supported", "-PT2H", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseDurationHours(tt.duration), 1e-9)
		})
	}
}
