package costing

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// ParseDurationHours converts an ISO-8601 duration of the form
// PT[nH][nM][nS] into fractional hours. Absent groups count as zero. A string
// that does not match the pattern parses to 0 hours; the tracking system emits
// empty durations for running entries, so this is deliberate rather than an
// error.
func ParseDurationHours(duration string) float64 {
	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}
	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])
	return float64(hours) + float64(minutes)/60 + float64(seconds)/3600
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
