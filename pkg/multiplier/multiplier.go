package multiplier

import "time"

// DefaultMultiplier is applied when a project has no multiplier record in
// effect. A missing multiplier is a neutral adjustment, not an error.
const DefaultMultiplier = 1.0

// Record is an effective-dated billing multiplier for a project, valid over
// [EffectiveDate, EndDate); a zero EndDate means the record is currently open.
type Record struct {
	Id            int
	ProjectId     string
	ProjectName   string
	Multiplier    float64
	EffectiveDate time.Time
	EndDate       time.Time
	Notes         string
}

// Contains reports whether date falls into the record's [EffectiveDate, EndDate) interval.
func (r Record) Contains(date time.Time) bool {
	if date.Before(r.EffectiveDate) {
		return false
	}
	return r.EndDate.IsZero() || date.Before(r.EndDate)
}

// Open reports whether the record has no end date yet.
func (r Record) Open() bool {
	return r.EndDate.IsZero()
}
