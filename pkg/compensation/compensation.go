package compensation

import "time"

// Record is an effective-dated compensation entry for an employee. It is
// valid over [EffectiveDate, EndDate); a zero EndDate means the record is
// currently open.
type Record struct {
	Id            int
	EmployeeId    string
	EffectiveDate time.Time
	EndDate       time.Time
	AnnualSalary  float64
	HourlyRate    float64
	Currency      string
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
