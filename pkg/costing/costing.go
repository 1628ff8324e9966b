package costing

import "time"

// TimeInterval is the raw interval of a time-tracking entry. Duration is an
// ISO-8601 duration string as delivered by the tracking system ("PT8H30M").
type TimeInterval struct {
	Start    time.Time
	End      time.Time
	Duration string
}

// RawTimeEntry is a time-tracking entry as delivered by the import adapter,
// before any rate has been applied.
type RawTimeEntry struct {
	Id           string
	UserId       string
	ProjectId    string
	Billable     bool
	Description  string
	Tags         []string
	TimeInterval TimeInterval
}

// CostedTimeEntry is a raw entry enriched with the compensation rate and
// project multiplier that were in effect on its date. Hours always equals
// BillableHours + NonBillableHours and exactly one of the two is non-zero: an
// entry is wholly billable or wholly non-billable.
type CostedTimeEntry struct {
	Id                int
	SourceEntryId     string
	EmployeeId        string
	EmployeeName      string
	ProjectId         string
	ProjectName       string
	Date              time.Time
	Hours             float64
	BillableHours     float64
	NonBillableHours  float64
	HourlyRate        float64
	ProjectMultiplier float64
	TotalCost         float64
	BillableValue     float64
	Efficiency        float64
	Description       string
	Tags              []string
}

type SkipReason string

const (
	SkipUnknownEmployee SkipReason = "unknown-employee"
	SkipUnknownProject  SkipReason = "unknown-project"
	SkipMissingSalary   SkipReason = "missing-salary"
)

// SkipRecord describes a single entry that could not be costed. Skips are
// accumulated and reported, never raised as errors.
type SkipRecord struct {
	EntryId   string
	UserId    string
	ProjectId string
	Reason    SkipReason
}

// ImportSummary carries the aggregate totals of an import batch.
type ImportSummary struct {
	TotalEntries       int
	BillableHours      float64
	NonBillableHours   float64
	TotalCost          float64
	TotalBillableValue float64
}

// ImportResult is the contract returned to import callers. Partial failures
// are expressed through RecordsSkipped and Errors, never as a bare error.
type ImportResult struct {
	BatchId         string
	Success         bool
	RecordsImported int
	RecordsSkipped  int
	Errors          []string
	Summary         ImportSummary
	CompletedAt     time.Time
}
