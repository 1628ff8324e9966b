package event_bus

import "time"

const (
	// TimeEntriesImported is published after a time entry import batch finished,
	// whether fully successful or partially skipped.
	TimeEntriesImported EventType = "import.time_entries.completed"
	// CompensationImported is published after a payroll compensation import.
	CompensationImported EventType = "import.compensation.completed"
)

type ImportCompleted struct {
	BatchId         string
	Source          string
	RecordsImported int
	RecordsSkipped  int
	TotalCost       float64
	CompletedAt     time.Time
}
