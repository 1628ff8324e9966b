package multiplier

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrInvalidInterval is returned when a record's end date is not strictly
	// after its effective date, or the effective date is missing.
	ErrInvalidInterval = errors.New("record end date must be after its effective date")
	// ErrInvalidMultiplier is returned when a record's multiplier is not positive.
	ErrInvalidMultiplier = errors.New("multiplier must be greater than zero")
	// ErrLedgerCorrupted indicates records with nonsensical intervals caused
	// by bypassing the ledger invariant.
	ErrLedgerCorrupted = errors.New("multiplier ledger corrupted")
)

// Ledger resolves point-in-time billing multipliers per project. It shares
// the interval mechanics of the compensation ledger, with one difference in
// contract: resolving a project with no matching record yields the neutral
// DefaultMultiplier instead of an error.
//
// Add is not safe for concurrent writers on the same project; see the
// compensation ledger for the locking contract.
type Ledger struct {
	records map[string][]Record
}

func NewLedger() *Ledger {
	return &Ledger{records: make(map[string][]Record)}
}

// NewLedgerFromHistory builds a ledger from already-persisted records without
// re-running the closing rule.
func NewLedgerFromHistory(records []Record) (*Ledger, error) {
	ledger := NewLedger()
	for _, record := range records {
		if record.EffectiveDate.IsZero() {
			return nil, ErrLedgerCorrupted
		}
		if !record.EndDate.IsZero() && !record.EndDate.After(record.EffectiveDate) {
			return nil, ErrLedgerCorrupted
		}
		ledger.records[record.ProjectId] = append(ledger.records[record.ProjectId], record)
	}
	for projectId := range ledger.records {
		sortByEffectiveDate(ledger.records[projectId])
	}
	return ledger, nil
}

// Add validates the record and appends it to the project's history, closing a
// previously open record at the new record's effective date when needed.
func (l *Ledger) Add(projectId string, record Record) error {
	if record.Multiplier <= 0 {
		return ErrInvalidMultiplier
	}
	if record.EffectiveDate.IsZero() {
		return ErrInvalidInterval
	}
	if !record.EndDate.IsZero() && !record.EndDate.After(record.EffectiveDate) {
		return ErrInvalidInterval
	}

	record.ProjectId = projectId
	history := l.records[projectId]
	if record.Open() {
		for i := range history {
			if history[i].Open() {
				history[i].EndDate = record.EffectiveDate
				break
			}
		}
	}
	history = append(history, record)
	sortByEffectiveDate(history)
	l.records[projectId] = history
	return nil
}

// Resolve returns the multiplier in effect for the project on the given date,
// or DefaultMultiplier when no record matches. Overlapping records resolve
// last-write-wins, like the compensation ledger.
func (l *Ledger) Resolve(projectId string, date time.Time) float64 {
	history := l.records[projectId]
	if len(history) == 0 {
		return DefaultMultiplier
	}

	idx := sort.Search(len(history), func(i int) bool {
		return history[i].EffectiveDate.After(date)
	})
	for i := idx - 1; i >= 0; i-- {
		if history[i].Contains(date) {
			return history[i].Multiplier
		}
	}
	return DefaultMultiplier
}

// History returns the project's records ordered ascending by effective date.
func (l *Ledger) History(projectId string) []Record {
	history := l.records[projectId]
	out := make([]Record, len(history))
	copy(out, history)
	return out
}

func sortByEffectiveDate(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectiveDate.Before(records[j].EffectiveDate)
	})
}
