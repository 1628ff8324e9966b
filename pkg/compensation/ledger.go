package compensation

import (
	"errors"
	"sort"
	"time"
)

var (
	// ErrInvalidInterval is returned when a record's end date is not strictly
	// after its effective date, or the effective date is missing.
	ErrInvalidInterval = errors.New("record end date must be after its effective date")
	// ErrNoRecord is returned by Resolve when no record is in effect on the
	// requested date.
	ErrNoRecord = errors.New("no compensation record in effect")
	// ErrLedgerCorrupted indicates records with nonsensical intervals, which
	// can only happen when the ledger invariant was bypassed (e.g. rows edited
	// directly in the database). It aborts the operation in progress.
	ErrLedgerCorrupted = errors.New("compensation ledger corrupted")
)

// Ledger resolves point-in-time compensation per employee. Records per
// employee are kept sorted ascending by effective date, and at most one record
// per employee is open at any time: adding a new open record closes the
// previously open one at the new record's effective date.
//
// Add is not safe for concurrent writers on the same employee; the close-then-
// append sequence must be treated as a single atomic step. Resolve and History
// are safe to run concurrently with each other, but not with a concurrent Add
// for the same employee.
type Ledger struct {
	records map[string][]Record
}

func NewLedger() *Ledger {
	return &Ledger{records: make(map[string][]Record)}
}

// NewLedgerFromHistory builds a ledger from already-persisted records without
// re-running the closing rule. Records with an end date not after their
// effective date make the ledger unusable and yield ErrLedgerCorrupted.
func NewLedgerFromHistory(records []Record) (*Ledger, error) {
	ledger := NewLedger()
	for _, record := range records {
		if record.EffectiveDate.IsZero() {
			return nil, ErrLedgerCorrupted
		}
		if !record.EndDate.IsZero() && !record.EndDate.After(record.EffectiveDate) {
			return nil, ErrLedgerCorrupted
		}
		ledger.records[record.EmployeeId] = append(ledger.records[record.EmployeeId], record)
	}
	for employeeId := range ledger.records {
		sortByEffectiveDate(ledger.records[employeeId])
	}
	return ledger, nil
}

// Add validates the record's interval and appends it to the employee's
// history. When the new record is open-ended, the employee's previously open
// record (if any) is closed in place at the new record's effective date.
func (l *Ledger) Add(employeeId string, record Record) error {
	if record.EffectiveDate.IsZero() {
		return ErrInvalidInterval
	}
	if !record.EndDate.IsZero() && !record.EndDate.After(record.EffectiveDate) {
		return ErrInvalidInterval
	}

	record.EmployeeId = employeeId
	history := l.records[employeeId]
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
	l.records[employeeId] = history
	return nil
}

// Resolve returns the record in effect on the given date. When several
// records contain the date (an invariant bypass), the one with the latest
// effective date not after the query date wins. This last-write-wins policy is
// deliberate: the most recently effective record is the best guess at the
// intended rate.
func (l *Ledger) Resolve(employeeId string, date time.Time) (Record, error) {
	history := l.records[employeeId]
	if len(history) == 0 {
		return Record{}, ErrNoRecord
	}

	// Index of the first record with EffectiveDate > date.
	idx := sort.Search(len(history), func(i int) bool {
		return history[i].EffectiveDate.After(date)
	})
	for i := idx - 1; i >= 0; i-- {
		if history[i].Contains(date) {
			return history[i], nil
		}
	}
	return Record{}, ErrNoRecord
}

// History returns the employee's records ordered ascending by effective date.
func (l *Ledger) History(employeeId string) []Record {
	history := l.records[employeeId]
	out := make([]Record, len(history))
	copy(out, history)
	return out
}

func sortByEffectiveDate(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectiveDate.Before(records[j].EffectiveDate)
	})
}
