package costing

import (
	"errors"
	"fmt"
	"time"

	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
	"github.com/marginview/marginview/pkg/project"
	log "github.com/sirupsen/logrus"
)

// RateResolver yields the compensation record in effect for an employee on a
// date. compensation.Ledger satisfies it.
type RateResolver interface {
	Resolve(employeeId string, date time.Time) (compensation.Record, error)
}

// MultiplierResolver yields the billing multiplier in effect for a project on
// a date, defaulting to the neutral 1.0. multiplier.Ledger satisfies it.
type MultiplierResolver interface {
	Resolve(projectId string, date time.Time) float64
}

// Engine costs raw time entries against the compensation and multiplier
// ledgers. It is stateless; Process is a pure function of its inputs and may
// run in parallel across independent batches as long as no ledger write is in
// flight.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Process costs each raw entry in order. Per-entry problems (unknown
// employee, unknown project, no salary in effect) skip the entry and record
// the reason; they never abort the batch. The only fatal condition is a
// corrupted ledger, which cannot produce trustworthy rates for any entry.
func (e *Engine) Process(
	entries []RawTimeEntry,
	employees employee.Directory,
	projects project.Directory,
	rates RateResolver,
	multipliers MultiplierResolver,
) ([]CostedTimeEntry, []SkipRecord, error) {

	costed := make([]CostedTimeEntry, 0, len(entries))
	var skipped []SkipRecord

	for _, entry := range entries {
		emp, ok := employees[entry.UserId]
		if !ok {
			log.Debugf("skipping entry %s: unknown employee %s", entry.Id, entry.UserId)
			skipped = append(skipped, skip(entry, SkipUnknownEmployee))
			continue
		}
		proj, ok := projects[entry.ProjectId]
		if !ok {
			log.Debugf("skipping entry %s: unknown project %s", entry.Id, entry.ProjectId)
			skipped = append(skipped, skip(entry, SkipUnknownProject))
			continue
		}

		entryDate := dayOf(entry.TimeInterval.Start)

		record, err := rates.Resolve(emp.Id, entryDate)
		if err != nil {
			if errors.Is(err, compensation.ErrNoRecord) {
				log.Debugf("skipping entry %s: no salary in effect for %s on %s", entry.Id, emp.Id, entryDate.Format("2006-01-02"))
				skipped = append(skipped, skip(entry, SkipMissingSalary))
				continue
			}
			return nil, nil, fmt.Errorf("resolving rate for employee %s: %w", emp.Id, err)
		}
		mult := multipliers.Resolve(proj.Id, entryDate)

		hours := ParseDurationHours(entry.TimeInterval.Duration)
		var billableHours, nonBillableHours float64
		if entry.Billable {
			billableHours = hours
		} else {
			nonBillableHours = hours
		}

		efficiency := 0.0
		if hours > 0 {
			efficiency = billableHours / hours
		}

		costed = append(costed, CostedTimeEntry{
			SourceEntryId:     entry.Id,
			EmployeeId:        emp.Id,
			EmployeeName:      emp.Name,
			ProjectId:         proj.Id,
			ProjectName:       proj.Name,
			Date:              entryDate,
			Hours:             hours,
			BillableHours:     billableHours,
			NonBillableHours:  nonBillableHours,
			HourlyRate:        record.HourlyRate,
			ProjectMultiplier: mult,
			TotalCost:         hours * record.HourlyRate,
			BillableValue:     billableHours * record.HourlyRate * mult,
			Efficiency:        efficiency,
			Description:       entry.Description,
			Tags:              entry.Tags,
		})
	}

	return costed, skipped, nil
}

func skip(entry RawTimeEntry, reason SkipReason) SkipRecord {
	return SkipRecord{
		EntryId:   entry.Id,
		UserId:    entry.UserId,
		ProjectId: entry.ProjectId,
		Reason:    reason,
	}
}

// dayOf truncates a timestamp to its calendar date in UTC, matching how
// ledger effective dates are stored.
func dayOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
