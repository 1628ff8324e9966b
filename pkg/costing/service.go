package costing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
	"github.com/marginview/marginview/pkg/multiplier"
	"github.com/marginview/marginview/pkg/project"
	log "github.com/sirupsen/logrus"
)

// TimeEntrySource supplies raw entries for an import window. The Clockify
// client satisfies it.
type TimeEntrySource interface {
	GetTimeEntries(ctx context.Context, start, end time.Time) ([]RawTimeEntry, error)
}

type EmployeeDirectoryProvider interface {
	Directory(ctx context.Context) (employee.Directory, error)
}

type ProjectDirectoryProvider interface {
	Directory(ctx context.Context) (project.Directory, error)
}

type RateSnapshotProvider interface {
	Snapshot(ctx context.Context) (*compensation.Ledger, error)
}

type MultiplierSnapshotProvider interface {
	Snapshot(ctx context.Context) (*multiplier.Ledger, error)
}

type ImportService interface {
	// ImportEntries costs and persists the supplied raw entries.
	ImportEntries(ctx context.Context, entries []RawTimeEntry) (ImportResult, error)
	// ImportWindow pulls raw entries for [start, end] from the time-tracking
	// source, then imports them.
	ImportWindow(ctx context.Context, start, end time.Time) (ImportResult, error)
	// LastImport returns the most recent import result of this process.
	LastImport() (ImportResult, bool)
}

type ImportServiceImpl struct {
	source      TimeEntrySource
	employees   EmployeeDirectoryProvider
	projects    ProjectDirectoryProvider
	rates       RateSnapshotProvider
	multipliers MultiplierSnapshotProvider
	repo        Repository
	engine      *Engine
	bus         *event_bus.EventBus
	clock       utils.Clock

	mu   sync.Mutex
	last *ImportResult
}

func NewImportService(
	source TimeEntrySource,
	employees EmployeeDirectoryProvider,
	projects ProjectDirectoryProvider,
	rates RateSnapshotProvider,
	multipliers MultiplierSnapshotProvider,
	repo Repository,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ImportServiceImpl {
	return &ImportServiceImpl{
		source:      source,
		employees:   employees,
		projects:    projects,
		rates:       rates,
		multipliers: multipliers,
		repo:        repo,
		engine:      NewEngine(),
		bus:         bus,
		clock:       clock,
	}
}

func (s *ImportServiceImpl) ImportWindow(ctx context.Context, start, end time.Time) (ImportResult, error) {
	entries, err := s.source.GetTimeEntries(ctx, start, end)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to fetch time entries: %w", err)
	}
	log.Infof("Fetched %d time entries for window %s - %s", len(entries), start.Format("2006-01-02"), end.Format("2006-01-02"))
	return s.ImportEntries(ctx, entries)
}

func (s *ImportServiceImpl) ImportEntries(ctx context.Context, entries []RawTimeEntry) (ImportResult, error) {
	employees, err := s.employees.Directory(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	projects, err := s.projects.Directory(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	rateLedger, err := s.rates.Snapshot(ctx)
	if err != nil {
		return ImportResult{}, err
	}
	multiplierLedger, err := s.multipliers.Snapshot(ctx)
	if err != nil {
		return ImportResult{}, err
	}

	costed, skipped, err := s.engine.Process(entries, employees, projects, rateLedger, multiplierLedger)
	if err != nil {
		return ImportResult{}, err
	}

	if err := s.repo.StoreBatch(ctx, costed); err != nil {
		return ImportResult{}, err
	}

	result := ImportResult{
		BatchId:         uuid.NewString(),
		Success:         true,
		RecordsImported: len(costed),
		RecordsSkipped:  len(skipped),
		Errors:          skipMessages(skipped),
		Summary:         summarize(costed),
		CompletedAt:     s.clock.Now(),
	}

	s.mu.Lock()
	s.last = &result
	s.mu.Unlock()

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.TimeEntriesImported, event_bus.ImportCompleted{
			BatchId:         result.BatchId,
			Source:          "clockify",
			RecordsImported: result.RecordsImported,
			RecordsSkipped:  result.RecordsSkipped,
			TotalCost:       result.Summary.TotalCost,
			CompletedAt:     result.CompletedAt,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("import completed event handlers failed: %v", err)
		}
	}

	return result, nil
}

func (s *ImportServiceImpl) LastImport() (ImportResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return ImportResult{}, false
	}
	return *s.last, true
}

func summarize(costed []CostedTimeEntry) ImportSummary {
	summary := ImportSummary{TotalEntries: len(costed)}
	for _, entry := range costed {
		summary.BillableHours += entry.BillableHours
		summary.NonBillableHours += entry.NonBillableHours
		summary.TotalCost += entry.TotalCost
		summary.TotalBillableValue += entry.BillableValue
	}
	return summary
}

func skipMessages(skipped []SkipRecord) []string {
	messages := make([]string, 0, len(skipped))
	for _, skip := range skipped {
		messages = append(messages, fmt.Sprintf("entry %s skipped: %s", skip.EntryId, skip.Reason))
	}
	return messages
}
