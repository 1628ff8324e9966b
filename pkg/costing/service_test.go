package costing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
	"github.com/marginview/marginview/pkg/multiplier"
	"github.com/marginview/marginview/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	entries []RawTimeEntry
	err     error

	requestedStart time.Time
	requestedEnd   time.Time
}

func (s *stubSource) GetTimeEntries(_ context.Context, start, end time.Time) ([]RawTimeEntry, error) {
	s.requestedStart = start
	s.requestedEnd = end
	return s.entries, s.err
}

type stubEmployeeDirectory struct {
	directory employee.Directory
}

func (s *stubEmployeeDirectory) Directory(context.Context) (employee.Directory, error) {
	return s.directory, nil
}

type stubProjectDirectory struct {
	directory project.Directory
}

func (s *stubProjectDirectory) Directory(context.Context) (project.Directory, error) {
	return s.directory, nil
}

type stubRateSnapshot struct {
	ledger *compensation.Ledger
	err    error
}

func (s *stubRateSnapshot) Snapshot(context.Context) (*compensation.Ledger, error) {
	return s.ledger, s.err
}

type stubMultiplierSnapshot struct {
	ledger *multiplier.Ledger
}

func (s *stubMultiplierSnapshot) Snapshot(context.Context) (*multiplier.Ledger, error) {
	return s.ledger, nil
}

func setupImportService(t *testing.T, source *stubSource) (*ImportServiceImpl, *StubRepository, *utils.MockClock) {
	t.Helper()

	employees, projects := testDirectories()
	rates, multipliers := testLedgers(t)
	repo := NewStubRepository()
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)}

	service := NewImportService(
		source,
		&stubEmployeeDirectory{directory: employees},
		&stubProjectDirectory{directory: projects},
		&stubRateSnapshot{ledger: rates},
		&stubMultiplierSnapshot{ledger: multipliers},
		repo,
		event_bus.NewEventBus(),
		clock,
	)
	return service, repo, clock
}

func TestImportService_ImportEntries_PartialFailure(t *testing.T) {
	// given a batch with one unknown project
	service, repo, clock := setupImportService(t, &stubSource{})
	entries := []RawTimeEntry{
		rawEntry("entry-1", "emp-1", "proj-1", true, "PT8H"),
		rawEntry("entry-2", "emp-1", "proj-unknown", true, "PT2H"),
		rawEntry("entry-3", "emp-1", "proj-1", false, "PT1H"),
	}

	// when
	result, err := service.ImportEntries(context.Background(), entries)

	// then the import succeeds with the bad entry reported, not raised
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.NotEmpty(t, result.BatchId)
	assert.Equal(t, 2, result.RecordsImported)
	assert.Equal(t, 1, result.RecordsSkipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "entry-2")
	assert.Contains(t, result.Errors[0], "unknown-project")
	assert.Equal(t, clock.FixedNow, result.CompletedAt)

	assert.Equal(t, 8.0, result.Summary.BillableHours)
	assert.Equal(t, 1.0, result.Summary.NonBillableHours)
	assert.InDelta(t, 450.0, result.Summary.TotalCost, 1e-9)

	// and only the costed entries were persisted
	stored, err := repo.FindByProject(context.Background(), "proj-1", date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestImportService_ImportEntries_ReimportOverwritesBySourceId(t *testing.T) {
	// given an already imported entry
	service, repo, _ := setupImportService(t, &stubSource{})
	ctx := context.Background()
	_, err := service.ImportEntries(ctx, []RawTimeEntry{rawEntry("entry-1", "emp-1", "proj-1", true, "PT4H")})
	require.NoError(t, err)

	// when the same source entry arrives again with corrected hours
	_, err = service.ImportEntries(ctx, []RawTimeEntry{rawEntry("entry-1", "emp-1", "proj-1", true, "PT6H")})
	require.NoError(t, err)

	// then there is still a single row, carrying the new figures
	stored, err := repo.FindByProject(ctx, "proj-1", date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 6.0, stored[0].Hours)
}

func TestImportService_ImportEntries_CorruptedLedgerAborts(t *testing.T) {
	// given a rate snapshot that cannot be built
	source := &stubSource{}
	employees, projects := testDirectories()
	_, multipliers := testLedgers(t)
	repo := NewStubRepository()

	service := NewImportService(
		source,
		&stubEmployeeDirectory{directory: employees},
		&stubProjectDirectory{directory: projects},
		&stubRateSnapshot{err: compensation.ErrLedgerCorrupted},
		&stubMultiplierSnapshot{ledger: multipliers},
		repo,
		event_bus.NewEventBus(),
		&utils.MockClock{},
	)

	// when
	_, err := service.ImportEntries(context.Background(), []RawTimeEntry{
		rawEntry("entry-1", "emp-1", "proj-1", true, "PT8H"),
	})

	// then the whole batch aborts and nothing is persisted
	assert.ErrorIs(t, err, compensation.ErrLedgerCorrupted)
	stored, err := repo.FindByProject(context.Background(), "proj-1", date(2024, 1, 1), date(2024, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestImportService_ImportWindow_PullsFromSource(t *testing.T) {
	// given
	source := &stubSource{entries: []RawTimeEntry{rawEntry("entry-1", "emp-1", "proj-1", true, "PT8H")}}
	service, _, _ := setupImportService(t, source)
	start := date(2024, 3, 1)
	end := date(2024, 3, 31)

	// when
	result, err := service.ImportWindow(context.Background(), start, end)

	// then
	require.NoError(t, err)
	assert.Equal(t, start, source.requestedStart)
	assert.Equal(t, end, source.requestedEnd)
	assert.Equal(t, 1, result.RecordsImported)
}

func TestImportService_ImportWindow_SourceFailure(t *testing.T) {
	source := &stubSource{err: errors.New("clockify unavailable")}
	service, _, _ := setupImportService(t, source)

	_, err := service.ImportWindow(context.Background(), date(2024, 3, 1), date(2024, 3, 31))

	assert.ErrorContains(t, err, "clockify unavailable")
}

func TestImportService_LastImport(t *testing.T) {
	service, _, _ := setupImportService(t, &stubSource{})

	// no import has run yet
	_, ok := service.LastImport()
	assert.False(t, ok)

	result, err := service.ImportEntries(context.Background(), []RawTimeEntry{
		rawEntry("entry-1", "emp-1", "proj-1", true, "PT8H"),
	})
	require.NoError(t, err)

	last, ok := service.LastImport()
	assert.True(t, ok)
	assert.Equal(t, result.BatchId, last.BatchId)
}

func TestImportService_PublishesImportCompletedEvent(t *testing.T) {
	// given a subscriber on the bus
	source := &stubSource{}
	employees, projects := testDirectories()
	rates, multipliers := testLedgers(t)
	bus := event_bus.NewEventBus()

	var received event_bus.ImportCompleted
	event_bus.SubscribeTyped(bus, event_bus.TimeEntriesImported, func(e event_bus.EventT[event_bus.ImportCompleted]) error {
		received = e.Data
		return nil
	})

	service := NewImportService(
		source,
		&stubEmployeeDirectory{directory: employees},
		&stubProjectDirectory{directory: projects},
		&stubRateSnapshot{ledger: rates},
		&stubMultiplierSnapshot{ledger: multipliers},
		NewStubRepository(),
		bus,
		&utils.MockClock{FixedNow: time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)},
	)

	// when
	result, err := service.ImportEntries(context.Background(), []RawTimeEntry{
		rawEntry("entry-1", "emp-1", "proj-1", true, "PT8H"),
		rawEntry("entry-2", "emp-unknown", "proj-1", true, "PT8H"),
	})
	require.NoError(t, err)

	// then the event mirrors the result
	assert.Equal(t, result.BatchId, received.BatchId)
	assert.Equal(t, "clockify", received.Source)
	assert.Equal(t, 1, received.RecordsImported)
	assert.Equal(t, 1, received.RecordsSkipped)
	assert.Equal(t, 400.0, received.TotalCost)
}
