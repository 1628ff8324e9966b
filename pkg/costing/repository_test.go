package costing

import (
	"context"
	"testing"
	"time"

	"github.com/marginview/marginview/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db), context.Background()
}

func storedEntry(sourceId, employeeId, projectId string, day time.Time, hours float64) CostedTimeEntry {
	return CostedTimeEntry{
		SourceEntryId:     sourceId,
		EmployeeId:        employeeId,
		EmployeeName:      "Name of " + employeeId,
		ProjectId:         projectId,
		ProjectName:       "Name of " + projectId,
		Date:              day,
		Hours:             hours,
		BillableHours:     hours,
		HourlyRate:        50,
		ProjectMultiplier: 1.2,
		TotalCost:         hours * 50,
		BillableValue:     hours * 50 * 1.2,
		Efficiency:        1,
		Description:       "development",
		Tags:              []string{"backend", "sprint-12"},
	}
}

func TestRepositoryImpl_StoreBatch_AndFindByProject(t *testing.T) {
	// given
	repo, ctx := setupRepositoryTest(t)
	err := repo.StoreBatch(ctx, []CostedTimeEntry{
		storedEntry("entry-1", "emp-1", "proj-1", date(2024, 3, 4), 8),
		storedEntry("entry-2", "emp-2", "proj-1", date(2024, 3, 5), 6),
		storedEntry("entry-3", "emp-1", "proj-2", date(2024, 3, 5), 2),
	})
	require.NoError(t, err)

	// when
	entries, err := repo.FindByProject(ctx, "proj-1", date(2024, 3, 1), date(2024, 3, 31))

	// then entries come back ordered by date with all fields intact
	require.NoError(t, err)
	require.Len(t, entries, 2)
	first := entries[0]
	assert.Equal(t, "entry-1", first.SourceEntryId)
	assert.Equal(t, "Name of emp-1", first.EmployeeName)
	assert.Equal(t, date(2024, 3, 4), first.Date)
	assert.Equal(t, 8.0, first.Hours)
	assert.Equal(t, 400.0, first.TotalCost)
	assert.InDelta(t, 480.0, first.BillableValue, 1e-9)
	assert.Equal(t, []string{"backend", "sprint-12"}, first.Tags)
}

func TestRepositoryImpl_StoreBatch_UpsertsBySourceEntryId(t *testing.T) {
	// given an imported entry
	repo, ctx := setupRepositoryTest(t)
	require.NoError(t, repo.StoreBatch(ctx, []CostedTimeEntry{
		storedEntry("entry-1", "emp-1", "proj-1", date(2024, 3, 4), 8),
	}))

	// when the same source entry is imported again with corrected hours
	require.NoError(t, repo.StoreBatch(ctx, []CostedTimeEntry{
		storedEntry("entry-1", "emp-1", "proj-1", date(2024, 3, 4), 6),
	}))

	// then there is a single row with the new figures
	entries, err := repo.FindByProject(ctx, "proj-1", date(2024, 3, 1), date(2024, 3, 31))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 6.0, entries[0].Hours)
	assert.Equal(t, 300.0, entries[0].TotalCost)
}

func TestRepositoryImpl_FindByEmployee_RangeIsInclusive(t *testing.T) {
	// given entries on the range boundaries and outside them
	repo, ctx := setupRepositoryTest(t)
	require.NoError(t, repo.StoreBatch(ctx, []CostedTimeEntry{
		storedEntry("entry-1", "emp-1", "proj-1", date(2024, 2, 29), 1),
		storedEntry("entry-2", "emp-1", "proj-1", date(2024, 3, 1), 2),
		storedEntry("entry-3", "emp-1", "proj-2", date(2024, 3, 31), 3),
		storedEntry("entry-4", "emp-1", "proj-1", date(2024, 4, 1), 4),
		storedEntry("entry-5", "emp-2", "proj-1", date(2024, 3, 15), 5),
	}))

	// when
	entries, err := repo.FindByEmployee(ctx, "emp-1", date(2024, 3, 1), date(2024, 3, 31))

	// then only the employee's entries inside the range match
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "entry-2", entries[0].SourceEntryId)
	assert.Equal(t, "entry-3", entries[1].SourceEntryId)
}

func TestRepositoryImpl_FindByProject_Empty(t *testing.T) {
	repo, ctx := setupRepositoryTest(t)

	entries, err := repo.FindByProject(ctx, "proj-unknown", date(2024, 3, 1), date(2024, 3, 31))

	require.NoError(t, err)
	assert.Empty(t, entries)
}
