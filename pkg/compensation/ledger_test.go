package compensation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestLedger_Add_ClosesPreviousOpenRecord(t *testing.T) {
	// given
	ledger := NewLedger()
	require.NoError(t, ledger.Add("emp-1", Record{
		EffectiveDate: date(2024, 1, 1),
		HourlyRate:    40,
	}))

	// when a raise takes effect mid-year
	require.NoError(t, ledger.Add("emp-1", Record{
		EffectiveDate: date(2024, 6, 1),
		HourlyRate:    50,
	}))

	// then the old record is closed at the new record's effective date
	history := ledger.History("emp-1")
	require.Len(t, history, 2)
	assert.Equal(t, date(2024, 6, 1), history[0].EndDate)
	assert.True(t, history[1].Open())

	// and resolution on either side of the boundary picks the right rate
	before, err := ledger.Resolve("emp-1", date(2024, 5, 31))
	require.NoError(t, err)
	assert.Equal(t, 40.0, before.HourlyRate)

	onBoundary, err := ledger.Resolve("emp-1", date(2024, 6, 1))
	require.NoError(t, err)
	assert.Equal(t, 50.0, onBoundary.HourlyRate)
}

func TestLedger_Add_RejectsInvalidInterval(t *testing.T) {
	ledger := NewLedger()

	t.Run("end date before effective date", func(t *testing.T) {
		err := ledger.Add("emp-1", Record{
			EffectiveDate: date(2024, 6, 1),
			EndDate:       date(2024, 1, 1),
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("end date equal to effective date", func(t *testing.T) {
		err := ledger.Add("emp-1", Record{
			EffectiveDate: date(2024, 6, 1),
			EndDate:       date(2024, 6, 1),
		})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	t.Run("missing effective date", func(t *testing.T) {
		err := ledger.Add("emp-1", Record{HourlyRate: 10})
		assert.ErrorIs(t, err, ErrInvalidInterval)
	})

	// rejected records never enter the history
	assert.Empty(t, ledger.History("emp-1"))
}

func TestLedger_Add_ClosedRecordDoesNotTouchOpenOne(t *testing.T) {
	// given an open record
	ledger := NewLedger()
	require.NoError(t, ledger.Add("emp-1", Record{
		EffectiveDate: date(2024, 1, 1),
		HourlyRate:    40,
	}))

	// when a bounded historical record is backfilled
	require.NoError(t, ledger.Add("emp-1", Record{
		EffectiveDate: date(2023, 1, 1),
		EndDate:       date(2023, 12, 31),
		HourlyRate:    35,
	}))

	// then the open record stays open
	history := ledger.History("emp-1")
	require.Len(t, history, 2)
	assert.Equal(t, 35.0, history[0].HourlyRate)
	assert.True(t, history[1].Open())
}

func TestLedger_Resolve_NoRecordInEffect(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Add("emp-1", Record{
		EffectiveDate: date(2024, 1, 1),
		EndDate:       date(2024, 7, 1),
		HourlyRate:    40,
	}))

	t.Run("before any record", func(t *testing.T) {
		_, err := ledger.Resolve("emp-1", date(2023, 12, 31))
		assert.ErrorIs(t, err, ErrNoRecord)
	})

	t.Run("on the exclusive end date", func(t *testing.T) {
		_, err := ledger.Resolve("emp-1", date(2024, 7, 1))
		assert.ErrorIs(t, err, ErrNoRecord)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := ledger.Resolve("emp-unknown", date(2024, 3, 1))
		assert.ErrorIs(t, err, ErrNoRecord)
	})
}

func TestLedger_Resolve_OverlapLastEffectiveDateWins(t *testing.T) {
	// given overlapping records, as they can appear when rows were edited
	// outside the ledger
	ledger, err := NewLedgerFromHistory([]Record{
		{EmployeeId: "emp-1", EffectiveDate: date(2024, 1, 1), EndDate: date(2024, 12, 31), HourlyRate: 40},
		{EmployeeId: "emp-1", EffectiveDate: date(2024, 6, 1), EndDate: date(2024, 12, 31), HourlyRate: 55},
	})
	require.NoError(t, err)

	// when resolving inside the overlap
	record, err := ledger.Resolve("emp-1", date(2024, 8, 1))

	// then the record with the later effective date wins
	require.NoError(t, err)
	assert.Equal(t, 55.0, record.HourlyRate)

	// before the overlap the earlier record still applies
	record, err = ledger.Resolve("emp-1", date(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 40.0, record.HourlyRate)
}

func TestNewLedgerFromHistory_RejectsCorruptedRecords(t *testing.T) {
	_, err := NewLedgerFromHistory([]Record{
		{EmployeeId: "emp-1", EffectiveDate: date(2024, 6, 1), EndDate: date(2024, 1, 1)},
	})
	assert.ErrorIs(t, err, ErrLedgerCorrupted)

	_, err = NewLedgerFromHistory([]Record{
		{EmployeeId: "emp-1", HourlyRate: 10},
	})
	assert.ErrorIs(t, err, ErrLedgerCorrupted)
}

func TestLedger_History_ReturnsCopy(t *testing.T) {
	ledger := NewLedger()
	require.NoError(t, ledger.Add("emp-1", Record{
		EffectiveDate: date(2024, 1, 1),
		HourlyRate:    40,
	}))

	history := ledger.History("emp-1")
	history[0].HourlyRate = 999

	fresh := ledger.History("emp-1")
	assert.Equal(t, 40.0, fresh[0].HourlyRate)
}
