package multiplier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestLedger_Resolve_DefaultsToNeutralMultiplier(t *testing.T) {
	ledger := NewLedger()

	t.Run("project with no records", func(t *testing.T) {
		assert.Equal(t, DefaultMultiplier, ledger.Resolve("proj-1", date(2024, 3, 1)))
	})

	t.Run("date outside all records", func(t *testing.T) {
		require.NoError(t, ledger.Add("proj-1", Record{
			Multiplier:    1.5,
			EffectiveDate: date(2024, 1, 1),
			EndDate:       date(2024, 7, 1),
		}))
		assert.Equal(t, DefaultMultiplier, ledger.Resolve("proj-1", date(2024, 7, 1)))
		assert.Equal(t, DefaultMultiplier, ledger.Resolve("proj-1", date(2023, 12, 31)))
	})
}

func TestLedger_Resolve_PicksRecordInEffect(t *testing.T) {
	// given
	ledger := NewLedger()
	require.NoError(t, ledger.Add("proj-1", Record{
		Multiplier:    1.2,
		EffectiveDate: date(2024, 1, 1),
	}))
	require.NoError(t, ledger.Add("proj-1", Record{
		Multiplier:    1.5,
		EffectiveDate: date(2024, 6, 1),
	}))

	// then the first record was closed at the second one's effective date
	assert.Equal(t, 1.2, ledger.Resolve("proj-1", date(2024, 5, 31)))
	assert.Equal(t, 1.5, ledger.Resolve("proj-1", date(2024, 6, 1)))
}

func TestLedger_Add_RejectsNonPositiveMultiplier(t *testing.T) {
	ledger := NewLedger()

	assert.ErrorIs(t, ledger.Add("proj-1", Record{
		Multiplier:    0,
		EffectiveDate: date(2024, 1, 1),
	}), ErrInvalidMultiplier)

	assert.ErrorIs(t, ledger.Add("proj-1", Record{
		Multiplier:    -0.5,
		EffectiveDate: date(2024, 1, 1),
	}), ErrInvalidMultiplier)

	assert.Empty(t, ledger.History("proj-1"))
}

func TestLedger_Add_RejectsInvalidInterval(t *testing.T) {
	ledger := NewLedger()

	err := ledger.Add("proj-1", Record{
		Multiplier:    1.5,
		EffectiveDate: date(2024, 6, 1),
		EndDate:       date(2024, 1, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInterval)

	err = ledger.Add("proj-1", Record{Multiplier: 1.5})
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestNewLedgerFromHistory_RejectsCorruptedRecords(t *testing.T) {
	_, err := NewLedgerFromHistory([]Record{
		{ProjectId: "proj-1", Multiplier: 1.5, EffectiveDate: date(2024, 6, 1), EndDate: date(2024, 6, 1)},
	})
	assert.ErrorIs(t, err, ErrLedgerCorrupted)
}
