package multiplier

import (
	"context"
	"testing"

	"github.com/marginview/marginview/internal/test_utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepositoryTest(t *testing.T) (*RepositoryImpl, context.Context) {
	db := test_utils.SetupTestDB(t)
	return NewRepository(db), context.Background()
}

func TestRepositoryImpl_Store(t *testing.T) {
	// given
	repo, ctx := setupRepositoryTest(t)

	// when
	id, err := repo.Store(ctx, Record{
		ProjectId:     "proj-1",
		ProjectName:   "Platform Rebuild",
		Multiplier:    1.5,
		EffectiveDate: date(2024, 1, 1),
		Notes:         "premium engagement",
	})

	// then
	require.NoError(t, err)
	assert.Greater(t, id, 0)

	records, err := repo.GetAllForProject(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1.5, records[0].Multiplier)
	assert.Equal(t, "Platform Rebuild", records[0].ProjectName)
	assert.True(t, records[0].Open())
}

func TestRepositoryImpl_Store_ClosesPreviousOpenRecord(t *testing.T) {
	// given an open record
	repo, ctx := setupRepositoryTest(t)
	_, err := repo.Store(ctx, Record{
		ProjectId:     "proj-1",
		Multiplier:    1.2,
		EffectiveDate: date(2024, 1, 1),
	})
	require.NoError(t, err)

	// when a new open record takes effect
	_, err = repo.Store(ctx, Record{
		ProjectId:     "proj-1",
		Multiplier:    1.5,
		EffectiveDate: date(2024, 6, 1),
	})
	require.NoError(t, err)

	// then the old record is closed at the new effective date
	records, err := repo.GetAllForProject(ctx, "proj-1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, date(2024, 6, 1), records[0].EndDate)
	assert.True(t, records[1].Open())
}

func TestRepositoryImpl_GetAll(t *testing.T) {
	repo, ctx := setupRepositoryTest(t)
	for _, record := range []Record{
		{ProjectId: "proj-2", Multiplier: 2.0, EffectiveDate: date(2024, 3, 1)},
		{ProjectId: "proj-1", Multiplier: 1.2, EffectiveDate: date(2024, 1, 1)},
	} {
		_, err := repo.Store(ctx, record)
		require.NoError(t, err)
	}

	records, err := repo.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "proj-1", records[0].ProjectId)
	assert.Equal(t, "proj-2", records[1].ProjectId)
}
