package surepayroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	rates []compensation.Record
	err   error
}

func (s *stubClient) GetPayRates(context.Context) ([]compensation.Record, error) {
	return s.rates, s.err
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestServiceImpl_ImportRates(t *testing.T) {
	// given
	client := &stubClient{rates: []compensation.Record{
		{EmployeeId: "emp-1", EffectiveDate: date(2024, 1, 1), HourlyRate: 50},
		{EmployeeId: "emp-2", EffectiveDate: date(2024, 1, 1), HourlyRate: 70},
	}}
	compensations := compensation.NewService(compensation.NewStubRepository())
	service := NewService(client, compensations, event_bus.NewEventBus(), &utils.MockClock{FixedNow: date(2024, 3, 5)})
	ctx := context.Background()

	// when
	result, err := service.ImportRates(ctx)

	// then
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.RecordsImported)
	assert.Equal(t, 0, result.RecordsSkipped)

	record, err := compensations.Resolve(ctx, "emp-2", date(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 70.0, record.HourlyRate)
}

func TestServiceImpl_ImportRates_SkipsInvalidRecord(t *testing.T) {
	// given one rate with a missing effective date
	client := &stubClient{rates: []compensation.Record{
		{EmployeeId: "emp-1", HourlyRate: 50},
		{EmployeeId: "emp-2", EffectiveDate: date(2024, 1, 1), HourlyRate: 70},
	}}
	compensations := compensation.NewService(compensation.NewStubRepository())
	service := NewService(client, compensations, event_bus.NewEventBus(), &utils.MockClock{})

	// when
	result, err := service.ImportRates(context.Background())

	// then the batch still succeeds with the failure reported
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsImported)
	assert.Equal(t, 1, result.RecordsSkipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "emp-1")
}

func TestServiceImpl_ImportRates_ClientFailureIsFatal(t *testing.T) {
	client := &stubClient{err: errors.New("surepayroll unavailable")}
	compensations := compensation.NewService(compensation.NewStubRepository())
	service := NewService(client, compensations, event_bus.NewEventBus(), &utils.MockClock{})

	_, err := service.ImportRates(context.Background())

	assert.ErrorContains(t, err, "surepayroll unavailable")
}

func TestServiceImpl_ImportRates_PublishesEvent(t *testing.T) {
	// given a subscriber on the bus
	bus := event_bus.NewEventBus()
	var received event_bus.ImportCompleted
	event_bus.SubscribeTyped(bus, event_bus.CompensationImported, func(e event_bus.EventT[event_bus.ImportCompleted]) error {
		received = e.Data
		return nil
	})

	client := &stubClient{rates: []compensation.Record{
		{EmployeeId: "emp-1", EffectiveDate: date(2024, 1, 1), HourlyRate: 50},
	}}
	compensations := compensation.NewService(compensation.NewStubRepository())
	service := NewService(client, compensations, bus, &utils.MockClock{FixedNow: date(2024, 3, 5)})

	// when
	result, err := service.ImportRates(context.Background())
	require.NoError(t, err)

	// then
	assert.Equal(t, result.BatchId, received.BatchId)
	assert.Equal(t, "surepayroll", received.Source)
	assert.Equal(t, 1, received.RecordsImported)
}
