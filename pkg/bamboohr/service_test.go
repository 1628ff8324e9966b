package bamboohr

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func setupServiceTest(client *StubClient) (*ServiceImpl, employee.Service, compensation.Service) {
	employees := employee.NewService(employee.NewStubRepository())
	compensations := compensation.NewService(compensation.NewStubRepository())
	clock := &utils.MockClock{FixedNow: date(2024, 3, 5)}
	service := NewService(client, employees, compensations, event_bus.NewEventBus(), clock)
	return service, employees, compensations
}

func TestServiceImpl_ImportAll(t *testing.T) {
	// given a directory with compensation history
	client := &StubClient{
		Employees: []employee.Employee{
			{Id: "emp-1", Name: "Ada Lovelace", Status: employee.StatusActive},
			{Id: "emp-2", Name: "Grace Hopper", Status: employee.StatusActive},
		},
		Records: map[string][]compensation.Record{
			"emp-1": {
				{EffectiveDate: date(2023, 1, 1), EndDate: date(2024, 1, 1), HourlyRate: 45},
				{EffectiveDate: date(2024, 1, 1), HourlyRate: 50},
			},
			"emp-2": {
				{EffectiveDate: date(2024, 1, 1), HourlyRate: 70},
			},
		},
	}
	service, employees, compensations := setupServiceTest(client)
	ctx := context.Background()

	// when
	result, err := service.ImportAll(ctx)

	// then
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.EmployeesImported)
	assert.Equal(t, 3, result.RecordsImported)
	assert.Equal(t, 0, result.RecordsSkipped)

	directory, err := employees.Directory(ctx)
	require.NoError(t, err)
	assert.Len(t, directory, 2)

	record, err := compensations.Resolve(ctx, "emp-1", date(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 50.0, record.HourlyRate)
}

func TestServiceImpl_ImportAll_SkipsInvalidRecords(t *testing.T) {
	// given one record with a backwards interval
	client := &StubClient{
		Employees: []employee.Employee{
			{Id: "emp-1", Name: "Ada Lovelace"},
		},
		Records: map[string][]compensation.Record{
			"emp-1": {
				{EffectiveDate: date(2024, 6, 1), EndDate: date(2024, 1, 1), HourlyRate: 50},
				{EffectiveDate: date(2024, 1, 1), HourlyRate: 55},
			},
		},
	}
	service, _, compensations := setupServiceTest(client)
	ctx := context.Background()

	// when
	result, err := service.ImportAll(ctx)

	// then the bad record is skipped, the good one lands
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordsImported)
	assert.Equal(t, 1, result.RecordsSkipped)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "emp-1")

	record, err := compensations.Resolve(ctx, "emp-1", date(2024, 3, 1))
	require.NoError(t, err)
	assert.Equal(t, 55.0, record.HourlyRate)
}

func TestServiceImpl_ImportAll_ClientFailureIsFatal(t *testing.T) {
	client := &StubClient{Err: errors.New("bamboohr unavailable")}
	service, _, _ := setupServiceTest(client)

	_, err := service.ImportAll(context.Background())

	assert.ErrorContains(t, err, "bamboohr unavailable")
}
