package bamboohr

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
	log "github.com/sirupsen/logrus"
)

// ImportResult summarizes a BambooHR import batch. A failed employee or
// record is counted and reported, never raised as an error.
type ImportResult struct {
	BatchId           string
	Success           bool
	EmployeesImported int
	RecordsImported   int
	RecordsSkipped    int
	Errors            []string
}

type Service interface {
	// ImportAll imports the employee directory and every employee's
	// compensation history.
	ImportAll(ctx context.Context) (ImportResult, error)
}

type ServiceImpl struct {
	client        Client
	employees     employee.Service
	compensations compensation.Service
	bus           *event_bus.EventBus
	clock         utils.Clock
}

func NewService(
	client Client,
	employees employee.Service,
	compensations compensation.Service,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		client:        client,
		employees:     employees,
		compensations: compensations,
		bus:           bus,
		clock:         clock,
	}
}

func (s *ServiceImpl) ImportAll(ctx context.Context) (ImportResult, error) {
	remote, err := s.client.GetEmployees(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to fetch employees: %w", err)
	}

	result := ImportResult{BatchId: uuid.NewString(), Success: true}
	for _, e := range remote {
		if _, err := s.employees.Add(ctx, e); err != nil {
			result.RecordsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("employee %s skipped: %v", e.Id, err))
			continue
		}
		result.EmployeesImported++

		records, err := s.client.GetCompensationRecords(ctx, e.Id)
		if err != nil {
			result.RecordsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("compensation history for %s skipped: %v", e.Id, err))
			continue
		}
		for _, record := range records {
			if _, err := s.compensations.AddRecord(ctx, e.Id, record); err != nil {
				result.RecordsSkipped++
				result.Errors = append(result.Errors, fmt.Sprintf("compensation record for %s skipped: %v", e.Id, err))
				continue
			}
			result.RecordsImported++
		}
	}

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.CompensationImported, event_bus.ImportCompleted{
			BatchId:         result.BatchId,
			Source:          "bamboohr",
			RecordsImported: result.RecordsImported,
			RecordsSkipped:  result.RecordsSkipped,
			CompletedAt:     s.clock.Now(),
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("compensation imported event handlers failed: %v", err)
		}
	}

	log.Infof("BambooHR import finished: %d employees, %d compensation records, %d skipped",
		result.EmployeesImported, result.RecordsImported, result.RecordsSkipped)
	return result, nil
}
