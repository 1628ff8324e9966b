package surepayroll

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/compensation"
	log "github.com/sirupsen/logrus"
)

// ImportResult summarizes a SurePayroll rate import batch.
type ImportResult struct {
	BatchId         string
	Success         bool
	RecordsImported int
	RecordsSkipped  int
	Errors          []string
}

type Service interface {
	// ImportRates imports the current pay rates into the compensation ledger.
	// A rate that fails validation is skipped and reported, not fatal.
	ImportRates(ctx context.Context) (ImportResult, error)
}

type ServiceImpl struct {
	client        Client
	compensations compensation.Service
	bus           *event_bus.EventBus
	clock         utils.Clock
}

func NewService(client Client, compensations compensation.Service, bus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{client: client, compensations: compensations, bus: bus, clock: clock}
}

func (s *ServiceImpl) ImportRates(ctx context.Context) (ImportResult, error) {
	records, err := s.client.GetPayRates(ctx)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to fetch pay rates: %w", err)
	}

	result := ImportResult{BatchId: uuid.NewString(), Success: true}
	for _, record := range records {
		if _, err := s.compensations.AddRecord(ctx, record.EmployeeId, record); err != nil {
			result.RecordsSkipped++
			result.Errors = append(result.Errors, fmt.Sprintf("pay rate for %s skipped: %v", record.EmployeeId, err))
			continue
		}
		result.RecordsImported++
	}

	if s.bus != nil {
		event := event_bus.NewEvent(ctx, event_bus.CompensationImported, event_bus.ImportCompleted{
			BatchId:         result.BatchId,
			Source:          "surepayroll",
			RecordsImported: result.RecordsImported,
			RecordsSkipped:  result.RecordsSkipped,
			CompletedAt:     s.clock.Now(),
		})
		if err := s.bus.Publish(event); err != nil {
			log.Warnf("compensation imported event handlers failed: %v", err)
		}
	}

	log.Infof("SurePayroll import finished: %d rates imported, %d skipped", result.RecordsImported, result.RecordsSkipped)
	return result, nil
}
