package compensation

import (
	"context"
	"fmt"
	"time"
)

type Service interface {
	AddRecord(ctx context.Context, employeeId string, record Record) (Record, error)
	Resolve(ctx context.Context, employeeId string, date time.Time) (Record, error)
	History(ctx context.Context, employeeId string) ([]Record, error)
	Snapshot(ctx context.Context) (*Ledger, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// AddRecord validates the record against the employee's existing history and
// persists it. The close-previous-open-record side effect happens both in the
// in-memory ledger (for validation) and in the repository transaction.
func (s *ServiceImpl) AddRecord(ctx context.Context, employeeId string, record Record) (Record, error) {
	history, err := s.repo.GetAllForEmployee(ctx, employeeId)
	if err != nil {
		return Record{}, err
	}
	ledger, err := NewLedgerFromHistory(history)
	if err != nil {
		return Record{}, fmt.Errorf("employee %s: %w", employeeId, err)
	}
	if err := ledger.Add(employeeId, record); err != nil {
		return Record{}, err
	}

	record.EmployeeId = employeeId
	id, err := s.repo.Store(ctx, record)
	if err != nil {
		return Record{}, err
	}
	record.Id = id
	return record, nil
}

func (s *ServiceImpl) Resolve(ctx context.Context, employeeId string, date time.Time) (Record, error) {
	history, err := s.repo.GetAllForEmployee(ctx, employeeId)
	if err != nil {
		return Record{}, err
	}
	ledger, err := NewLedgerFromHistory(history)
	if err != nil {
		return Record{}, fmt.Errorf("employee %s: %w", employeeId, err)
	}
	return ledger.Resolve(employeeId, date)
}

func (s *ServiceImpl) History(ctx context.Context, employeeId string) ([]Record, error) {
	return s.repo.GetAllForEmployee(ctx, employeeId)
}

// Snapshot loads all employees' records into a single ledger for batch
// costing. The snapshot is detached: writes after this call are not visible.
func (s *ServiceImpl) Snapshot(ctx context.Context) (*Ledger, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewLedgerFromHistory(records)
}
