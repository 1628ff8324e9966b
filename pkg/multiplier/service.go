package multiplier

import (
	"context"
	"fmt"
	"time"
)

type Service interface {
	AddRecord(ctx context.Context, projectId string, record Record) (Record, error)
	Resolve(ctx context.Context, projectId string, date time.Time) (float64, error)
	History(ctx context.Context, projectId string) ([]Record, error)
	Snapshot(ctx context.Context) (*Ledger, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) AddRecord(ctx context.Context, projectId string, record Record) (Record, error) {
	history, err := s.repo.GetAllForProject(ctx, projectId)
	if err != nil {
		return Record{}, err
	}
	ledger, err := NewLedgerFromHistory(history)
	if err != nil {
		return Record{}, fmt.Errorf("project %s: %w", projectId, err)
	}
	if err := ledger.Add(projectId, record); err != nil {
		return Record{}, err
	}

	record.ProjectId = projectId
	id, err := s.repo.Store(ctx, record)
	if err != nil {
		return Record{}, err
	}
	record.Id = id
	return record, nil
}

func (s *ServiceImpl) Resolve(ctx context.Context, projectId string, date time.Time) (float64, error) {
	history, err := s.repo.GetAllForProject(ctx, projectId)
	if err != nil {
		return 0, err
	}
	ledger, err := NewLedgerFromHistory(history)
	if err != nil {
		return 0, fmt.Errorf("project %s: %w", projectId, err)
	}
	return ledger.Resolve(projectId, date), nil
}

func (s *ServiceImpl) History(ctx context.Context, projectId string) ([]Record, error) {
	return s.repo.GetAllForProject(ctx, projectId)
}

// Snapshot loads all projects' records into a single ledger for batch costing.
func (s *ServiceImpl) Snapshot(ctx context.Context) (*Ledger, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return NewLedgerFromHistory(records)
}
