package zoho

import (
	"context"
	"time"
)

// StubClient is an in-memory revenue source for tests.
type StubClient struct {
	RevenueByProject map[string]float64
	Err              error
}

func NewStubClient() *StubClient {
	return &StubClient{RevenueByProject: make(map[string]float64)}
}

func (s *StubClient) ProjectRevenue(_ context.Context, projectId string, _, _ time.Time) (float64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	return s.RevenueByProject[projectId], nil
}
