package report

import (
	"context"
	"time"

	"github.com/marginview/marginview/pkg/costing"
	log "github.com/sirupsen/logrus"
)

// RevenueSource supplies a project's revenue for a period from the external
// accounting system. The Zoho Books client satisfies it.
type RevenueSource interface {
	ProjectRevenue(ctx context.Context, projectId string, start, end time.Time) (float64, error)
}

type Service interface {
	// ProjectReport builds a profitability report for the project. When
	// revenue is nil, the figure is fetched from the configured revenue
	// source; a caller-supplied value always wins.
	ProjectReport(ctx context.Context, projectId string, start, end time.Time, revenue *float64) (ProjectProfitability, error)
	EmployeeReport(ctx context.Context, employeeId string, start, end time.Time) (EmployeeProfitability, error)
}

type ServiceImpl struct {
	repo    costing.Repository
	revenue RevenueSource
}

// NewService constructs the report service. revenue may be nil when no
// accounting integration is configured; reports then default to zero revenue
// unless the caller supplies one.
func NewService(repo costing.Repository, revenue RevenueSource) *ServiceImpl {
	return &ServiceImpl{repo: repo, revenue: revenue}
}

func (s *ServiceImpl) ProjectReport(ctx context.Context, projectId string, start, end time.Time, revenue *float64) (ProjectProfitability, error) {
	entries, err := s.repo.FindByProject(ctx, projectId, start, end)
	if err != nil {
		return ProjectProfitability{}, err
	}

	revenueFigure := 0.0
	switch {
	case revenue != nil:
		revenueFigure = *revenue
	case s.revenue != nil:
		fetched, err := s.revenue.ProjectRevenue(ctx, projectId, start, end)
		if err != nil {
			return ProjectProfitability{}, err
		}
		revenueFigure = fetched
	default:
		log.Debugf("no revenue supplied or configured for project %s, reporting with 0", projectId)
	}

	return ProjectReport(projectId, start, end, entries, revenueFigure), nil
}

func (s *ServiceImpl) EmployeeReport(ctx context.Context, employeeId string, start, end time.Time) (EmployeeProfitability, error) {
	entries, err := s.repo.FindByEmployee(ctx, employeeId, start, end)
	if err != nil {
		return EmployeeProfitability{}, err
	}
	return EmployeeReport(employeeId, start, end, entries), nil
}
