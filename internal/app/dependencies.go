package app

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/marginview/marginview/internal/config"
	"github.com/marginview/marginview/internal/event_bus"
	"github.com/marginview/marginview/internal/utils"
	"github.com/marginview/marginview/pkg/bamboohr"
	"github.com/marginview/marginview/pkg/clockify"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/costing"
	"github.com/marginview/marginview/pkg/employee"
	"github.com/marginview/marginview/pkg/multiplier"
	"github.com/marginview/marginview/pkg/project"
	"github.com/marginview/marginview/pkg/report"
	"github.com/marginview/marginview/pkg/surepayroll"
	"github.com/marginview/marginview/pkg/zoho"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	EmployeeRepo    employee.Repository
	EmployeeService employee.Service
	EmployeeHandler *employee.Handler

	ProjectRepo    project.Repository
	ProjectService project.Service
	ProjectHandler *project.Handler

	CompensationRepo    compensation.Repository
	CompensationService compensation.Service
	CompensationHandler *compensation.Handler

	MultiplierRepo    multiplier.Repository
	MultiplierService multiplier.Service
	MultiplierHandler *multiplier.Handler

	CostingRepo    costing.Repository
	ImportService  costing.ImportService
	CostingHandler *costing.Handler

	ReportService report.Service
	ReportHandler *report.Handler

	ClockifyClient  clockify.Client
	ClockifyService clockify.Service
	ClockifyHandler *clockify.Handler

	BambooHRClient  bamboohr.Client
	BambooHRService bamboohr.Service
	BambooHRHandler *bamboohr.Handler

	SurePayrollClient  surepayroll.Client
	SurePayrollService surepayroll.Service
	SurePayrollHandler *surepayroll.Handler

	ZohoClient zoho.Client

	Clock utils.Clock
}

// unconfiguredSource stands in for the time-tracking source when its
// credentials are missing, so that inline imports keep working.
type unconfiguredSource struct {
	err error
}

func (u unconfiguredSource) GetTimeEntries(context.Context, time.Time, time.Time) ([]costing.RawTimeEntry, error) {
	return nil, u.err
}

// BuildDependencies initializes and wires all application services and handlers.
// Integration clients whose credentials are not configured are left nil; their
// routes are simply not registered.
func BuildDependencies(db *sql.DB, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.EmployeeRepo = employee.NewRepository(db)
	deps.EmployeeService = employee.NewService(deps.EmployeeRepo)
	deps.EmployeeHandler = employee.NewHandler(deps.EmployeeService)

	deps.ProjectRepo = project.NewRepository(db)
	deps.ProjectService = project.NewService(deps.ProjectRepo)
	deps.ProjectHandler = project.NewHandler(deps.ProjectService)

	deps.CompensationRepo = compensation.NewRepository(db)
	deps.CompensationService = compensation.NewService(deps.CompensationRepo)
	deps.CompensationHandler = compensation.NewHandler(deps.CompensationService)

	deps.MultiplierRepo = multiplier.NewRepository(db)
	deps.MultiplierService = multiplier.NewService(deps.MultiplierRepo)
	deps.MultiplierHandler = multiplier.NewHandler(deps.MultiplierService)

	var source costing.TimeEntrySource
	if clockifyClient, err := clockify.NewClient(cfg.Clockify); err != nil {
		log.Warnf("Clockify integration disabled: %v", err)
		source = unconfiguredSource{err: errors.New("clockify integration is not configured")}
	} else {
		deps.ClockifyClient = clockifyClient
		deps.ClockifyService = clockify.NewService(clockifyClient, deps.ProjectService)
		deps.ClockifyHandler = clockify.NewHandler(deps.ClockifyService)
		source = clockifyClient
	}

	deps.CostingRepo = costing.NewRepository(db)
	deps.ImportService = costing.NewImportService(
		source,
		deps.EmployeeService,
		deps.ProjectService,
		deps.CompensationService,
		deps.MultiplierService,
		deps.CostingRepo,
		deps.EventBus,
		deps.Clock,
	)
	deps.CostingHandler = costing.NewHandler(deps.ImportService)

	if bambooClient, err := bamboohr.NewClient(cfg.BambooHR); err != nil {
		log.Warnf("BambooHR integration disabled: %v", err)
	} else {
		deps.BambooHRClient = bambooClient
		deps.BambooHRService = bamboohr.NewService(bambooClient, deps.EmployeeService, deps.CompensationService, deps.EventBus, deps.Clock)
		deps.BambooHRHandler = bamboohr.NewHandler(deps.BambooHRService)
	}

	if payrollClient, err := surepayroll.NewClient(cfg.SurePayroll); err != nil {
		log.Warnf("SurePayroll integration disabled: %v", err)
	} else {
		deps.SurePayrollClient = payrollClient
		deps.SurePayrollService = surepayroll.NewService(payrollClient, deps.CompensationService, deps.EventBus, deps.Clock)
		deps.SurePayrollHandler = surepayroll.NewHandler(deps.SurePayrollService)
	}

	var revenue report.RevenueSource
	if zohoClient, err := zoho.NewClient(cfg.Zoho); err != nil {
		log.Warnf("Zoho integration disabled: %v", err)
	} else {
		deps.ZohoClient = zohoClient
		revenue = zohoClient
	}

	deps.ReportService = report.NewService(deps.CostingRepo, revenue)
	deps.ReportHandler = report.NewHandler(deps.ReportService)

	event_bus.SubscribeTyped(deps.EventBus, event_bus.TimeEntriesImported, func(e event_bus.EventT[event_bus.ImportCompleted]) error {
		log.Infof("Import %s from %s finished: %d imported, %d skipped, total cost %.2f",
			e.Data.BatchId, e.Data.Source, e.Data.RecordsImported, e.Data.RecordsSkipped, e.Data.TotalCost)
		return nil
	})
	event_bus.SubscribeTyped(deps.EventBus, event_bus.CompensationImported, func(e event_bus.EventT[event_bus.ImportCompleted]) error {
		log.Infof("Compensation import %s from %s finished: %d imported, %d skipped",
			e.Data.BatchId, e.Data.Source, e.Data.RecordsImported, e.Data.RecordsSkipped)
		return nil
	})

	return deps
}
