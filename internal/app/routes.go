package app

import (
	"github.com/gorilla/mux"
	"github.com/marginview/marginview/internal/config"
)

// RegisterRoutes registers all API endpoints. Integration routes are only
// registered when the corresponding client is configured.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Employees
	r.HandleFunc("/api/employee", deps.EmployeeHandler.Create).Methods("POST")
	r.HandleFunc("/api/employee", deps.EmployeeHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Get).Methods("GET")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/employee/{id}", deps.EmployeeHandler.Delete).Methods("DELETE")

	// Projects
	r.HandleFunc("/api/project", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/project", deps.ProjectHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/project/{id}", deps.ProjectHandler.Delete).Methods("DELETE")

	// Compensation ledger
	r.HandleFunc("/api/employee/{id}/compensation", deps.CompensationHandler.AddRecord).Methods("POST")
	r.HandleFunc("/api/employee/{id}/compensation", deps.CompensationHandler.GetHistory).Methods("GET")
	r.HandleFunc("/api/employee/{id}/compensation/rate", deps.CompensationHandler.GetRate).Queries("date", "{date}").Methods("GET")

	// Project multipliers
	r.HandleFunc("/api/project/{id}/multiplier", deps.MultiplierHandler.AddRecord).Methods("POST")
	r.HandleFunc("/api/project/{id}/multiplier", deps.MultiplierHandler.GetHistory).Methods("GET")
	r.HandleFunc("/api/project/{id}/multiplier/current", deps.MultiplierHandler.GetMultiplier).Queries("date", "{date}").Methods("GET")

	// Time entry import
	r.HandleFunc("/api/import/time-entries", deps.CostingHandler.ImportTimeEntries).Methods("POST")
	r.HandleFunc("/api/import/status", deps.CostingHandler.ImportStatus).Methods("GET")

	// Profitability reports
	r.HandleFunc("/api/report/project/{id}", deps.ReportHandler.GetProjectReport).Methods("GET")
	r.HandleFunc("/api/report/employee/{id}", deps.ReportHandler.GetEmployeeReport).Methods("GET")

	// Clockify integration
	if deps.ClockifyHandler != nil {
		r.HandleFunc("/api/integrations/clockify/sync-projects", deps.ClockifyHandler.SyncProjects).Methods("POST")
	}

	// BambooHR integration
	if deps.BambooHRHandler != nil {
		r.HandleFunc("/api/integrations/bamboohr/import", deps.BambooHRHandler.Import).Methods("POST")
	}

	// SurePayroll integration
	if deps.SurePayrollHandler != nil {
		r.HandleFunc("/api/integrations/surepayroll/import", deps.SurePayrollHandler.Import).Methods("POST")
	}
}
