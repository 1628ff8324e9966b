package report

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type EmployeeBreakdownDTO struct {
	EmployeeId    string  `json:"employeeId"`
	EmployeeName  string  `json:"employeeName"`
	Hours         float64 `json:"hours"`
	Cost          float64 `json:"cost"`
	BillableValue float64 `json:"billableValue"`
	Efficiency    float64 `json:"efficiency"`
}

type ProjectBreakdownDTO struct {
	ProjectId     string  `json:"projectId"`
	ProjectName   string  `json:"projectName"`
	Hours         float64 `json:"hours"`
	Cost          float64 `json:"cost"`
	BillableValue float64 `json:"billableValue"`
}

type MonthlyBreakdownDTO struct {
	Month   string  `json:"month"`
	Hours   float64 `json:"hours"`
	Cost    float64 `json:"cost"`
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

type ProjectReportDTO struct {
	ProjectId          string                 `json:"projectId"`
	ProjectName        string                 `json:"projectName"`
	StartDate          string                 `json:"startDate"`
	EndDate            string                 `json:"endDate"`
	Revenue            float64                `json:"revenue"`
	TotalHours         float64                `json:"totalHours"`
	TotalBillableHours float64                `json:"totalBillableHours"`
	TotalCost          float64                `json:"totalCost"`
	TotalBillableValue float64                `json:"totalBillableValue"`
	GrossProfit        float64                `json:"grossProfit"`
	ProfitMargin       float64                `json:"profitMargin"`
	AverageMultiplier  float64                `json:"averageMultiplier"`
	EmployeeBreakdown  []EmployeeBreakdownDTO `json:"employeeBreakdown"`
	MonthlyBreakdown   []MonthlyBreakdownDTO  `json:"monthlyBreakdown"`
}

type EmployeeReportDTO struct {
	EmployeeId         string                `json:"employeeId"`
	EmployeeName       string                `json:"employeeName"`
	StartDate          string                `json:"startDate"`
	EndDate            string                `json:"endDate"`
	TotalHours         float64               `json:"totalHours"`
	TotalBillableHours float64               `json:"totalBillableHours"`
	TotalCost          float64               `json:"totalCost"`
	TotalBillableValue float64               `json:"totalBillableValue"`
	Efficiency         float64               `json:"efficiency"`
	AverageHourlyRate  float64               `json:"averageHourlyRate"`
	ProjectBreakdown   []ProjectBreakdownDTO `json:"projectBreakdown"`
	MonthlyBreakdown   []MonthlyBreakdownDTO `json:"monthlyBreakdown"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service}
}

const dateFormat = "2006-01-02"

func (h *Handler) GetProjectReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	var revenue *float64
	if param := r.URL.Query().Get("revenue"); param != "" {
		value, err := strconv.ParseFloat(param, 64)
		if err != nil {
			http.Error(w, "Invalid revenue parameter", http.StatusBadRequest)
			return
		}
		revenue = &value
	}

	result, err := h.service.ProjectReport(r.Context(), vars["id"], start, end, revenue)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(projectReportToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetEmployeeReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)

	start, end, ok := parseRange(w, r)
	if !ok {
		return
	}

	result, err := h.service.EmployeeReport(r.Context(), vars["id"], start, end)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(employeeReportToDTO(result)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func parseRange(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	start, err := time.Parse(dateFormat, r.URL.Query().Get("startDate"))
	if err != nil {
		http.Error(w, "Invalid startDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(dateFormat, r.URL.Query().Get("endDate"))
	if err != nil {
		http.Error(w, "Invalid endDate, expected YYYY-MM-DD", http.StatusBadRequest)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

func projectReportToDTO(report ProjectProfitability) ProjectReportDTO {
	employees := make([]EmployeeBreakdownDTO, 0, len(report.EmployeeBreakdown))
	for _, b := range report.EmployeeBreakdown {
		employees = append(employees, EmployeeBreakdownDTO(b))
	}
	return ProjectReportDTO{
		ProjectId:          report.ProjectId,
		ProjectName:        report.ProjectName,
		StartDate:          report.StartDate.Format(dateFormat),
		EndDate:            report.EndDate.Format(dateFormat),
		Revenue:            report.Revenue,
		TotalHours:         report.TotalHours,
		TotalBillableHours: report.TotalBillableHours,
		TotalCost:          report.TotalCost,
		TotalBillableValue: report.TotalBillableValue,
		GrossProfit:        report.GrossProfit,
		ProfitMargin:       report.ProfitMargin,
		AverageMultiplier:  report.AverageMultiplier,
		EmployeeBreakdown:  employees,
		MonthlyBreakdown:   monthlyToDTO(report.MonthlyBreakdown),
	}
}

func employeeReportToDTO(report EmployeeProfitability) EmployeeReportDTO {
	projects := make([]ProjectBreakdownDTO, 0, len(report.ProjectBreakdown))
	for _, b := range report.ProjectBreakdown {
		projects = append(projects, ProjectBreakdownDTO(b))
	}
	return EmployeeReportDTO{
		EmployeeId:         report.EmployeeId,
		EmployeeName:       report.EmployeeName,
		StartDate:          report.StartDate.Format(dateFormat),
		EndDate:            report.EndDate.Format(dateFormat),
		TotalHours:         report.TotalHours,
		TotalBillableHours: report.TotalBillableHours,
		TotalCost:          report.TotalCost,
		TotalBillableValue: report.TotalBillableValue,
		Efficiency:         report.Efficiency,
		AverageHourlyRate:  report.AverageHourlyRate,
		ProjectBreakdown:   projects,
		MonthlyBreakdown:   monthlyToDTO(report.MonthlyBreakdown),
	}
}

func monthlyToDTO(breakdown []MonthlyBreakdown) []MonthlyBreakdownDTO {
	months := make([]MonthlyBreakdownDTO, 0, len(breakdown))
	for _, b := range breakdown {
		months = append(months, MonthlyBreakdownDTO(b))
	}
	return months
}
