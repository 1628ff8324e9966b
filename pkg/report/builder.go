package report

import (
	"sort"
	"time"

	"github.com/marginview/marginview/pkg/costing"
)

// UnknownProject is the project name reported when the period contains no
// matching entries.
const UnknownProject = "Unknown Project"

// UnknownEmployee is the employee counterpart of UnknownProject.
const UnknownEmployee = "Unknown Employee"

// ProjectReport aggregates costed entries for one project over [start, end]
// (inclusive both ends) against a caller-supplied revenue figure.
//
// AverageMultiplier and the per-employee Efficiency use only the first
// matching entry's hourly rate as a stand-in for the whole set. That is wrong
// whenever employees bill at different rates; it is reproduced here for
// parity with the dashboard's historical numbers and must not be "fixed"
// without migrating stored reports downstream.
func ProjectReport(projectId string, start, end time.Time, entries []costing.CostedTimeEntry, revenue float64) ProjectProfitability {
	filtered := filter(entries, start, end, func(e costing.CostedTimeEntry) bool {
		return e.ProjectId == projectId
	})

	result := ProjectProfitability{
		ProjectId:   projectId,
		ProjectName: UnknownProject,
		StartDate:   start,
		EndDate:     end,
		Revenue:     revenue,
	}
	if len(filtered) > 0 {
		result.ProjectName = filtered[0].ProjectName
	}

	for _, entry := range filtered {
		result.TotalHours += entry.Hours
		result.TotalBillableHours += entry.BillableHours
		result.TotalCost += entry.TotalCost
		result.TotalBillableValue += entry.BillableValue
	}

	result.GrossProfit = revenue - result.TotalCost
	if revenue > 0 {
		result.ProfitMargin = result.GrossProfit / revenue * 100
	}
	if result.TotalBillableHours > 0 {
		// First-entry rate as a stand-in for the whole project, see above.
		rate := filtered[0].HourlyRate
		if denominator := result.TotalBillableHours * rate; denominator > 0 {
			result.AverageMultiplier = result.TotalBillableValue / denominator
		}
	}

	result.EmployeeBreakdown = employeeBreakdown(filtered)
	result.MonthlyBreakdown = monthlyBreakdown(filtered)
	return result
}

// EmployeeReport aggregates costed entries for one employee over [start, end]
// (inclusive both ends), broken down by project.
func EmployeeReport(employeeId string, start, end time.Time, entries []costing.CostedTimeEntry) EmployeeProfitability {
	filtered := filter(entries, start, end, func(e costing.CostedTimeEntry) bool {
		return e.EmployeeId == employeeId
	})

	result := EmployeeProfitability{
		EmployeeId:   employeeId,
		EmployeeName: UnknownEmployee,
		StartDate:    start,
		EndDate:      end,
	}
	if len(filtered) > 0 {
		result.EmployeeName = filtered[0].EmployeeName
	}

	for _, entry := range filtered {
		result.TotalHours += entry.Hours
		result.TotalBillableHours += entry.BillableHours
		result.TotalCost += entry.TotalCost
		result.TotalBillableValue += entry.BillableValue
	}

	if result.TotalHours > 0 {
		result.Efficiency = result.TotalBillableHours / result.TotalHours
		result.AverageHourlyRate = result.TotalCost / result.TotalHours
	}

	result.ProjectBreakdown = projectBreakdown(filtered)
	result.MonthlyBreakdown = monthlyBreakdown(filtered)
	return result
}

func filter(entries []costing.CostedTimeEntry, start, end time.Time, match func(costing.CostedTimeEntry) bool) []costing.CostedTimeEntry {
	filtered := make([]costing.CostedTimeEntry, 0, len(entries))
	for _, entry := range entries {
		if !match(entry) {
			continue
		}
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}
		filtered = append(filtered, entry)
	}
	return filtered
}

func employeeBreakdown(entries []costing.CostedTimeEntry) []EmployeeBreakdown {
	var order []string
	groups := map[string]*EmployeeBreakdown{}
	rates := map[string]float64{}
	for _, entry := range entries {
		group, ok := groups[entry.EmployeeId]
		if !ok {
			group = &EmployeeBreakdown{EmployeeId: entry.EmployeeId, EmployeeName: entry.EmployeeName}
			groups[entry.EmployeeId] = group
			order = append(order, entry.EmployeeId)
			// Group's first entry rate stands in for the whole group.
			rates[entry.EmployeeId] = entry.HourlyRate
		}
		group.Hours += entry.Hours
		group.Cost += entry.TotalCost
		group.BillableValue += entry.BillableValue
	}

	breakdown := make([]EmployeeBreakdown, 0, len(order))
	for _, employeeId := range order {
		group := groups[employeeId]
		if denominator := group.Hours * rates[employeeId]; denominator > 0 {
			group.Efficiency = group.BillableValue / denominator
		}
		breakdown = append(breakdown, *group)
	}
	return breakdown
}

func projectBreakdown(entries []costing.CostedTimeEntry) []ProjectBreakdown {
	var order []string
	groups := map[string]*ProjectBreakdown{}
	for _, entry := range entries {
		group, ok := groups[entry.ProjectId]
		if !ok {
			group = &ProjectBreakdown{ProjectId: entry.ProjectId, ProjectName: entry.ProjectName}
			groups[entry.ProjectId] = group
			order = append(order, entry.ProjectId)
		}
		group.Hours += entry.Hours
		group.Cost += entry.TotalCost
		group.BillableValue += entry.BillableValue
	}

	breakdown := make([]ProjectBreakdown, 0, len(order))
	for _, projectId := range order {
		breakdown = append(breakdown, *groups[projectId])
	}
	return breakdown
}

func monthlyBreakdown(entries []costing.CostedTimeEntry) []MonthlyBreakdown {
	groups := map[string]*MonthlyBreakdown{}
	for _, entry := range entries {
		month := entry.Date.Format("2006-01")
		group, ok := groups[month]
		if !ok {
			group = &MonthlyBreakdown{Month: month}
			groups[month] = group
		}
		group.Hours += entry.Hours
		group.Cost += entry.TotalCost
	}

	months := make([]string, 0, len(groups))
	for month := range groups {
		months = append(months, month)
	}
	sort.Strings(months)

	breakdown := make([]MonthlyBreakdown, 0, len(months))
	for _, month := range months {
		breakdown = append(breakdown, *groups[month])
	}
	return breakdown
}
