package report

import "time"

// EmployeeBreakdown is one employee's share of a project report.
type EmployeeBreakdown struct {
	EmployeeId    string
	EmployeeName  string
	Hours         float64
	Cost          float64
	BillableValue float64
	Efficiency    float64
}

// ProjectBreakdown is one project's share of an employee report.
type ProjectBreakdown struct {
	ProjectId     string
	ProjectName   string
	Hours         float64
	Cost          float64
	BillableValue float64
}

// MonthlyBreakdown aggregates hours and cost per calendar month (YYYY-MM).
// Revenue and Profit are always zero: no revenue-allocation-by-month model
// exists, the fields are placeholders for the dashboard.
type MonthlyBreakdown struct {
	Month   string
	Hours   float64
	Cost    float64
	Revenue float64
	Profit  float64
}

// ProjectProfitability is a derived, read-only aggregate for one project over
// a period. It is always recomputed from costed entries plus a caller-supplied
// revenue figure; it is never stored as authoritative state.
type ProjectProfitability struct {
	ProjectId          string
	ProjectName        string
	StartDate          time.Time
	EndDate            time.Time
	Revenue            float64
	TotalHours         float64
	TotalBillableHours float64
	TotalCost          float64
	TotalBillableValue float64
	GrossProfit        float64
	ProfitMargin       float64
	AverageMultiplier  float64
	EmployeeBreakdown  []EmployeeBreakdown
	MonthlyBreakdown   []MonthlyBreakdown
}

// EmployeeProfitability is the per-employee counterpart, broken down by
// project instead of employee.
type EmployeeProfitability struct {
	EmployeeId         string
	EmployeeName       string
	StartDate          time.Time
	EndDate            time.Time
	TotalHours         float64
	TotalBillableHours float64
	TotalCost          float64
	TotalBillableValue float64
	Efficiency         float64
	AverageHourlyRate  float64
	ProjectBreakdown   []ProjectBreakdown
	MonthlyBreakdown   []MonthlyBreakdown
}
