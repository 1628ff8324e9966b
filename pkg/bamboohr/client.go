package bamboohr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/marginview/marginview/internal/config"
	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
	log "github.com/sirupsen/logrus"
)

const baseURLPattern = "https://api.bamboohr.com/api/gateway.php/%s/v1"

// hoursPerYear is the conventional full-time hour count used to convert
// between annual and hourly compensation figures.
const hoursPerYear = 2080

// Client fetches employees and their compensation history from BambooHR.
type Client interface {
	GetEmployees(ctx context.Context) ([]employee.Employee, error)
	GetCompensationRecords(ctx context.Context, employeeId string) ([]compensation.Record, error)
}

type ClientImpl struct {
	cfg        config.BambooHR
	httpClient *http.Client
}

// NewClient validates the credentials and returns a BambooHR API client.
func NewClient(cfg config.BambooHR) (*ClientImpl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ClientImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type directoryResponse struct {
	Employees []directoryEmployee `json:"employees"`
}

type directoryEmployee struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName"`
	WorkEmail   string `json:"workEmail"`
	Department  string `json:"department"`
	JobTitle    string `json:"jobTitle"`
	Status      string `json:"status"`
	HireDate    string `json:"hireDate"`
}

type compensationRow struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Rate      string `json:"rate"`
	Currency  string `json:"currency"`
	PaidPer   string `json:"paidPer"`
	Comment   string `json:"comment"`
}

func (c *ClientImpl) GetEmployees(ctx context.Context) ([]employee.Employee, error) {
	endpoint := fmt.Sprintf(baseURLPattern+"/employees/directory", c.cfg.Subdomain)
	var response directoryResponse
	if err := c.get(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, 0, len(response.Employees))
	for _, e := range response.Employees {
		status := employee.StatusActive
		if e.Status == "Inactive" {
			status = employee.StatusInactive
		}
		var hireDate time.Time
		if e.HireDate != "" {
			parsed, err := time.Parse("2006-01-02", e.HireDate)
			if err != nil {
				log.Warnf("ignoring unparseable hire date %q for employee %s", e.HireDate, e.Id)
			} else {
				hireDate = parsed
			}
		}
		employees = append(employees, employee.Employee{
			Id:         e.Id,
			Name:       e.DisplayName,
			Email:      e.WorkEmail,
			Status:     status,
			Department: e.Department,
			Position:   e.JobTitle,
			HireDate:   hireDate,
		})
	}
	return employees, nil
}

func (c *ClientImpl) GetCompensationRecords(ctx context.Context, employeeId string) ([]compensation.Record, error) {
	endpoint := fmt.Sprintf(baseURLPattern+"/employees/%s/tables/compensation", c.cfg.Subdomain, employeeId)
	var rows []compensationRow
	if err := c.get(ctx, endpoint, &rows); err != nil {
		return nil, err
	}

	records := make([]compensation.Record, 0, len(rows))
	for _, row := range rows {
		record, err := rowToRecord(employeeId, row)
		if err != nil {
			log.Warnf("ignoring compensation row for employee %s: %v", employeeId, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

func rowToRecord(employeeId string, row compensationRow) (compensation.Record, error) {
	effectiveDate, err := time.Parse("2006-01-02", row.StartDate)
	if err != nil {
		return compensation.Record{}, fmt.Errorf("unparseable start date %q", row.StartDate)
	}
	var endDate time.Time
	if row.EndDate != "" {
		endDate, err = time.Parse("2006-01-02", row.EndDate)
		if err != nil {
			return compensation.Record{}, fmt.Errorf("unparseable end date %q", row.EndDate)
		}
	}
	amount, err := strconv.ParseFloat(row.Rate, 64)
	if err != nil {
		return compensation.Record{}, fmt.Errorf("unparseable rate %q", row.Rate)
	}

	var annualSalary, hourlyRate float64
	switch row.PaidPer {
	case "Hour":
		hourlyRate = amount
		annualSalary = amount * hoursPerYear
	default: // BambooHR reports "Year" for salaried employees
		annualSalary = amount
		hourlyRate = amount / hoursPerYear
	}

	return compensation.Record{
		EmployeeId:    employeeId,
		EffectiveDate: effectiveDate,
		EndDate:       endDate,
		AnnualSalary:  annualSalary,
		HourlyRate:    hourlyRate,
		Currency:      row.Currency,
		Notes:         row.Comment,
	}, nil
}

func (c *ClientImpl) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	// BambooHR uses the API key as the basic auth username.
	req.SetBasicAuth(c.cfg.ApiKey, "x")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("bamboohr API returned status %d for %s", resp.StatusCode, endpoint)
		log.Error(err)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return err
	}
	return nil
}
