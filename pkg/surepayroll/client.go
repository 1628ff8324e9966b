package surepayroll

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/marginview/marginview/internal/config"
	"github.com/marginview/marginview/pkg/compensation"
	log "github.com/sirupsen/logrus"
)

const baseURL = "https://api.surepayroll.com/v1"

// Client fetches current pay rates from SurePayroll. Unlike BambooHR, the
// SurePayroll feed carries one effective-dated rate per employee, not a full
// history.
type Client interface {
	GetPayRates(ctx context.Context) ([]compensation.Record, error)
}

type ClientImpl struct {
	cfg        config.SurePayroll
	httpClient *http.Client
}

// NewClient validates the credentials and returns a SurePayroll API client.
func NewClient(cfg config.SurePayroll) (*ClientImpl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ClientImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type payRate struct {
	EmployeeId    string  `json:"employeeId"`
	EffectiveDate string  `json:"effectiveDate"`
	AnnualSalary  float64 `json:"annualSalary"`
	HourlyRate    float64 `json:"hourlyRate"`
	Currency      string  `json:"currency"`
}

func (c *ClientImpl) GetPayRates(ctx context.Context) ([]compensation.Record, error) {
	endpoint := fmt.Sprintf("%s/accounts/%s/payrates", baseURL, c.cfg.AccountId)
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.ApiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("surepayroll API returned status %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var rates []payRate
	if err := json.NewDecoder(resp.Body).Decode(&rates); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, err
	}

	records := make([]compensation.Record, 0, len(rates))
	for _, rate := range rates {
		effectiveDate, err := time.Parse("2006-01-02", rate.EffectiveDate)
		if err != nil {
			log.Warnf("ignoring pay rate with unparseable effective date %q for employee %s", rate.EffectiveDate, rate.EmployeeId)
			continue
		}
		records = append(records, compensation.Record{
			EmployeeId:    rate.EmployeeId,
			EffectiveDate: effectiveDate,
			AnnualSalary:  rate.AnnualSalary,
			HourlyRate:    rate.HourlyRate,
			Currency:      rate.Currency,
			Notes:         "imported from SurePayroll",
		})
	}
	return records, nil
}
