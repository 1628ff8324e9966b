package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/marginview/marginview/internal/config"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	tokenURL = "https://accounts.zoho.com/oauth/v2/token"
	baseURL  = "https://www.zohoapis.com/books/v3"
)

// Client reads revenue figures from Zoho Books. It satisfies
// report.RevenueSource.
type Client interface {
	ProjectRevenue(ctx context.Context, projectId string, start, end time.Time) (float64, error)
}

type ClientImpl struct {
	cfg         config.Zoho
	oauthConfig *oauth2.Config
}

// NewClient validates the OAuth2 credentials and returns a Zoho Books client.
// Requests authenticate with a self-refreshing token source built from the
// configured refresh token.
func NewClient(cfg config.Zoho) (*ClientImpl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ClientImpl{
		cfg: cfg,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientId,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		},
	}, nil
}

type invoicesResponse struct {
	Invoices    []invoice   `json:"invoices"`
	PageContext pageContext `json:"page_context"`
}

type invoice struct {
	InvoiceId string  `json:"invoice_id"`
	Total     float64 `json:"total"`
	Status    string  `json:"status"`
}

type pageContext struct {
	HasMorePage bool `json:"has_more_page"`
	Page        int  `json:"page"`
}

// ProjectRevenue sums the invoiced totals of a project over [start, end].
// Draft and voided invoices do not count as revenue.
func (c *ClientImpl) ProjectRevenue(ctx context.Context, projectId string, start, end time.Time) (float64, error) {
	httpClient := c.oauthConfig.Client(ctx, &oauth2.Token{RefreshToken: c.cfg.RefreshToken})

	total := 0.0
	page := 1
	for {
		response, err := c.getInvoices(ctx, httpClient, projectId, start, end, page)
		if err != nil {
			return 0, err
		}
		for _, inv := range response.Invoices {
			if inv.Status == "draft" || inv.Status == "void" {
				continue
			}
			total += inv.Total
		}
		if !response.PageContext.HasMorePage {
			break
		}
		page++
	}
	log.Debugf("Zoho revenue for project %s between %s and %s: %.2f",
		projectId, start.Format("2006-01-02"), end.Format("2006-01-02"), total)
	return total, nil
}

func (c *ClientImpl) getInvoices(ctx context.Context, httpClient *http.Client, projectId string, start, end time.Time, page int) (*invoicesResponse, error) {
	params := url.Values{}
	params.Set("organization_id", c.cfg.OrganizationId)
	params.Set("project_id", projectId)
	params.Set("date_start", start.Format("2006-01-02"))
	params.Set("date_end", end.Format("2006-01-02"))
	params.Set("page", fmt.Sprint(page))
	endpoint := fmt.Sprintf("%s/invoices?%s", baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("zoho API returned status %d", resp.StatusCode)
		log.Error(err)
		return nil, err
	}

	var response invoicesResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return nil, err
	}
	return &response, nil
}
