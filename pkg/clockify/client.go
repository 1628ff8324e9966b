package clockify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/marginview/marginview/internal/config"
	"github.com/marginview/marginview/pkg/costing"
	"github.com/marginview/marginview/pkg/project"
	log "github.com/sirupsen/logrus"
)

const baseURL = "https://api.clockify.me/api/v1"

// Client fetches users, projects and time entries from the Clockify API.
type Client interface {
	GetTimeEntries(ctx context.Context, start, end time.Time) ([]costing.RawTimeEntry, error)
	GetProjects(ctx context.Context) ([]project.Project, error)
}

type ClientImpl struct {
	cfg        config.Clockify
	httpClient *http.Client
}

// NewClient validates the credentials and returns a Clockify API client.
func NewClient(cfg config.Clockify) (*ClientImpl, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ClientImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

type workspaceUser struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type timeInterval struct {
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end"`
	Duration string     `json:"duration"`
}

type timeEntry struct {
	Id           string       `json:"id"`
	UserId       string       `json:"userId"`
	ProjectId    string       `json:"projectId"`
	Billable     bool         `json:"billable"`
	Description  string       `json:"description"`
	Tags         []tag        `json:"tags"`
	TimeInterval timeInterval `json:"timeInterval"`
}

type tag struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

type clockifyProject struct {
	Id         string `json:"id"`
	Name       string `json:"name"`
	ClientName string `json:"clientName"`
	Archived   bool   `json:"archived"`
}

// GetTimeEntries fetches all time entries of all workspace users for the
// [start, end] window.
func (c *ClientImpl) GetTimeEntries(ctx context.Context, start, end time.Time) ([]costing.RawTimeEntry, error) {
	users, err := c.getUsers(ctx)
	if err != nil {
		return nil, err
	}

	var entries []costing.RawTimeEntry
	for _, user := range users {
		userEntries, err := c.getUserTimeEntries(ctx, user.Id, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch time entries for user %s: %w", user.Id, err)
		}
		entries = append(entries, userEntries...)
	}
	log.Debugf("Fetched %d Clockify time entries across %d users", len(entries), len(users))
	return entries, nil
}

func (c *ClientImpl) GetProjects(ctx context.Context) ([]project.Project, error) {
	endpoint := fmt.Sprintf("%s/workspaces/%s/projects", baseURL, c.cfg.WorkspaceId)
	var wireProjects []clockifyProject
	if err := c.get(ctx, endpoint, &wireProjects); err != nil {
		return nil, err
	}

	projects := make([]project.Project, 0, len(wireProjects))
	for _, p := range wireProjects {
		status := project.StatusActive
		if p.Archived {
			status = project.StatusArchived
		}
		projects = append(projects, project.Project{
			Id:         p.Id,
			Name:       p.Name,
			ClientName: p.ClientName,
			Status:     status,
		})
	}
	return projects, nil
}

func (c *ClientImpl) getUsers(ctx context.Context) ([]workspaceUser, error) {
	endpoint := fmt.Sprintf("%s/workspaces/%s/users", baseURL, c.cfg.WorkspaceId)
	var users []workspaceUser
	if err := c.get(ctx, endpoint, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *ClientImpl) getUserTimeEntries(ctx context.Context, userId string, start, end time.Time) ([]costing.RawTimeEntry, error) {
	params := url.Values{}
	params.Set("start", start.UTC().Format(time.RFC3339))
	params.Set("end", end.UTC().Format(time.RFC3339))
	params.Set("hydrated", "true")
	params.Set("page-size", "500")
	endpoint := fmt.Sprintf("%s/workspaces/%s/user/%s/time-entries?%s", baseURL, c.cfg.WorkspaceId, userId, params.Encode())

	var wireEntries []timeEntry
	if err := c.get(ctx, endpoint, &wireEntries); err != nil {
		return nil, err
	}

	entries := make([]costing.RawTimeEntry, 0, len(wireEntries))
	for _, e := range wireEntries {
		tags := make([]string, 0, len(e.Tags))
		for _, t := range e.Tags {
			tags = append(tags, t.Name)
		}
		var intervalEnd time.Time
		if e.TimeInterval.End != nil {
			intervalEnd = *e.TimeInterval.End
		}
		entries = append(entries, costing.RawTimeEntry{
			Id:          e.Id,
			UserId:      e.UserId,
			ProjectId:   e.ProjectId,
			Billable:    e.Billable,
			Description: e.Description,
			Tags:        tags,
			TimeInterval: costing.TimeInterval{
				Start:    e.TimeInterval.Start,
				End:      intervalEnd,
				Duration: e.TimeInterval.Duration,
			},
		})
	}
	return entries, nil
}

func (c *ClientImpl) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("X-Api-Key", c.cfg.ApiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Errorf("Failed to execute request: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("clockify API returned status %d for %s", resp.StatusCode, endpoint)
		log.Error(err)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return err
	}
	return nil
}
