package clockify

import (
	"context"
	"time"

	"github.com/marginview/marginview/pkg/costing"
	"github.com/marginview/marginview/pkg/project"
)

type StubClient struct {
	Entries  []costing.RawTimeEntry
	Projects []project.Project
	Err      error
}

func (s *StubClient) GetTimeEntries(ctx context.Context, start, end time.Time) ([]costing.RawTimeEntry, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var entries []costing.RawTimeEntry
	for _, entry := range s.Entries {
		if entry.TimeInterval.Start.Before(start) || entry.TimeInterval.Start.After(end) {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *StubClient) GetProjects(ctx context.Context) ([]project.Project, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Projects, nil
}
