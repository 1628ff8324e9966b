package costing

import (
	"context"
	"time"
)

type StubRepository struct {
	nextId int
	data   []CostedTimeEntry
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) StoreBatch(ctx context.Context, entries []CostedTimeEntry) error {
	for _, entry := range entries {
		replaced := false
		for i := range s.data {
			if s.data[i].SourceEntryId == entry.SourceEntryId {
				entry.Id = s.data[i].Id
				s.data[i] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			s.nextId++
			entry.Id = s.nextId
			s.data = append(s.data, entry)
		}
	}
	return nil
}

func (s *StubRepository) FindByProject(ctx context.Context, projectId string, start, end time.Time) ([]CostedTimeEntry, error) {
	var entries []CostedTimeEntry
	for _, entry := range s.data {
		if entry.ProjectId == projectId && !entry.Date.Before(start) && !entry.Date.After(end) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *StubRepository) FindByEmployee(ctx context.Context, employeeId string, start, end time.Time) ([]CostedTimeEntry, error) {
	var entries []CostedTimeEntry
	for _, entry := range s.data {
		if entry.EmployeeId == employeeId && !entry.Date.Before(start) && !entry.Date.After(end) {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (s *StubRepository) All() []CostedTimeEntry {
	entries := make([]CostedTimeEntry, len(s.data))
	copy(entries, s.data)
	return entries
}

func (s *StubRepository) Cleanup() {
	s.data = nil
	s.nextId = 0
}
