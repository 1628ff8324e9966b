package compensation

import (
	"context"
	"sort"
)

type StubRepository struct {
	nextId int
	data   []Record
}

func NewStubRepository() *StubRepository {
	return &StubRepository{}
}

func (s *StubRepository) Store(ctx context.Context, record Record) (int, error) {
	if record.Open() {
		for i := range s.data {
			if s.data[i].EmployeeId == record.EmployeeId && s.data[i].Open() {
				s.data[i].EndDate = record.EffectiveDate
			}
		}
	}
	s.nextId++
	record.Id = s.nextId
	s.data = append(s.data, record)
	return record.Id, nil
}

func (s *StubRepository) GetAllForEmployee(ctx context.Context, employeeId string) ([]Record, error) {
	var records []Record
	for _, record := range s.data {
		if record.EmployeeId == employeeId {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].EffectiveDate.Before(records[j].EffectiveDate)
	})
	return records, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Record, error) {
	records := make([]Record, len(s.data))
	copy(records, s.data)
	return records, nil
}

func (s *StubRepository) Cleanup() {
	s.data = nil
	s.nextId = 0
}
