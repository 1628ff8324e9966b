package employee

import "context"

type StubRepository struct {
	data map[string]Employee
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Employee{}}
}

func (s *StubRepository) Store(ctx context.Context, employee Employee) error {
	s.data[employee.Id] = employee
	return nil
}

func (s *StubRepository) FindById(ctx context.Context, id string) (*Employee, error) {
	employee, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &employee, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Employee, error) {
	employees := make([]Employee, 0, len(s.data))
	for _, employee := range s.data {
		employees = append(employees, employee)
	}
	return employees, nil
}

func (s *StubRepository) Update(ctx context.Context, employee Employee) (bool, error) {
	if _, ok := s.data[employee.Id]; !ok {
		return false, nil
	}
	s.data[employee.Id] = employee
	return true, nil
}

func (s *StubRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}

func (s *StubRepository) Cleanup() {
	s.data = map[string]Employee{}
}
