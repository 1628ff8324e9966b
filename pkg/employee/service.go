package employee

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrEmployeeNotFound = errors.New("employee not found")

type Service interface {
	Add(ctx context.Context, employee Employee) (Employee, error)
	Get(ctx context.Context, id string) (Employee, error)
	GetAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, employee Employee) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Directory(ctx context.Context) (Directory, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

// Add stores an employee, upserting on id so that repeated imports from the
// payroll system are idempotent.
func (s *ServiceImpl) Add(ctx context.Context, employee Employee) (Employee, error) {
	if employee.Id == "" {
		return Employee{}, fmt.Errorf("employee id is required")
	}
	if employee.Status == "" {
		employee.Status = StatusActive
	}
	if err := s.repo.Store(ctx, employee); err != nil {
		return Employee{}, err
	}
	return employee, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Employee, error) {
	employee, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Employee{}, err
	}
	if employee == nil {
		return Employee{}, ErrEmployeeNotFound
	}
	return *employee, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Employee, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, employee Employee) (bool, error) {
	updated, err := s.repo.Update(ctx, employee)
	if err != nil {
		return false, err
	}
	if !updated {
		log.Warnf("employee not updated, probably because it does not exist (%s)", employee.Id)
		return false, nil
	}
	return true, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Directory loads all employees keyed by id for batch costing lookups.
func (s *ServiceImpl) Directory(ctx context.Context) (Directory, error) {
	employees, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	directory := make(Directory, len(employees))
	for _, e := range employees {
		directory[e.Id] = e
	}
	return directory, nil
}
