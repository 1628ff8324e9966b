package bamboohr

import (
	"context"

	"github.com/marginview/marginview/pkg/compensation"
	"github.com/marginview/marginview/pkg/employee"
)

type StubClient struct {
	Employees []employee.Employee
	Records   map[string][]compensation.Record
	Err       error
}

func (s *StubClient) GetEmployees(ctx context.Context) ([]employee.Employee, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Employees, nil
}

func (s *StubClient) GetCompensationRecords(ctx context.Context, employeeId string) ([]compensation.Record, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Records[employeeId], nil
}
