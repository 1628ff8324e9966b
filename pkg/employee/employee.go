package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Employee is a person imported from a payroll system. The Id is the
// identifier of the source system so that time entries can be matched back.
type Employee struct {
	Id         string
	Name       string
	Email      string
	Status     Status
	Department string
	Position   string
	// HireDate and TerminationDate are optional; the zero value means absent.
	HireDate        time.Time
	TerminationDate time.Time
}

// Directory is a lookup of employees by id, used by the costing engine.
type Directory map[string]Employee
