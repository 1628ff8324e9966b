package project

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Project mirrors a project in the time-tracking system.
type Project struct {
	Id         string
	Name       string
	ClientName string
	Status     Status
}

// Directory is a lookup of projects by id, used by the costing engine.
type Directory map[string]Project
