package project

import (
	"context"
	"errors"
	"fmt"
)

var ErrProjectNotFound = errors.New("project not found")

type Service interface {
	Add(ctx context.Context, project Project) (Project, error)
	Get(ctx context.Context, id string) (Project, error)
	GetAll(ctx context.Context) ([]Project, error)
	Update(ctx context.Context, project Project) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Directory(ctx context.Context) (Directory, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) Add(ctx context.Context, project Project) (Project, error) {
	if project.Id == "" {
		return Project{}, fmt.Errorf("project id is required")
	}
	if project.Status == "" {
		project.Status = StatusActive
	}
	if err := s.repo.Store(ctx, project); err != nil {
		return Project{}, err
	}
	return project, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Project, error) {
	project, err := s.repo.FindById(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if project == nil {
		return Project{}, ErrProjectNotFound
	}
	return *project, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Project, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, project Project) (bool, error) {
	return s.repo.Update(ctx, project)
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// Directory loads all projects keyed by id for batch costing lookups.
func (s *ServiceImpl) Directory(ctx context.Context) (Directory, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	directory := make(Directory, len(projects))
	for _, p := range projects {
		directory[p.Id] = p
	}
	return directory, nil
}
