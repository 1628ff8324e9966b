package project

import "context"

type StubRepository struct {
	data map[string]Project
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Project{}}
}

func (s *StubRepository) Store(ctx context.Context, project Project) error {
	s.data[project.Id] = project
	return nil
}

func (s *StubRepository) FindById(ctx context.Context, id string) (*Project, error) {
	project, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	return &project, nil
}

func (s *StubRepository) GetAll(ctx context.Context) ([]Project, error) {
	projects := make([]Project, 0, len(s.data))
	for _, project := range s.data {
		projects = append(projects, project)
	}
	return projects, nil
}

func (s *StubRepository) Update(ctx context.Context, project Project) (bool, error) {
	if _, ok := s.data[project.Id]; !ok {
		return false, nil
	}
	s.data[project.Id] = project
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
	s.data = map[string]Project{}
}
