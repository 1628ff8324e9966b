package clockify

import (
	"context"

	"github.com/marginview/marginview/pkg/project"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// SyncProjects upserts the workspace's Clockify projects into the local
	// project directory and returns how many were stored.
	SyncProjects(ctx context.Context) (int, error)
}

type ServiceImpl struct {
	client   Client
	projects project.Service
}

func NewService(client Client, projects project.Service) *ServiceImpl {
	return &ServiceImpl{client: client, projects: projects}
}

func (s *ServiceImpl) SyncProjects(ctx context.Context) (int, error) {
	remote, err := s.client.GetProjects(ctx)
	if err != nil {
		return 0, err
	}

	stored := 0
	for _, p := range remote {
		if _, err := s.projects.Add(ctx, p); err != nil {
			log.Warnf("failed to store project %s (%s): %v", p.Name, p.Id, err)
			continue
		}
		stored++
	}
	log.Infof("Synced %d of %d Clockify projects", stored, len(remote))
	return stored, nil
}
