package clockify

import (
	"context"
	"errors"
	"testing"

	"github.com/marginview/marginview/pkg/project"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_SyncProjects(t *testing.T) {
	// given
	client := &StubClient{Projects: []project.Project{
		{Id: "proj-1", Name: "Platform Rebuild", ClientName: "Acme", Status: project.StatusActive},
		{Id: "proj-2", Name: "Mobile App", ClientName: "Globex", Status: project.StatusActive},
	}}
	projects := project.NewService(project.NewStubRepository())
	service := NewService(client, projects)
	ctx := context.Background()

	// when
	stored, err := service.SyncProjects(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, 2, stored)

	directory, err := projects.Directory(ctx)
	require.NoError(t, err)
	assert.Len(t, directory, 2)
	assert.Equal(t, "Platform Rebuild", directory["proj-1"].Name)
}

func TestServiceImpl_SyncProjects_IsIdempotent(t *testing.T) {
	// given a project already synced under an old name
	client := &StubClient{Projects: []project.Project{
		{Id: "proj-1", Name: "Platform Rebuild", Status: project.StatusActive},
	}}
	projects := project.NewService(project.NewStubRepository())
	service := NewService(client, projects)
	ctx := context.Background()
	_, err := service.SyncProjects(ctx)
	require.NoError(t, err)

	// when it is synced again with a rename
	client.Projects[0].Name = "Platform Rebuild v2"
	_, err = service.SyncProjects(ctx)
	require.NoError(t, err)

	// then the directory holds a single, renamed project
	all, err := projects.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Platform Rebuild v2", all[0].Name)
}

func TestServiceImpl_SyncProjects_ClientFailure(t *testing.T) {
	client := &StubClient{Err: errors.New("clockify unavailable")}
	service := NewService(client, project.NewService(project.NewStubRepository()))

	_, err := service.SyncProjects(context.Background())

	assert.ErrorContains(t, err, "clockify unavailable")
}
