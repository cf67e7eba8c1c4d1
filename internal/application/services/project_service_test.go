package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

func newTestProjectService(t *testing.T) *ProjectService {
	t.Helper()
	repos, _ := newTestRepos(t)
	return NewProjectService(repos.Projects, NewValidator(), logger.NewNop())
}

func validProjectRequest() ports.CreateProjectRequest {
	technologies := []string{"Go", "Echo"}
	return ports.CreateProjectRequest{
		Title:        strPtr("Journal"),
		Description:  strPtr("A learning journal"),
		Technologies: &technologies,
		Date:         strPtr("Feb 2025"),
	}
}

func TestCreateProject(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	req := validProjectRequest()
	req.GithubURL = strPtr("https://example.com/journal")

	created, err := svc.CreateProject(ctx, req)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Journal", created.Title)
	assert.Equal(t, []string{"Go", "Echo"}, created.Technologies)
	assert.Nil(t, created.ImageURL)
	assert.Nil(t, created.DemoURL)
	require.NotNil(t, created.GithubURL)
	assert.Equal(t, "https://example.com/journal", *created.GithubURL)

	list := svc.ListProjects(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, *created, list[0])
}

func TestCreateProjectValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *ports.CreateProjectRequest)
		message string
	}{
		{"missing title", func(r *ports.CreateProjectRequest) { r.Title = nil }, "Missing required field: title"},
		{"missing description", func(r *ports.CreateProjectRequest) { r.Description = nil }, "Missing required field: description"},
		{"missing technologies", func(r *ports.CreateProjectRequest) { r.Technologies = nil }, "Missing required field: technologies"},
		{"missing date", func(r *ports.CreateProjectRequest) { r.Date = nil }, "Missing required field: date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestProjectService(t)
			req := validProjectRequest()
			tt.mutate(&req)

			_, err := svc.CreateProject(context.Background(), req)
			require.Error(t, err)
			assert.True(t, entities.IsValidation(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestUpdateProject(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	req := validProjectRequest()
	req.DemoURL = strPtr("/demo")
	created, err := svc.CreateProject(ctx, req)
	require.NoError(t, err)

	var update ports.UpdateProjectRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title": "Renamed", "demoUrl": null, "imageUrl": "/img.png", "technologies": []}`), &update))

	updated, err := svc.UpdateProject(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "A learning journal", updated.Description)
	assert.Equal(t, []string{}, updated.Technologies)
	assert.Nil(t, updated.DemoURL)
	require.NotNil(t, updated.ImageURL)
	assert.Equal(t, "/img.png", *updated.ImageURL)
	assert.Equal(t, "Feb 2025", updated.Date)
}

func TestUpdateProjectErrors(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, validProjectRequest())
	require.NoError(t, err)

	_, err = svc.UpdateProject(ctx, created.ID, ports.UpdateProjectRequest{})
	assert.Equal(t, entities.ErrNoData, err)

	_, err = svc.UpdateProject(ctx, created.ID, ports.UpdateProjectRequest{Technologies: entities.Null[[]string]()})
	require.Error(t, err)
	assert.Equal(t, "Field technologies cannot be null", err.Error())

	_, err = svc.UpdateProject(ctx, "missing", ports.UpdateProjectRequest{Title: entities.Some("x")})
	assert.True(t, errors.Is(err, entities.ErrProjectNotFound))

	stored, err := svc.GetProject(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
}

func TestDeleteProject(t *testing.T) {
	svc := newTestProjectService(t)
	ctx := context.Background()

	first, err := svc.CreateProject(ctx, validProjectRequest())
	require.NoError(t, err)
	second, err := svc.CreateProject(ctx, validProjectRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProject(ctx, first.ID))

	list := svc.ListProjects(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	err = svc.DeleteProject(ctx, first.ID)
	assert.True(t, errors.Is(err, entities.ErrProjectNotFound))
}
