package services

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

// ProjectService handles portfolio project operations
type ProjectService struct {
	projectRepo ports.ProjectRepository
	validate    *validator.Validate
	logger      *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository, validate *validator.Validate, logger *logger.Logger) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		validate:    validate,
		logger:      logger.WithComponent("project_service"),
	}
}

// ListProjects returns every project in insertion order
func (s *ProjectService) ListProjects(ctx context.Context) []entities.Project {
	return s.projectRepo.List(ctx)
}

// GetProject retrieves a project by ID
func (s *ProjectService) GetProject(ctx context.Context, id string) (*entities.Project, error) {
	return s.projectRepo.GetByID(ctx, id)
}

// CreateProject creates a new project; omitted links default to null
func (s *ProjectService) CreateProject(ctx context.Context, req ports.CreateProjectRequest) (*entities.Project, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	technologies := *req.Technologies
	if technologies == nil {
		technologies = []string{}
	}

	project := &entities.Project{
		Title:        *req.Title,
		Description:  *req.Description,
		Technologies: technologies,
		ImageURL:     req.ImageURL,
		DemoURL:      req.DemoURL,
		GithubURL:    req.GithubURL,
		Date:         *req.Date,
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logger.LogRecordChange("projects", "create", project.ID)
	return project, nil
}

// UpdateProject merges the supplied fields onto an existing project
func (s *ProjectService) UpdateProject(ctx context.Context, id string, req ports.UpdateProjectRequest) (*entities.Project, error) {
	if req.Empty() {
		return nil, entities.ErrNoData
	}

	project, err := s.projectRepo.Update(ctx, id, func(p *entities.Project) error {
		return mergeProject(p, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogRecordChange("projects", "update", project.ID)
	return project, nil
}

// DeleteProject removes a project
func (s *ProjectService) DeleteProject(ctx context.Context, id string) error {
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.LogRecordChange("projects", "delete", id)
	return nil
}
