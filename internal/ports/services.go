package ports

import (
	"context"

	"github.com/learningjournal/core/internal/domain/entities"
)

// ReflectionService interface for journal reflection operations
type ReflectionService interface {
	ListReflections(ctx context.Context) []entities.Reflection
	GetReflection(ctx context.Context, id string) (*entities.Reflection, error)
	CreateReflection(ctx context.Context, req CreateReflectionRequest) (*entities.Reflection, error)
	UpdateReflection(ctx context.Context, id string, req UpdateReflectionRequest) (*entities.Reflection, error)
	DeleteReflection(ctx context.Context, id string) error
}

// ProjectService interface for portfolio project operations
type ProjectService interface {
	ListProjects(ctx context.Context) []entities.Project
	GetProject(ctx context.Context, id string) (*entities.Project, error)
	CreateProject(ctx context.Context, req CreateProjectRequest) (*entities.Project, error)
	UpdateProject(ctx context.Context, id string, req UpdateProjectRequest) (*entities.Project, error)
	DeleteProject(ctx context.Context, id string) error
}

// Request Types
//
// Create requests use pointers so that "required" means "present in the
// payload". Update requests use entities.Optional so absent, null and a
// value are told apart per field.

type CreateReflectionRequest struct {
	Name       *string `json:"name" validate:"required"`
	Reflection *string `json:"reflection" validate:"required"`
	Week       *int    `json:"week"`
}

type UpdateReflectionRequest struct {
	Name       entities.Optional[string] `json:"name"`
	Reflection entities.Optional[string] `json:"reflection"`
	Week       entities.Optional[int]    `json:"week"`
}

// Empty reports whether no updatable field was supplied
func (r UpdateReflectionRequest) Empty() bool {
	return !r.Name.Set && !r.Reflection.Set && !r.Week.Set
}

type CreateProjectRequest struct {
	Title        *string   `json:"title" validate:"required"`
	Description  *string   `json:"description" validate:"required"`
	Technologies *[]string `json:"technologies" validate:"required"`
	ImageURL     *string   `json:"imageUrl"`
	DemoURL      *string   `json:"demoUrl"`
	GithubURL    *string   `json:"githubUrl"`
	Date         *string   `json:"date" validate:"required"`
}

type UpdateProjectRequest struct {
	Title        entities.Optional[string]   `json:"title"`
	Description  entities.Optional[string]   `json:"description"`
	Technologies entities.Optional[[]string] `json:"technologies"`
	ImageURL     entities.Optional[string]   `json:"imageUrl"`
	DemoURL      entities.Optional[string]   `json:"demoUrl"`
	GithubURL    entities.Optional[string]   `json:"githubUrl"`
	Date         entities.Optional[string]   `json:"date"`
}

// Empty reports whether no updatable field was supplied
func (r UpdateProjectRequest) Empty() bool {
	return !r.Title.Set && !r.Description.Set && !r.Technologies.Set &&
		!r.ImageURL.Set && !r.DemoURL.Set && !r.GithubURL.Set && !r.Date.Set
}
