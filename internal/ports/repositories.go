package ports

import (
	"context"

	"github.com/learningjournal/core/internal/domain/entities"
)

// ReflectionRepository defines the interface for reflection data operations.
// Update runs apply inside the store's read-modify-write cycle; if apply
// returns an error nothing is persisted.
type ReflectionRepository interface {
	List(ctx context.Context) []entities.Reflection
	GetByID(ctx context.Context, id string) (*entities.Reflection, error)
	Create(ctx context.Context, reflection *entities.Reflection) error
	Update(ctx context.Context, id string, apply func(*entities.Reflection) error) (*entities.Reflection, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, reflections []entities.Reflection) (bool, error)
}

// ProjectRepository defines the interface for project data operations
type ProjectRepository interface {
	List(ctx context.Context) []entities.Project
	GetByID(ctx context.Context, id string) (*entities.Project, error)
	Create(ctx context.Context, project *entities.Project) error
	Update(ctx context.Context, id string, apply func(*entities.Project) error) (*entities.Project, error)
	Delete(ctx context.Context, id string) error
	Seed(ctx context.Context, projects []entities.Project) (bool, error)
}
