package repository

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/ports"
)

// ProjectRepositoryImpl implements the ProjectRepository interface
type ProjectRepositoryImpl struct {
	records *Collection[entities.Project]
}

// NewProjectCollection creates the collection backing projects
func NewProjectCollection(fs afero.Fs, path string, opts ...CollectionOption) *Collection[entities.Project] {
	return NewCollection(CollectionProjects, fs, path, func(p *entities.Project, id string) {
		p.ID = id
	}, opts...)
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(records *Collection[entities.Project]) ports.ProjectRepository {
	return &ProjectRepositoryImpl{records: records}
}

func (r *ProjectRepositoryImpl) List(ctx context.Context) []entities.Project {
	return r.records.All(ctx)
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Project, error) {
	project, found, err := r.records.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project by id: %w", err)
	}
	if !found {
		return nil, entities.ErrProjectNotFound
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	created, err := r.records.Insert(ctx, *project)
	if err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	*project = created
	return nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, id string, apply func(*entities.Project) error) (*entities.Project, error) {
	updated, found, err := r.records.Modify(ctx, id, apply)
	if err != nil {
		if entities.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update project: %w", err)
	}
	if !found {
		return nil, entities.ErrProjectNotFound
	}
	return &updated, nil
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id string) error {
	removed, err := r.records.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if !removed {
		return entities.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) Seed(ctx context.Context, projects []entities.Project) (bool, error) {
	seeded, err := r.records.Seed(ctx, projects)
	if err != nil {
		return false, fmt.Errorf("seed projects: %w", err)
	}
	return seeded, nil
}
