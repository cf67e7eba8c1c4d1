package repository

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/ports"
)

// ReflectionRepositoryImpl implements the ReflectionRepository interface
type ReflectionRepositoryImpl struct {
	records *Collection[entities.Reflection]
}

// NewReflectionCollection creates the collection backing reflections
func NewReflectionCollection(fs afero.Fs, path string, opts ...CollectionOption) *Collection[entities.Reflection] {
	return NewCollection(CollectionReflections, fs, path, func(r *entities.Reflection, id string) {
		r.ID = id
	}, opts...)
}

// NewReflectionRepository creates a new reflection repository
func NewReflectionRepository(records *Collection[entities.Reflection]) ports.ReflectionRepository {
	return &ReflectionRepositoryImpl{records: records}
}

func (r *ReflectionRepositoryImpl) List(ctx context.Context) []entities.Reflection {
	return r.records.All(ctx)
}

func (r *ReflectionRepositoryImpl) GetByID(ctx context.Context, id string) (*entities.Reflection, error) {
	reflection, found, err := r.records.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reflection by id: %w", err)
	}
	if !found {
		return nil, entities.ErrReflectionNotFound
	}
	return &reflection, nil
}

func (r *ReflectionRepositoryImpl) Create(ctx context.Context, reflection *entities.Reflection) error {
	created, err := r.records.Insert(ctx, *reflection)
	if err != nil {
		return fmt.Errorf("create reflection: %w", err)
	}
	*reflection = created
	return nil
}

func (r *ReflectionRepositoryImpl) Update(ctx context.Context, id string, apply func(*entities.Reflection) error) (*entities.Reflection, error) {
	updated, found, err := r.records.Modify(ctx, id, apply)
	if err != nil {
		if entities.IsValidation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("update reflection: %w", err)
	}
	if !found {
		return nil, entities.ErrReflectionNotFound
	}
	return &updated, nil
}

func (r *ReflectionRepositoryImpl) Delete(ctx context.Context, id string) error {
	removed, err := r.records.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("delete reflection: %w", err)
	}
	if !removed {
		return entities.ErrReflectionNotFound
	}
	return nil
}

func (r *ReflectionRepositoryImpl) Seed(ctx context.Context, reflections []entities.Reflection) (bool, error) {
	seeded, err := r.records.Seed(ctx, reflections)
	if err != nil {
		return false, fmt.Errorf("seed reflections: %w", err)
	}
	return seeded, nil
}
