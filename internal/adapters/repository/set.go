package repository

import (
	"github.com/spf13/afero"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/ports"
)

// Set holds one collection per resource type and the repositories on top
type Set struct {
	ReflectionRecords *Collection[entities.Reflection]
	ProjectRecords    *Collection[entities.Project]

	Reflections ports.ReflectionRepository
	Projects    ports.ProjectRepository
}

// NewSet opens both collections on fs. Each collection has its own lock.
func NewSet(fs afero.Fs, reflectionsPath, projectsPath string, opts ...CollectionOption) *Set {
	reflections := NewReflectionCollection(fs, reflectionsPath, opts...)
	projects := NewProjectCollection(fs, projectsPath, opts...)

	return &Set{
		ReflectionRecords: reflections,
		ProjectRecords:    projects,
		Reflections:       NewReflectionRepository(reflections),
		Projects:          NewProjectRepository(projects),
	}
}

// Info describes every backing document
func (s *Set) Info() ([]CollectionInfo, error) {
	reflections, err := s.ReflectionRecords.Info()
	if err != nil {
		return nil, err
	}
	projects, err := s.ProjectRecords.Info()
	if err != nil {
		return nil, err
	}
	return []CollectionInfo{reflections, projects}, nil
}
