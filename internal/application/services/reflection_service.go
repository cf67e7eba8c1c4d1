package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

// ReflectionService handles journal reflection operations
type ReflectionService struct {
	reflectionRepo ports.ReflectionRepository
	validate       *validator.Validate
	logger         *logger.Logger
	now            func() time.Time
}

// NewReflectionService creates a new reflection service
func NewReflectionService(reflectionRepo ports.ReflectionRepository, validate *validator.Validate, logger *logger.Logger) *ReflectionService {
	return &ReflectionService{
		reflectionRepo: reflectionRepo,
		validate:       validate,
		logger:         logger.WithComponent("reflection_service"),
		now:            time.Now,
	}
}

// ListReflections returns every reflection in insertion order
func (s *ReflectionService) ListReflections(ctx context.Context) []entities.Reflection {
	return s.reflectionRepo.List(ctx)
}

// GetReflection retrieves a reflection by ID
func (s *ReflectionService) GetReflection(ctx context.Context, id string) (*entities.Reflection, error) {
	return s.reflectionRepo.GetByID(ctx, id)
}

// CreateReflection validates the request, stamps the creation date and
// stores a new reflection
func (s *ReflectionService) CreateReflection(ctx context.Context, req ports.CreateReflectionRequest) (*entities.Reflection, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	reflection := &entities.Reflection{
		Name:       *req.Name,
		Date:       s.now().Format(entities.DateLayout),
		Reflection: *req.Reflection,
		Week:       req.Week,
	}

	if err := s.reflectionRepo.Create(ctx, reflection); err != nil {
		return nil, err
	}

	s.logger.LogRecordChange("reflections", "create", reflection.ID)
	return reflection, nil
}

// UpdateReflection merges the supplied fields onto an existing reflection
func (s *ReflectionService) UpdateReflection(ctx context.Context, id string, req ports.UpdateReflectionRequest) (*entities.Reflection, error) {
	if req.Empty() {
		return nil, entities.ErrNoData
	}

	reflection, err := s.reflectionRepo.Update(ctx, id, func(r *entities.Reflection) error {
		return mergeReflection(r, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogRecordChange("reflections", "update", reflection.ID)
	return reflection, nil
}

// DeleteReflection removes a reflection
func (s *ReflectionService) DeleteReflection(ctx context.Context, id string) error {
	if err := s.reflectionRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.LogRecordChange("reflections", "delete", id)
	return nil
}
