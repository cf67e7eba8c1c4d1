package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

// ReflectionHandler handles reflection-related requests
type ReflectionHandler struct {
	reflectionService ports.ReflectionService
	logger            *logger.Logger
}

// NewReflectionHandler creates a new reflection handler
func NewReflectionHandler(reflectionService ports.ReflectionService, logger *logger.Logger) *ReflectionHandler {
	return &ReflectionHandler{
		reflectionService: reflectionService,
		logger:            logger,
	}
}

// ListReflections godoc
// @Summary List reflections
// @Description Get every journal reflection in insertion order
// @Tags reflections
// @Produce json
// @Success 200 {array} entities.Reflection
// @Router /reflections [get]
func (h *ReflectionHandler) ListReflections(c echo.Context) error {
	return c.JSON(http.StatusOK, h.reflectionService.ListReflections(c.Request().Context()))
}

// GetReflection godoc
// @Summary Get reflection by ID
// @Tags reflections
// @Produce json
// @Param id path string true "Reflection ID"
// @Success 200 {object} entities.Reflection
// @Failure 404 {object} ErrorResponse
// @Router /reflections/{id} [get]
func (h *ReflectionHandler) GetReflection(c echo.Context) error {
	id := c.Param("id")

	reflection, err := h.reflectionService.GetReflection(c.Request().Context(), id)
	if err != nil {
		return resourceError(h.logger, err, "Reflection not found", "Failed to fetch reflection", "reflection_id", id)
	}

	return c.JSON(http.StatusOK, reflection)
}

// CreateReflection godoc
// @Summary Create a reflection
// @Description The creation date is assigned by the server; week defaults to null
// @Tags reflections
// @Accept json
// @Produce json
// @Param request body ports.CreateReflectionRequest true "Reflection data"
// @Success 201 {object} entities.Reflection
// @Failure 400 {object} ErrorResponse
// @Router /reflections [post]
func (h *ReflectionHandler) CreateReflection(c echo.Context) error {
	var req ports.CreateReflectionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	reflection, err := h.reflectionService.CreateReflection(c.Request().Context(), req)
	if err != nil {
		return resourceError(h.logger, err, "Reflection not found", "Failed to create reflection")
	}

	return c.JSON(http.StatusCreated, reflection)
}

// UpdateReflection godoc
// @Summary Update a reflection
// @Description Supplied fields replace stored values, omitted fields are kept
// @Tags reflections
// @Accept json
// @Produce json
// @Param id path string true "Reflection ID"
// @Param request body ports.UpdateReflectionRequest true "Fields to change"
// @Success 200 {object} entities.Reflection
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reflections/{id} [put]
func (h *ReflectionHandler) UpdateReflection(c echo.Context) error {
	id := c.Param("id")

	var req ports.UpdateReflectionRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	reflection, err := h.reflectionService.UpdateReflection(c.Request().Context(), id, req)
	if err != nil {
		return resourceError(h.logger, err, "Reflection not found", "Failed to update reflection", "reflection_id", id)
	}

	return c.JSON(http.StatusOK, reflection)
}

// DeleteReflection godoc
// @Summary Delete a reflection
// @Tags reflections
// @Param id path string true "Reflection ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /reflections/{id} [delete]
func (h *ReflectionHandler) DeleteReflection(c echo.Context) error {
	id := c.Param("id")

	if err := h.reflectionService.DeleteReflection(c.Request().Context(), id); err != nil {
		return resourceError(h.logger, err, "Reflection not found", "Failed to delete reflection", "reflection_id", id)
	}

	return c.NoContent(http.StatusNoContent)
}
