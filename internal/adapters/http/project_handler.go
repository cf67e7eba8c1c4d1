package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

// ProjectHandler handles project-related requests
type ProjectHandler struct {
	projectService ports.ProjectService
	logger         *logger.Logger
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService ports.ProjectService, logger *logger.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// ListProjects godoc
// @Summary List projects
// @Tags projects
// @Produce json
// @Success 200 {array} entities.Project
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c echo.Context) error {
	return c.JSON(http.StatusOK, h.projectService.ListProjects(c.Request().Context()))
}

// GetProject godoc
// @Summary Get project by ID
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} entities.Project
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c echo.Context) error {
	id := c.Param("id")

	project, err := h.projectService.GetProject(c.Request().Context(), id)
	if err != nil {
		return resourceError(h.logger, err, "Project not found", "Failed to fetch project", "project_id", id)
	}

	return c.JSON(http.StatusOK, project)
}

// CreateProject godoc
// @Summary Create a new project
// @Description title, description, technologies and date are required; links default to null
// @Tags projects
// @Accept json
// @Produce json
// @Param request body ports.CreateProjectRequest true "Project data"
// @Success 201 {object} entities.Project
// @Failure 400 {object} ErrorResponse
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c echo.Context) error {
	var req ports.CreateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.CreateProject(c.Request().Context(), req)
	if err != nil {
		return resourceError(h.logger, err, "Project not found", "Failed to create project")
	}

	return c.JSON(http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body ports.UpdateProjectRequest true "Fields to change"
// @Success 200 {object} entities.Project
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c echo.Context) error {
	id := c.Param("id")

	var req ports.UpdateProjectRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	project, err := h.projectService.UpdateProject(c.Request().Context(), id, req)
	if err != nil {
		return resourceError(h.logger, err, "Project not found", "Failed to update project", "project_id", id)
	}

	return c.JSON(http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Param id path string true "Project ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c echo.Context) error {
	id := c.Param("id")

	if err := h.projectService.DeleteProject(c.Request().Context(), id); err != nil {
		return resourceError(h.logger, err, "Project not found", "Failed to delete project", "project_id", id)
	}

	return c.NoContent(http.StatusNoContent)
}
