package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/learningjournal/core/docs"
	httpHandlers "github.com/learningjournal/core/internal/adapters/http"
	"github.com/learningjournal/core/internal/adapters/repository"
	"github.com/learningjournal/core/internal/application/services"
	"github.com/learningjournal/core/internal/infrastructure/config"
	"github.com/learningjournal/core/internal/infrastructure/datastore"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/infrastructure/metrics"
)

// Server represents the HTTP server
type Server struct {
	echo    *echo.Echo
	config  *config.Config
	logger  *logger.Logger
	store   *datastore.Store
	repos   *repository.Set
	metrics *metrics.Metrics
}

// New creates a new server instance. m may be nil when metrics are disabled.
func New(cfg *config.Config, store *datastore.Store, repos *repository.Set, m *metrics.Metrics, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	validate := services.NewValidator()

	// Configure Echo. Debug output is never enabled in production.
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.App.Debug && !cfg.App.IsProduction()
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize services
	reflectionService := services.NewReflectionService(repos.Reflections, validate, appLogger)
	projectService := services.NewProjectService(repos.Projects, validate, appLogger)

	// Initialize handlers
	reflectionHandler := httpHandlers.NewReflectionHandler(reflectionService, appLogger)
	projectHandler := httpHandlers.NewProjectHandler(projectService, appLogger)

	server := &Server{
		echo:    e,
		config:  cfg,
		logger:  appLogger,
		store:   store,
		repos:   repos,
		metrics: m,
	}

	// Metrics first so every request is counted
	if m != nil && cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	server.setupMiddleware()
	server.setupRoutes(reflectionHandler, projectHandler)

	return server, nil
}

// Echo exposes the underlying echo instance
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(reflectionHandler *httpHandlers.ReflectionHandler, projectHandler *httpHandlers.ProjectHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// Swagger documentation
	if s.config.Docs.Enabled {
		s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	api := s.echo.Group("/api")

	reflections := api.Group("/reflections")
	reflections.GET("", reflectionHandler.ListReflections)
	reflections.POST("", reflectionHandler.CreateReflection)
	reflections.GET("/:id", reflectionHandler.GetReflection)
	reflections.PUT("/:id", reflectionHandler.UpdateReflection)
	reflections.DELETE("/:id", reflectionHandler.DeleteReflection)
	reflections.Any("/:id/*", apiNotFound)

	projects := api.Group("/projects")
	projects.GET("", projectHandler.ListProjects)
	projects.POST("", projectHandler.CreateProject)
	projects.GET("/:id", projectHandler.GetProject)
	projects.PUT("/:id", projectHandler.UpdateProject)
	projects.DELETE("/:id", projectHandler.DeleteProject)
	projects.Any("/:id/*", apiNotFound)

	// Unknown API paths never fall through to the client application
	api.Any("/*", apiNotFound)
}

func apiNotFound(c echo.Context) error {
	return echo.NewHTTPError(http.StatusNotFound, "Not found")
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	s.echo.Use(s.metrics.Middleware())
	s.echo.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	if err := s.store.HealthCheck(); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status": "ok",
			"info":   s.store.GetStorageInfo(),
		}
	}

	collections, err := s.repos.Info()
	if err != nil {
		status = "error"
		checks["collections"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["collections"] = collections
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Infow("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Infow("Shutting down server")
	return s.echo.Shutdown(ctx)
}

// customErrorHandler renders every error as {"error": "..."}
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  = http.StatusText(http.StatusInternalServerError)
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = httpErrorMessage(he)
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == http.MethodHead {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, httpHandlers.ErrorResponse{Error: msg})
			}
			if err != nil {
				logger.Errorw("Error sending response", "error", err)
			}
		}
	}
}

func httpErrorMessage(he *echo.HTTPError) string {
	switch m := he.Message.(type) {
	case string:
		return m
	case error:
		return m.Error()
	case map[string]string:
		if v, ok := m["message"]; ok {
			return v
		}
	}
	if he.Message == nil {
		return http.StatusText(he.Code)
	}
	return fmt.Sprint(he.Message)
}
