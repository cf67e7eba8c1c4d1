package services

import (
	"context"
	"fmt"

	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/infrastructure/logger"
	"github.com/learningjournal/core/internal/ports"
)

// SeedResult reports which collections were written by a seeding run
type SeedResult struct {
	Reflections bool
	Projects    bool
}

// SeedService populates collections whose backing document does not exist
type SeedService struct {
	reflectionRepo ports.ReflectionRepository
	projectRepo    ports.ProjectRepository
	authorName     string
	logger         *logger.Logger
}

// NewSeedService creates a new seed service
func NewSeedService(reflectionRepo ports.ReflectionRepository, projectRepo ports.ProjectRepository, authorName string, logger *logger.Logger) *SeedService {
	if authorName == "" {
		authorName = DefaultAuthorName
	}
	return &SeedService{
		reflectionRepo: reflectionRepo,
		projectRepo:    projectRepo,
		authorName:     authorName,
		logger:         logger.WithComponent("seeder"),
	}
}

// EnsureSeeded writes the seed records into every collection that has no
// backing document yet. Existing documents are left alone.
func (s *SeedService) EnsureSeeded(ctx context.Context) (SeedResult, error) {
	var result SeedResult

	seeded, err := s.reflectionRepo.Seed(ctx, SeedReflections(s.authorName))
	if err != nil {
		return result, fmt.Errorf("failed to seed reflections: %w", err)
	}
	result.Reflections = seeded

	seeded, err = s.projectRepo.Seed(ctx, SeedProjects())
	if err != nil {
		return result, fmt.Errorf("failed to seed projects: %w", err)
	}
	result.Projects = seeded

	s.logger.Infow("Seeding finished",
		"reflections_seeded", result.Reflections,
		"projects_seeded", result.Projects,
	)
	return result, nil
}

// DefaultAuthorName is used for seed reflections when none is configured
const DefaultAuthorName = "Student"

// SeedReflections returns the initial journal entries for weeks 1 to 3
func SeedReflections(author string) []entities.Reflection {
	return []entities.Reflection{
		{
			Name:       author,
			Date:       "Mon Jan 13 2025",
			Reflection: "This week I learned about HTML structure and semantic elements. I found it interesting how proper semantic HTML improves both accessibility and SEO. The most challenging part was understanding when to use section vs article elements.",
			Week:       entities.IntPtr(1),
		},
		{
			Name:       author,
			Date:       "Mon Jan 20 2025",
			Reflection: "Explored CSS Flexbox and Grid layouts. Grid is incredibly powerful for creating complex layouts with minimal code. I spent extra time practicing media queries to ensure my Learning Journal is fully responsive across all device sizes.",
			Week:       entities.IntPtr(2),
		},
		{
			Name:       author,
			Date:       "Mon Jan 27 2025",
			Reflection: "JavaScript DOM manipulation was the focus this week. I implemented a dynamic navigation menu and theme switcher. The event handling concepts finally clicked after building the form validation feature.",
			Week:       entities.IntPtr(3),
		},
	}
}

// SeedProjects returns the initial portfolio
func SeedProjects() []entities.Project {
	return []entities.Project{
		{
			Title:        "Learning Journal PWA",
			Description:  "A Progressive Web App for documenting weekly learning reflections with offline support, installability, and dynamic data fetching.",
			Technologies: []string{"HTML5", "CSS3", "JavaScript", "React", "PWA"},
			DemoURL:      entities.StringPtr("/"),
			Date:         "Jan 2025",
		},
		{
			Title:        "Responsive Portfolio",
			Description:  "A mobile-first responsive portfolio website showcasing projects and skills with CSS Grid and Flexbox layouts.",
			Technologies: []string{"HTML5", "CSS3", "Flexbox", "Grid"},
			Date:         "Dec 2024",
		},
		{
			Title:        "Theme Switcher Component",
			Description:  "A reusable dark/light mode toggle component using CSS custom properties and localStorage for persistence.",
			Technologies: []string{"JavaScript", "CSS", "LocalStorage"},
			Date:         "Nov 2024",
		},
		{
			Title:        "REST API Backend",
			Description:  "Backend API for the Learning Journal with JSON file storage for reflections and projects data.",
			Technologies: []string{"Go", "REST API", "JSON"},
			Date:         "Feb 2025",
		},
		{
			Title:        "Service Worker Demo",
			Description:  "Implementation of service workers for offline caching and background sync capabilities.",
			Technologies: []string{"JavaScript", "Service Workers", "Cache API"},
			Date:         "Mar 2025",
		},
		{
			Title:        "Form Validation Library",
			Description:  "A lightweight form validation library with custom rules and real-time feedback using the Validation API.",
			Technologies: []string{"JavaScript", "Validation API", "DOM"},
			Date:         "Oct 2024",
		},
	}
}
