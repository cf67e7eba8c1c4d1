package services

import (
	"github.com/learningjournal/core/internal/domain/entities"
	"github.com/learningjournal/core/internal/ports"
)

// mergeReflection applies a partial update. name and reflection reject
// null; week accepts null and clears the value. id and date never change.
func mergeReflection(r *entities.Reflection, req ports.UpdateReflectionRequest) error {
	if err := entities.MergeRequired("name", req.Name, &r.Name); err != nil {
		return err
	}
	if err := entities.MergeRequired("reflection", req.Reflection, &r.Reflection); err != nil {
		return err
	}
	entities.MergeNullable(req.Week, &r.Week)
	return nil
}

// mergeProject applies a partial update. The link fields are nullable,
// everything else rejects null.
func mergeProject(p *entities.Project, req ports.UpdateProjectRequest) error {
	if err := entities.MergeRequired("title", req.Title, &p.Title); err != nil {
		return err
	}
	if err := entities.MergeRequired("description", req.Description, &p.Description); err != nil {
		return err
	}
	if err := entities.MergeRequired("technologies", req.Technologies, &p.Technologies); err != nil {
		return err
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	entities.MergeNullable(req.ImageURL, &p.ImageURL)
	entities.MergeNullable(req.DemoURL, &p.DemoURL)
	entities.MergeNullable(req.GithubURL, &p.GithubURL)
	return entities.MergeRequired("date", req.Date, &p.Date)
}
