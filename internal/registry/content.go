package registry

import "github.com/Bitlatte/resonant/internal/model"

// Projects is the case study registry.
type Projects = Registry[model.Project, model.ProjectSummary]

// Posts is the backstage post registry.
type Posts = Registry[model.Post, model.PostSummary]

// BuildProjects builds the case study registry.
func BuildProjects(entries []model.Project) (*Projects, error) {
	return Build[model.Project, model.ProjectSummary](entries)
}

// BuildPosts builds the backstage post registry.
func BuildPosts(entries []model.Post) (*Posts, error) {
	return Build[model.Post, model.PostSummary](entries)
}
