// Package facet derives the distinct filter values offered for a collection.
package facet

import (
	"sort"

	"github.com/Bitlatte/resonant/internal/model"
)

// Set holds the sorted, distinct values of each facet.
type Set struct {
	Categories []string `json:"categories"`
	Services   []string `json:"services"`
	Tags       []string `json:"tags"`
}

// Values returns the values of one facet.
func (s Set) Values(f model.Facet) []string {
	switch f {
	case model.FacetCategories:
		return s.Categories
	case model.FacetServices:
		return s.Services
	case model.FacetTags:
		return s.Tags
	default:
		return nil
	}
}

// Distinct collects the distinct values of field across items, sorted ascending.
// Empty strings are skipped.
func Distinct[T any](items []T, field func(T) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, item := range items {
		for _, v := range field(item) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}

// ForProjects extracts categories, services and tags from every project,
// whatever its status.
func ForProjects(projects []model.ProjectSummary) Set {
	return Set{
		Categories: Distinct(projects, func(p model.ProjectSummary) []string { return p.Categories }),
		Services:   Distinct(projects, func(p model.ProjectSummary) []string { return p.Services }),
		Tags:       Distinct(projects, func(p model.ProjectSummary) []string { return p.Tags }),
	}
}

// ForPosts extracts tags from every post. Posts carry no categories or services.
func ForPosts(posts []model.PostSummary) Set {
	return Set{
		Categories: []string{},
		Services:   []string{},
		Tags:       Distinct(posts, func(p model.PostSummary) []string { return p.Tags }),
	}
}
