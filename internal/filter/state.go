// Package filter implements the interactive filter, search and pagination
// applied to content summaries.
package filter

import "github.com/Bitlatte/resonant/internal/model"

const (
	// PageSize is the number of results shown per page.
	PageSize = 6
	// StatusAll disables the status predicate.
	StatusAll = "all"
)

// State is the user's current filter selection. Transitions return a new
// State; any change to the filters sends the user back to the first page.
type State struct {
	Query      string   `json:"query"`
	Status     string   `json:"status"`
	Categories []string `json:"categories"`
	Services   []string `json:"services"`
	Tags       []string `json:"tags"`
	Page       int      `json:"page"`
}

// Initial returns the unfiltered first page.
func Initial() State {
	return State{
		Status:     StatusAll,
		Categories: []string{},
		Services:   []string{},
		Tags:       []string{},
		Page:       1,
	}
}

// Selected returns the selected values of a facet.
func (s State) Selected(f model.Facet) []string {
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

// WithQuery replaces the free-text query.
func (s State) WithQuery(query string) State {
	s.Query = query
	s.Page = 1
	return s
}

// WithStatus replaces the status filter.
func (s State) WithStatus(status string) State {
	s.Status = status
	s.Page = 1
	return s
}

// Toggle selects value within a facet, or deselects it when already selected.
func (s State) Toggle(f model.Facet, value string) State {
	current := s.Selected(f)
	next := make([]string, 0, len(current)+1)
	removed := false
	for _, v := range current {
		if v == value {
			removed = true
			continue
		}
		next = append(next, v)
	}
	if !removed {
		next = append(next, value)
	}

	switch f {
	case model.FacetCategories:
		s.Categories = next
	case model.FacetServices:
		s.Services = next
	case model.FacetTags:
		s.Tags = next
	default:
		return s
	}
	s.Page = 1
	return s
}

// GoTo moves to another page without touching the filters. Apply clamps it.
func (s State) GoTo(page int) State {
	s.Page = page
	return s
}

// Reset clears every filter.
func (s State) Reset() State {
	return Initial()
}

// Active reports whether any filter differs from the defaults.
func (s State) Active() bool {
	return s.Query != "" ||
		(s.Status != "" && s.Status != StatusAll) ||
		len(s.Categories) > 0 ||
		len(s.Services) > 0 ||
		len(s.Tags) > 0
}
