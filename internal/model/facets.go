package model

// Facet names a multi-valued dimension entries can be filtered by.
type Facet string

const (
	FacetCategories Facet = "categories"
	FacetServices   Facet = "services"
	FacetTags       Facet = "tags"
)

// Facets lists every facet in display order.
var Facets = []Facet{FacetCategories, FacetServices, FacetTags}

// Values returns the project's values for a facet.
func (p ProjectSummary) Values(f Facet) []string {
	switch f {
	case FacetCategories:
		return p.Categories
	case FacetServices:
		return p.Services
	case FacetTags:
		return p.Tags
	default:
		return nil
	}
}

// Haystack returns the fields free-text queries are matched against.
func (p ProjectSummary) Haystack() []string {
	fields := make([]string, 0, 3+len(p.Tags)+len(p.Services))
	fields = append(fields, p.Title, p.Excerpt, p.Client)
	fields = append(fields, p.Tags...)
	return append(fields, p.Services...)
}

// StatusValue returns the project status as a plain string.
func (p ProjectSummary) StatusValue() string {
	return string(p.Status)
}

// Values returns the post's values for a facet. Posts are only tagged.
func (p PostSummary) Values(f Facet) []string {
	if f == FacetTags {
		return p.Tags
	}
	return nil
}

// Haystack returns the fields free-text queries are matched against.
func (p PostSummary) Haystack() []string {
	fields := make([]string, 0, 2+len(p.Tags))
	fields = append(fields, p.Title, p.Excerpt)
	return append(fields, p.Tags...)
}

// StatusValue is empty: posts have no lifecycle status.
func (p PostSummary) StatusValue() string {
	return ""
}
