// Package search answers free-text queries across every content type.
package search

import (
	"github.com/Bitlatte/resonant/internal/filter"
	"github.com/Bitlatte/resonant/internal/model"
)

// Type tags the kind of content a result points at.
type Type string

const (
	TypeCaseStudy Type = "Case study"
	TypeService   Type = "Service"
	TypeBackstage Type = "Backstage"
)

// Result is one match.
type Result struct {
	Type    Type     `json:"type"`
	Title   string   `json:"title"`
	Href    string   `json:"href"`
	Excerpt string   `json:"excerpt"`
	Tags    []string `json:"tags"`
}

// Index is the flattened, ordered list of searchable documents:
// case studies, then services, then backstage posts.
type Index struct {
	docs []Result
}

// NewIndex flattens the collections into one searchable list.
func NewIndex(projects []model.ProjectSummary, services []model.Service, posts []model.PostSummary) *Index {
	docs := make([]Result, 0, len(projects)+len(services)+len(posts))
	for _, p := range projects {
		tags := make([]string, 0, len(p.Tags)+len(p.Services))
		tags = append(tags, p.Tags...)
		docs = append(docs, Result{
			Type:    TypeCaseStudy,
			Title:   p.Title,
			Href:    "/work/" + p.Slug,
			Excerpt: p.Excerpt,
			Tags:    append(tags, p.Services...),
		})
	}
	for _, s := range services {
		docs = append(docs, Result{
			Type:    TypeService,
			Title:   s.Name,
			Href:    "/services#" + s.Slug,
			Excerpt: s.Teaser,
			Tags:    append([]string{}, s.Deliverables...),
		})
	}
	for _, p := range posts {
		docs = append(docs, Result{
			Type:    TypeBackstage,
			Title:   p.Title,
			Href:    "/backstage/" + p.Slug,
			Excerpt: p.Excerpt,
			Tags:    append([]string{}, p.Tags...),
		})
	}
	return &Index{docs: docs}
}

// Len returns the number of indexed documents.
func (i *Index) Len() int {
	return len(i.docs)
}

// Query returns every document whose title, excerpt or tags contain q,
// ignoring case. A blank query returns nothing.
func (i *Index) Query(q string) []Result {
	needle := filter.Normalize(q)
	results := []Result{}
	if needle == "" {
		return results
	}
	for _, doc := range i.docs {
		fields := make([]string, 0, 2+len(doc.Tags))
		fields = append(fields, doc.Title, doc.Excerpt)
		if filter.Contains(append(fields, doc.Tags...), needle) {
			results = append(results, doc)
		}
	}
	return results
}
