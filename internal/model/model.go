package model

import (
	"html/template"
	"strings"
)

// Common holds the fields every content entry shares.
type Common struct {
	Slug        string   `yaml:"slug" json:"slug"`
	Title       string   `yaml:"title" json:"title"`
	Excerpt     string   `yaml:"excerpt" json:"excerpt"`
	PublishedAt Date     `yaml:"publishedAt" json:"publishedAt"`
	Tags        []string `yaml:"tags" json:"tags"`
}

// Base returns the shared fields of an entry.
func (c Common) Base() Common {
	return c
}

// Body is the rendered content of an entry. It never appears in a summary.
type Body struct {
	SourcePath string        `json:"-"`
	HTML       template.HTML `json:"html"`
}

// Empty reports whether the body carries no renderable content.
func (b Body) Empty() bool {
	return strings.TrimSpace(string(b.HTML)) == ""
}

// ProjectStatus is the lifecycle state of a case study.
type ProjectStatus string

const (
	StatusCaseStudy  ProjectStatus = "case-study"
	StatusComingSoon ProjectStatus = "coming-soon"
)

// Valid reports whether s is a known status.
func (s ProjectStatus) Valid() bool {
	return s == StatusCaseStudy || s == StatusComingSoon
}

// Metric is a headline result shown on a case study.
type Metric struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Hero is the lead image of a case study.
type Hero struct {
	Image string `yaml:"image" json:"image"`
	Alt   string `yaml:"alt" json:"alt"`
}

// GalleryItem is one image in a case study gallery.
type GalleryItem struct {
	Src     string `yaml:"src" json:"src"`
	Alt     string `yaml:"alt" json:"alt"`
	Width   int    `yaml:"width" json:"width"`
	Height  int    `yaml:"height" json:"height"`
	Caption string `yaml:"caption,omitempty" json:"caption,omitempty"`
}

// ProjectSummary is a case study without its body.
type ProjectSummary struct {
	Common     `yaml:",inline"`
	Client     string        `yaml:"client" json:"client"`
	Services   []string      `yaml:"services" json:"services"`
	Categories []string      `yaml:"categories" json:"categories"`
	Timeline   string        `yaml:"timeline" json:"timeline"`
	Status     ProjectStatus `yaml:"status" json:"status"`
	Featured   bool          `yaml:"featured,omitempty" json:"featured,omitempty"`
	Hero       Hero          `yaml:"hero" json:"hero"`
	KPIs       []Metric      `yaml:"kpis" json:"kpis"`
	Gallery    []GalleryItem `yaml:"gallery" json:"gallery"`
}

// Project is a case study with its rendered body.
type Project struct {
	ProjectSummary
	Body Body `json:"body"`
}

// Summary derives the body-less view of the project.
func (p Project) Summary() ProjectSummary {
	return p.ProjectSummary
}

// Content returns the rendered body.
func (p Project) Content() Body {
	return p.Body
}

// PostSummary is a backstage post without its body.
type PostSummary struct {
	Common `yaml:",inline"`
}

// Post is a backstage post with its rendered body.
type Post struct {
	PostSummary
	Body Body `json:"body"`
}

// Summary derives the body-less view of the post.
func (p Post) Summary() PostSummary {
	return p.PostSummary
}

// Content returns the rendered body.
func (p Post) Content() Body {
	return p.Body
}

// Service is one offering in the studio's service catalogue.
type Service struct {
	Slug         string   `yaml:"slug" json:"slug"`
	Name         string   `yaml:"name" json:"name"`
	Teaser       string   `yaml:"teaser" json:"teaser"`
	Description  string   `yaml:"description" json:"description"`
	Deliverables []string `yaml:"deliverables" json:"deliverables"`
}
