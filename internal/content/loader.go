// Package content turns the markdown files of a content tree into typed
// entries: YAML frontmatter declares the summary, the markdown is the body.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/model"
)

const (
	// WorkDir holds case studies, relative to the content root.
	WorkDir = "work"
	// BackstageDir holds backstage posts, relative to the content root.
	BackstageDir = "backstage"
)

// NewMarkdown returns the markdown renderer used for entry bodies.
func NewMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(),
		),
	)
}

// Loader reads entry declarations from disk.
type Loader struct {
	md  goldmark.Markdown
	log logger.Logger
}

// NewLoader creates a loader rendering bodies with md.
func NewLoader(md goldmark.Markdown, log logger.Logger) *Loader {
	return &Loader{md: md, log: log}
}

// Projects loads every case study under root/work.
func (l *Loader) Projects(root string) ([]model.Project, error) {
	return loadDir(l, filepath.Join(root, WorkDir),
		func(s *model.ProjectSummary) *model.Common { return &s.Common },
		func(s model.ProjectSummary, body model.Body) (model.Project, error) {
			if !s.Status.Valid() {
				return model.Project{}, fmt.Errorf("project %q has unknown status %q", s.Slug, s.Status)
			}
			return model.Project{ProjectSummary: s, Body: body}, nil
		},
	)
}

// Posts loads every backstage post under root/backstage.
func (l *Loader) Posts(root string) ([]model.Post, error) {
	return loadDir(l, filepath.Join(root, BackstageDir),
		func(s *model.PostSummary) *model.Common { return &s.Common },
		func(s model.PostSummary, body model.Body) (model.Post, error) {
			return model.Post{PostSummary: s, Body: body}, nil
		},
	)
}

// loadDir walks dir in lexical order, so declaration order is stable across builds.
func loadDir[S any, E any](
	l *Loader,
	dir string,
	common func(*S) *model.Common,
	assemble func(S, model.Body) (E, error),
) ([]E, error) {
	entries := []E{}

	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		l.log.Warn("Content directory not found, collection is empty", logger.String("dir", dir))
		return entries, nil
	}

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("error accessing path '%s' during walk: %w", path, walkErr)
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}

		var meta S
		body, err := l.parse(path, &meta)
		if err != nil {
			return err
		}
		applyFallbacks(common(&meta), d.Name())

		entry, err := assemble(meta, body)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		entries = append(entries, entry)
		l.log.Debug("Loaded content entry",
			logger.String("path", path),
			logger.String("slug", common(&meta).Slug),
		)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("error during content collection walk of %s: %w", dir, walkErr)
	}
	return entries, nil
}

// parse decodes the frontmatter of path into meta and renders the rest.
func (l *Loader) parse(path string, meta any) (model.Body, error) {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return model.Body{}, fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	markdown, err := frontmatter.Parse(bytes.NewReader(fileBytes), meta)
	if err != nil {
		return model.Body{}, fmt.Errorf("failed to parse frontmatter of '%s': %w", path, err)
	}

	var html bytes.Buffer
	if err := l.md.Convert(markdown, &html); err != nil {
		return model.Body{}, fmt.Errorf("failed to convert markdown to HTML for file '%s': %w", path, err)
	}

	return model.Body{
		SourcePath: path,
		HTML:       template.HTML(html.String()), //nolint:gosec // authored content
	}, nil
}

// applyFallbacks derives a missing slug and title from the file name.
func applyFallbacks(c *model.Common, fileName string) {
	base := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Slug == "" {
		c.Slug = base
	}
	if strings.TrimSpace(c.Title) == "" {
		words := strings.ReplaceAll(strings.ReplaceAll(base, "-", " "), "_", " ")
		c.Title = cases.Title(language.English).String(words)
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
}
