// Package publish writes a site snapshot to disk as JSON documents, a
// sitemap and the static assets.
package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Bitlatte/resonant/internal/content"
	"github.com/Bitlatte/resonant/internal/facet"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/model"
	"github.com/Bitlatte/resonant/internal/site"
)

// Output layout.
const (
	IndexFile   = "index.json"
	SitemapFile = "sitemap.xml"
)

const writeConcurrency = 8

// ErrUnsafeOutputDir is returned when the output directory would wipe the
// working directory or the filesystem root.
var ErrUnsafeOutputDir = errors.New("refusing to clean output directory")

// Options controls where and how the site is written.
type Options struct {
	OutputDir string
	StaticDir string
	BaseURL   string
	SiteTitle string
	Now       time.Time
}

// Index is the top-level document listing every summary.
type Index struct {
	SiteTitle   string                 `json:"siteTitle"`
	BaseURL     string                 `json:"baseURL"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Projects    []model.ProjectSummary `json:"projects"`
	Posts       []model.PostSummary    `json:"posts"`
	Services    []model.Service        `json:"services"`
	Facets      Facets                 `json:"facets"`
}

// Facets holds the facet values of both collections.
type Facets struct {
	Work      facet.Set `json:"work"`
	Backstage facet.Set `json:"backstage"`
}

// Report counts what a publish run wrote.
type Report struct {
	Projects    int
	Posts       int
	StaticFiles int
	SitemapURLs int
}

// Publish cleans opts.OutputDir and writes s into it.
func Publish(s *site.Site, opts Options, log logger.Logger) (Report, error) {
	var report Report
	out := filepath.Clean(opts.OutputDir)
	if out == "." || out == string(filepath.Separator) {
		return report, fmt.Errorf("%w %q", ErrUnsafeOutputDir, opts.OutputDir)
	}

	log.Info("Cleaning output directory", logger.String("dir", out))
	if err := os.RemoveAll(out); err != nil {
		return report, fmt.Errorf("remove output directory %q: %w", out, err)
	}
	if err := os.MkdirAll(out, os.ModePerm); err != nil {
		return report, fmt.Errorf("create output directory %q: %w", out, err)
	}

	if opts.StaticDir != "" {
		n, err := copyStatic(opts.StaticDir, out)
		if err != nil {
			return report, fmt.Errorf("copy static assets: %w", err)
		}
		if n == 0 {
			log.Info("No static assets to copy", logger.String("dir", opts.StaticDir))
		}
		report.StaticFiles = n
	}

	services := s.Services
	if services == nil {
		services = []model.Service{}
	}
	index := Index{
		SiteTitle:   opts.SiteTitle,
		BaseURL:     opts.BaseURL,
		GeneratedAt: opts.Now.UTC(),
		Projects:    s.Projects.Summaries(),
		Posts:       s.Posts.Summaries(),
		Services:    services,
		Facets:      Facets{Work: s.ProjectFacets, Backstage: s.PostFacets},
	}
	if err := writeJSON(filepath.Join(out, IndexFile), index); err != nil {
		return report, err
	}

	var g errgroup.Group
	g.SetLimit(writeConcurrency)
	for _, p := range s.Projects.Entries() {
		g.Go(func() error {
			page, err := s.Projects.Page(p.Slug)
			if err != nil {
				return err
			}
			return writeJSON(filepath.Join(out, content.WorkDir, p.Slug+".json"), page)
		})
	}
	for _, p := range s.Posts.Entries() {
		g.Go(func() error {
			page, err := s.Posts.Page(p.Slug)
			if err != nil {
				return err
			}
			return writeJSON(filepath.Join(out, content.BackstageDir, p.Slug+".json"), page)
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	report.Projects = s.Projects.Len()
	report.Posts = s.Posts.Len()

	urls := s.Sitemap(opts.BaseURL, opts.Now)
	if err := writeSitemap(filepath.Join(out, SitemapFile), urls); err != nil {
		return report, err
	}
	report.SitemapURLs = len(urls)

	log.Info("Site published",
		logger.String("dir", out),
		logger.Int("projects", report.Projects),
		logger.Int("posts", report.Posts),
		logger.Int("static_files", report.StaticFiles),
		logger.Int("sitemap_urls", report.SitemapURLs),
	)
	return report, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeSitemap(path string, urls []site.SitemapURL) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := site.WriteSitemap(f, urls); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// copyStatic mirrors src into dst and returns the number of files copied.
// A missing src copies nothing.
func copyStatic(src, dst string) (int, error) {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			// New directories get default permissions, not the source's.
			if err := os.MkdirAll(target, os.ModePerm); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			return nil
		}
		if err := copyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}
