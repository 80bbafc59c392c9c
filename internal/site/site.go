// Package site assembles every collection into one immutable snapshot.
package site

import (
	"fmt"
	"path/filepath"
	"slices"
	"sync/atomic"

	"github.com/Bitlatte/resonant/internal/catalog"
	"github.com/Bitlatte/resonant/internal/content"
	"github.com/Bitlatte/resonant/internal/facet"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/model"
	"github.com/Bitlatte/resonant/internal/registry"
	"github.com/Bitlatte/resonant/internal/search"
)

// Options locates the sources of a site.
type Options struct {
	ContentDir string
	DataDir    string
}

// Site is a read-only snapshot of all content and the views derived from it.
type Site struct {
	Projects      *registry.Projects
	Posts         *registry.Posts
	Services      []model.Service
	ProjectFacets facet.Set
	PostFacets    facet.Set
	Search        *search.Index
}

// Load reads the content tree and the service catalogue and builds a snapshot.
func Load(opts Options, loader *content.Loader, log logger.Logger) (*Site, error) {
	projects, err := loader.Projects(opts.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	posts, err := loader.Posts(opts.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	services, err := catalog.Load(filepath.Join(opts.DataDir, catalog.FileName))
	if err != nil {
		return nil, fmt.Errorf("load services: %w", err)
	}

	s, err := New(projects, posts, services)
	if err != nil {
		return nil, err
	}

	for _, name := range s.UnreferencedServices() {
		log.Warn("Catalogue service is not referenced by any project", logger.String("service", name))
	}
	log.Info("Site loaded",
		logger.Int("projects", s.Projects.Len()),
		logger.Int("posts", s.Posts.Len()),
		logger.Int("services", len(s.Services)),
	)
	return s, nil
}

// New builds a snapshot from already declared entries.
func New(projects []model.Project, posts []model.Post, services []model.Service) (*Site, error) {
	projectReg, err := registry.BuildProjects(projects)
	if err != nil {
		return nil, fmt.Errorf("build project registry: %w", err)
	}
	postReg, err := registry.BuildPosts(posts)
	if err != nil {
		return nil, fmt.Errorf("build post registry: %w", err)
	}

	projectSummaries := projectReg.Summaries()
	postSummaries := postReg.Summaries()

	return &Site{
		Projects:      projectReg,
		Posts:         postReg,
		Services:      slices.Clone(services),
		ProjectFacets: facet.ForProjects(projectSummaries),
		PostFacets:    facet.ForPosts(postSummaries),
		Search:        search.NewIndex(projectSummaries, services, postSummaries),
	}, nil
}

// UnreferencedServices lists catalogue service names no project offers.
func (s *Site) UnreferencedServices() []string {
	var missing []string
	for _, svc := range s.Services {
		if !slices.Contains(s.ProjectFacets.Services, svc.Name) {
			missing = append(missing, svc.Name)
		}
	}
	return missing
}

// Store holds the current snapshot. Readers always see a complete site;
// a reload replaces it wholesale.
type Store struct {
	current atomic.Pointer[Site]
}

// NewStore creates a store serving s.
func NewStore(s *Site) *Store {
	st := &Store{}
	st.current.Store(s)
	return st
}

// Current returns the snapshot in service.
func (st *Store) Current() *Site {
	return st.current.Load()
}

// Replace swaps in a new snapshot.
func (st *Store) Replace(s *Site) {
	st.current.Store(s)
}
