package api

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Bitlatte/resonant/internal/filter"
	"github.com/Bitlatte/resonant/internal/intake"
	"github.com/Bitlatte/resonant/internal/model"
	"github.com/Bitlatte/resonant/internal/registry"
	"github.com/Bitlatte/resonant/internal/search"
	"github.com/Bitlatte/resonant/internal/site"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "resonant"

// Handlers serves the read endpoints from the current snapshot.
type Handlers struct {
	store    *site.Store
	intake   *intake.Handler
	gatherer prometheus.Gatherer
	version  string
}

// NewHandlers creates the handlers. intakeHandler and gatherer may be nil,
// which leaves their routes unregistered.
func NewHandlers(store *site.Store, intakeHandler *intake.Handler, gatherer prometheus.Gatherer, version string) *Handlers {
	return &Handlers{store: store, intake: intakeHandler, gatherer: gatherer, version: version}
}

// RegisterRoutes mounts every endpoint on r.
func (h *Handlers) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	if h.gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})))
	}

	v := r.Group("/api")
	v.GET("/work", h.ListWork)
	v.GET("/work/facets", h.WorkFacets)
	v.GET("/work/:slug", h.GetWork)
	v.GET("/backstage", h.ListBackstage)
	v.GET("/backstage/facets", h.BackstageFacets)
	v.GET("/backstage/:slug", h.GetBackstage)
	v.GET("/services", h.ListServices)
	v.GET("/search", h.Search)
	if h.intake != nil {
		v.POST("/start-project", h.intake.StartProject)
	}
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Version  string `json:"version"`
	Projects int    `json:"projects"`
	Posts    int    `json:"posts"`
}

// Health reports liveness and the size of the snapshot in service.
func (h *Handlers) Health(c *gin.Context) {
	s := h.store.Current()
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Service:  ServiceName,
		Version:  h.version,
		Projects: s.Projects.Len(),
		Posts:    s.Posts.Len(),
	})
}

type workQuery struct {
	Query      string   `form:"q"`
	Status     string   `form:"status" binding:"omitempty,oneof=all case-study coming-soon"`
	Categories []string `form:"category"`
	Services   []string `form:"service"`
	Tags       []string `form:"tag"`
	Page       int      `form:"page" binding:"omitempty,min=1"`
	Clear      bool     `form:"clear"`
}

func (q workQuery) state() filter.State {
	s := filter.Initial().WithQuery(q.Query)
	if q.Status != "" {
		s = s.WithStatus(q.Status)
	}
	s = selectAll(s, model.FacetCategories, q.Categories)
	s = selectAll(s, model.FacetServices, q.Services)
	s = selectAll(s, model.FacetTags, q.Tags)
	if q.Page > 0 {
		s = s.GoTo(q.Page)
	}
	if q.Clear {
		s = s.Reset()
	}
	return s
}

// selectAll selects every value of a facet. Repeated values stay selected.
func selectAll(s filter.State, f model.Facet, values []string) filter.State {
	for _, v := range values {
		if !slices.Contains(s.Selected(f), v) {
			s = s.Toggle(f, v)
		}
	}
	return s
}

// ListResponse is one filtered page of summaries. Active is false when the
// page shows the unfiltered collection.
type ListResponse[T any] struct {
	filter.Result[T]
	Filters filter.State `json:"filters"`
	Active  bool         `json:"active"`
}

func listResponse[T filter.Candidate](items []T, s filter.State) ListResponse[T] {
	return ListResponse[T]{Result: filter.Apply(items, s), Filters: s, Active: s.Active()}
}

// ListWork filters the project summaries. clear=true drops every filter.
func (h *Handlers) ListWork(c *gin.Context) {
	var q workQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, listResponse(h.store.Current().Projects.Summaries(), q.state()))
}

type backstageQuery struct {
	Query string `form:"q"`
	Tag   string `form:"tag"`
	Page  int    `form:"page" binding:"omitempty,min=1"`
	Clear bool   `form:"clear"`
}

// ListBackstage filters the post summaries by query and at most one tag.
// clear=true drops every filter.
func (h *Handlers) ListBackstage(c *gin.Context) {
	var q backstageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	s := filter.Initial().WithQuery(q.Query)
	if q.Tag != "" {
		s = s.Toggle(model.FacetTags, q.Tag)
	}
	if q.Page > 0 {
		s = s.GoTo(q.Page)
	}
	if q.Clear {
		s = s.Reset()
	}
	c.JSON(http.StatusOK, listResponse(h.store.Current().Posts.Summaries(), s))
}

// WorkFacets lists the distinct project facet values.
func (h *Handlers) WorkFacets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Current().ProjectFacets)
}

// BackstageFacets lists the distinct post facet values.
func (h *Handlers) BackstageFacets(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Current().PostFacets)
}

// GetWork returns one project with its neighbours.
func (h *Handlers) GetWork(c *gin.Context) {
	page, err := h.store.Current().Projects.Page(c.Param("slug"))
	if err != nil {
		lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetBackstage returns one post with its neighbours.
func (h *Handlers) GetBackstage(c *gin.Context) {
	page, err := h.store.Current().Posts.Page(c.Param("slug"))
	if err != nil {
		lookupError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ListServices returns the service catalogue.
func (h *Handlers) ListServices(c *gin.Context) {
	services := h.store.Current().Services
	if services == nil {
		services = []model.Service{}
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// SearchResponse is the body of GET /api/search.
type SearchResponse struct {
	Query   string          `json:"query"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
}

// Search runs the cross-collection search.
func (h *Handlers) Search(c *gin.Context) {
	q := c.Query("q")
	results := h.store.Current().Search.Query(q)
	c.JSON(http.StatusOK, SearchResponse{Query: q, Count: len(results), Results: results})
}

func lookupError(c *gin.Context, err error) {
	if errors.Is(err, registry.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
