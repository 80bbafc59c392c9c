// Package registry assembles content entries into an immutable, date-ordered
// collection with slug lookup and chronological adjacency.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Bitlatte/resonant/internal/model"
)

var (
	// ErrNotFound is returned when no entry has the requested slug.
	ErrNotFound = errors.New("entry not found")
	// ErrEmptySlug is returned when an entry is declared without a slug.
	ErrEmptySlug = errors.New("entry has no slug")
	// ErrPaddedSlug is returned when a slug has surrounding whitespace.
	ErrPaddedSlug = errors.New("slug has surrounding whitespace")
	// ErrDuplicateSlug is returned when two entries share a slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
	// ErrMissingBody is returned when an entry has no renderable body.
	ErrMissingBody = errors.New("entry has no body")
)

// Entry is a content record that can be reduced to a summary of type S.
type Entry[S any] interface {
	Base() model.Common
	Summary() S
	Content() model.Body
}

// Registry is an ordered, read-only set of entries, newest first.
type Registry[E Entry[S], S any] struct {
	entries   []E
	summaries []S
	index     map[string]int
}

// Adjacency holds the chronological neighbours of an entry. Previous is the
// next-older entry and Next the next-newer one; either is nil at a boundary.
type Adjacency[E any] struct {
	Previous *E
	Next     *E
}

// Build validates the declared entries and orders them by publish date,
// newest first. Entries sharing a date keep their declaration order.
func Build[E Entry[S], S any](entries []E) (*Registry[E, S], error) {
	ordered := make([]E, len(entries))
	copy(ordered, entries)

	seen := make(map[string]struct{}, len(ordered))
	for i, e := range ordered {
		base := e.Base()
		slug := base.Slug
		if strings.TrimSpace(slug) == "" {
			return nil, fmt.Errorf("entry %d (%q): %w", i, base.Title, ErrEmptySlug)
		}
		if strings.TrimSpace(slug) != slug {
			return nil, fmt.Errorf("%w: %q", ErrPaddedSlug, slug)
		}
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, slug)
		}
		seen[slug] = struct{}{}
		if e.Content().Empty() {
			return nil, fmt.Errorf("%q: %w", slug, ErrMissingBody)
		}
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Base().PublishedAt.After(ordered[j].Base().PublishedAt.Time)
	})

	r := &Registry[E, S]{
		entries:   ordered,
		summaries: make([]S, len(ordered)),
		index:     make(map[string]int, len(ordered)),
	}
	for i, e := range ordered {
		r.summaries[i] = e.Summary()
		r.index[e.Base().Slug] = i
	}
	return r, nil
}

// Len returns the number of entries.
func (r *Registry[E, S]) Len() int {
	return len(r.entries)
}

// Entries returns the entries in canonical order. The outer slice is fresh;
// slices inside each entry are shared with the registry and must not be mutated.
func (r *Registry[E, S]) Entries() []E {
	out := make([]E, len(r.entries))
	copy(out, r.entries)
	return out
}

// Summaries returns one summary per entry in canonical order. The outer slice
// is fresh; slices inside each summary are shared and must not be mutated.
func (r *Registry[E, S]) Summaries() []S {
	out := make([]S, len(r.summaries))
	copy(out, r.summaries)
	return out
}

// BySlug resolves a slug to its entry.
func (r *Registry[E, S]) BySlug(slug string) (E, bool) {
	i, ok := r.index[slug]
	if !ok {
		var zero E
		return zero, false
	}
	return r.entries[i], true
}

// Lookup is BySlug returning ErrNotFound for an unknown slug.
func (r *Registry[E, S]) Lookup(slug string) (E, error) {
	e, ok := r.BySlug(slug)
	if !ok {
		return e, fmt.Errorf("%q: %w", slug, ErrNotFound)
	}
	return e, nil
}

// Adjacent returns the neighbours of slug in canonical order.
func (r *Registry[E, S]) Adjacent(slug string) (Adjacency[E], bool) {
	i, ok := r.index[slug]
	if !ok {
		return Adjacency[E]{}, false
	}

	var adj Adjacency[E]
	if i > 0 {
		next := r.entries[i-1]
		adj.Next = &next
	}
	if i < len(r.entries)-1 {
		previous := r.entries[i+1]
		adj.Previous = &previous
	}
	return adj, true
}

// Page assembles the entry for slug with the summaries of its neighbours.
func (r *Registry[E, S]) Page(slug string) (model.PageData[E, S], error) {
	e, err := r.Lookup(slug)
	if err != nil {
		return model.PageData[E, S]{}, err
	}
	adj, _ := r.Adjacent(slug)

	page := model.PageData[E, S]{Item: e}
	if adj.Previous != nil {
		s := (*adj.Previous).Summary()
		page.Previous = &s
	}
	if adj.Next != nil {
		s := (*adj.Next).Summary()
		page.Next = &s
	}
	return page, nil
}
