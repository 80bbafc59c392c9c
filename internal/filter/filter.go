package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/Bitlatte/resonant/internal/model"
)

// Candidate is anything the filter can match: a project or post summary.
type Candidate interface {
	Haystack() []string
	StatusValue() string
	Values(f model.Facet) []string
}

// Result is one page of matches.
type Result[T any] struct {
	Items     []T `json:"items"`
	Total     int `json:"total"`
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
	PageSize  int `json:"pageSize"`
}

// Normalize trims and case-folds text for substring matching.
func Normalize(text string) string {
	return cases.Fold().String(strings.TrimSpace(text))
}

// Contains reports whether the space-joined fields contain the normalized needle.
// An empty needle matches everything.
func Contains(fields []string, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(cases.Fold().String(strings.Join(fields, " ")), needle)
}

// Matches reports whether item satisfies every active predicate of s.
func Matches[T Candidate](item T, s State) bool {
	return matches(item, s, Normalize(s.Query))
}

func matches[T Candidate](item T, s State, query string) bool {
	if !Contains(item.Haystack(), query) {
		return false
	}
	if s.Status != "" && s.Status != StatusAll && item.StatusValue() != s.Status {
		return false
	}
	for _, f := range model.Facets {
		values := item.Values(f)
		for _, want := range s.Selected(f) {
			if !slices.Contains(values, want) {
				return false
			}
		}
	}
	return true
}

// Apply filters items by s and returns the requested page, clamped to the
// available range. There is always at least one page.
func Apply[T Candidate](items []T, s State) Result[T] {
	query := Normalize(s.Query)
	matched := make([]T, 0, len(items))
	for _, item := range items {
		if matches(item, s, query) {
			matched = append(matched, item)
		}
	}
	return Paginate(matched, s.Page)
}

// Paginate slices items into PageSize pages and returns the clamped page.
func Paginate[T any](items []T, page int) Result[T] {
	pageCount := max(1, (len(items)+PageSize-1)/PageSize)
	page = min(max(page, 1), pageCount)

	start := min((page-1)*PageSize, len(items))
	end := min(start+PageSize, len(items))

	return Result[T]{
		Items:     items[start:end],
		Total:     len(items),
		Page:      page,
		PageCount: pageCount,
		PageSize:  PageSize,
	}
}
