package facet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bitlatte/resonant/internal/facet"
	"github.com/Bitlatte/resonant/internal/model"
)

func project(categories, services, tags []string, status model.ProjectStatus) model.ProjectSummary {
	return model.ProjectSummary{
		Common:     model.Common{Tags: tags},
		Categories: categories,
		Services:   services,
		Status:     status,
	}
}

func TestForProjects_SortedAndDeduplicated(t *testing.T) {
	t.Parallel()

	projects := []model.ProjectSummary{
		project([]string{"fintech", "b2b"}, []string{"Product Design"}, []string{"launch", "growth"}, model.StatusCaseStudy),
		project([]string{"b2b"}, []string{"Brand Systems", "Product Design"}, []string{"growth"}, model.StatusCaseStudy),
		project([]string{"health"}, []string{"Growth Experiments"}, []string{"apps"}, model.StatusComingSoon),
	}

	got := facet.ForProjects(projects)
	assert.Equal(t, []string{"b2b", "fintech", "health"}, got.Categories)
	assert.Equal(t, []string{"Brand Systems", "Growth Experiments", "Product Design"}, got.Services)
	assert.Equal(t, []string{"apps", "growth", "launch"}, got.Tags)
	assert.Equal(t, got.Tags, got.Values(model.FacetTags))
}

func TestForProjects_IndependentOfDeclarationOrder(t *testing.T) {
	t.Parallel()

	a := project([]string{"z", "a"}, []string{"S2"}, []string{"t2", "t1"}, model.StatusCaseStudy)
	b := project([]string{"m"}, []string{"S1", "S2"}, []string{"t1"}, model.StatusComingSoon)

	forward := facet.ForProjects([]model.ProjectSummary{a, b})
	backward := facet.ForProjects([]model.ProjectSummary{b, a})
	assert.Equal(t, forward, backward)

	again := facet.ForProjects([]model.ProjectSummary{a, b})
	assert.Equal(t, forward, again)
}

func TestForProjects_Empty(t *testing.T) {
	t.Parallel()

	got := facet.ForProjects(nil)
	assert.Empty(t, got.Categories)
	assert.NotNil(t, got.Tags)
}

func TestForPosts(t *testing.T) {
	t.Parallel()

	posts := []model.PostSummary{
		{Common: model.Common{Tags: []string{"ops", "culture"}}},
		{Common: model.Common{Tags: []string{"culture", ""}}},
	}
	got := facet.ForPosts(posts)
	assert.Equal(t, []string{"culture", "ops"}, got.Tags)
	assert.Empty(t, got.Services)
}
