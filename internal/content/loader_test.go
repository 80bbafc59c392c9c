package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/resonant/internal/content"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/model"
	"github.com/Bitlatte/resonant/internal/registry"
)

func newLoader() *content.Loader {
	return content.NewLoader(content.NewMarkdown(), logger.NewNop())
}

func TestProjects(t *testing.T) {
	t.Parallel()

	projects, err := newLoader().Projects(filepath.Join("testdata", "content"))
	require.NoError(t, err)
	require.Len(t, projects, 2)

	// Lexical walk order: atlas-supply.md before nova-commerce-launch.md.
	atlas, nova := projects[0], projects[1]

	assert.Equal(t, "atlas-supply", atlas.Slug, "slug falls back to the file name")
	assert.Equal(t, "Atlas Supply", atlas.Title, "title falls back to the title-cased file name")
	assert.Equal(t, model.StatusComingSoon, atlas.Status)
	assert.Equal(t, "2025-01-01", atlas.PublishedAt.String())

	assert.Equal(t, "nova-commerce-launch", nova.Slug)
	assert.Equal(t, "Nova", nova.Client)
	assert.True(t, nova.Featured)
	assert.Equal(t, []string{"Growth Experiments", "Product Design"}, nova.Services)
	assert.Equal(t, model.Hero{Image: "/images/nova/hero.jpg", Alt: "Nova storefront on a phone"}, nova.Hero)
	assert.Equal(t, []model.Metric{{Label: "Conversion", Value: "+38%"}}, nova.KPIs)
	require.Len(t, nova.Gallery, 1)
	assert.Equal(t, 1200, nova.Gallery[0].Width)

	assert.Contains(t, string(nova.Body.HTML), `<h2 id="the-challenge">The challenge</h2>`)
	assert.Contains(t, string(nova.Body.HTML), "<em>fast</em>")
	assert.Equal(t, filepath.Join("testdata", "content", "work", "nova-commerce-launch.md"), nova.Body.SourcePath)
}

func TestPosts_SkipsNonMarkdown(t *testing.T) {
	t.Parallel()

	posts, err := newLoader().Posts(filepath.Join("testdata", "content"))
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "operating-principles", posts[0].Slug)
	assert.Equal(t, []string{"culture"}, posts[0].Tags)
	assert.False(t, posts[0].Body.Empty())
}

func TestMissingCollectionIsEmpty(t *testing.T) {
	t.Parallel()

	posts, err := newLoader().Posts(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestProjects_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	_, err := newLoader().Projects(filepath.Join("testdata", "broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")
}

func TestPosts_TrimsFrontmatterSlug(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	dir := filepath.Join(root, content.BackstageDir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"),
		[]byte("---\nslug: \" padded \"\npublishedAt: \"2024-01-01\"\n---\nBody.\n"), 0o644))

	posts, err := newLoader().Posts(root)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "padded", posts[0].Slug)

	reg, err := registry.BuildPosts(posts)
	require.NoError(t, err)
	page, err := reg.Page(posts[0].Slug)
	require.NoError(t, err)
	assert.Equal(t, "padded", page.Item.Slug)
}
