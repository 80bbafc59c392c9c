package catalog_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/resonant/internal/catalog"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	services, err := catalog.Load(filepath.Join("testdata", catalog.FileName))
	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, "product-strategy", services[0].Slug)
	assert.Equal(t, "Brand Systems", services[1].Name)
	assert.Equal(t, []string{"Visual identity", "Launch toolkits"}, services[1].Deliverables)
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	services, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestParse_Rejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"duplicate":     "services:\n  - {slug: a, name: A}\n  - {slug: a, name: B}\n",
		"missing name":  "services:\n  - {slug: a}\n",
		"unknown field": "services:\n  - {slug: a, name: A, price: 10}\n",
		"not yaml":      "services: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := catalog.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
