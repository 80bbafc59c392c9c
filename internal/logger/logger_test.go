package logger_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/resonant/internal/logger"
)

func TestNew_WritesJSONAtLevel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.log")
	l, err := logger.New(logger.Config{Level: "warn", OutputPaths: []string{path}})
	require.NoError(t, err)

	l.Info("hidden")
	l.With(logger.String("channel", "email")).Warn("visible", logger.Int("attempt", 1))
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"visible"`)
	assert.Contains(t, out, `"channel":"email"`)
	assert.Contains(t, out, `"attempt":1`)
}

func TestWithContext_FromContext_RoundTrip(t *testing.T) {
	t.Parallel()

	nop := logger.NewNop()
	ctx := logger.WithContext(context.Background(), nop)
	assert.Same(t, nop, logger.FromContext(ctx))
}

func TestFromContext_FallbackIsSharedAndUsable(t *testing.T) {
	t.Parallel()

	a := logger.FromContext(context.Background())
	b := logger.FromContext(context.Background())
	require.NotNil(t, a)
	assert.Same(t, a, b)
	a.Debug("filtered")
	a.Warn("fallback works", logger.String("key", "value"))
}
