package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bitlatte/resonant/internal/config"
)

// These tests set process environment, so none of them run in parallel.

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))
	for _, name := range []string{
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASSWORD",
		"START_PROJECT_EMAIL_FROM", "START_PROJECT_EMAIL_TO", "SLACK_WEBHOOK_URL",
		"SITE_URL", "NEXT_PUBLIC_SITE_URL", "PORT", "LOG_LEVEL",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func TestLoad_FileAndDefaults(t *testing.T) {
	isolate(t)

	path := writeConfig(t, `
siteTitle: Test Studio
contentDir: site/content
server:
  port: 9090
  readTimeout: 3s
slack:
  webhookURL: https://hooks.example.com/abc
`)

	res, err := config.Load(path)
	require.NoError(t, err)
	cfg := res.Config

	assert.Equal(t, path, res.FileUsed)
	assert.Equal(t, "Test Studio", cfg.SiteTitle)
	assert.Equal(t, "site/content", cfg.ContentDir)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.Equal(t, "public", cfg.OutputDir)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Slack.Enabled())
	assert.False(t, cfg.Mail.Enabled())
}

func TestLoad_EnvironmentAliases(t *testing.T) {
	isolate(t)

	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USER", "mailer")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("START_PROJECT_EMAIL_FROM", "site@example.com")
	t.Setenv("START_PROJECT_EMAIL_TO", "team@example.com")
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://staging.example.com")

	res, err := config.Load(writeConfig(t, "siteTitle: Env\n"))
	require.NoError(t, err)
	cfg := res.Config

	assert.Equal(t, "smtp.example.com", cfg.Mail.Host)
	assert.Equal(t, 465, cfg.Mail.Port)
	assert.Equal(t, "team@example.com", cfg.Mail.To)
	assert.True(t, cfg.Mail.Enabled())
	assert.False(t, cfg.Slack.Enabled())
	assert.Equal(t, "https://staging.example.com", cfg.BaseURL)
}

func TestLoad_PrefixedEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	t.Setenv("RESONANT_SERVER_PORT", "7070")

	res, err := config.Load(writeConfig(t, "server:\n  port: 9090\n"))
	require.NoError(t, err)
	assert.Equal(t, 7070, res.Config.Server.Port)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestMailConfig_Enabled(t *testing.T) {
	full := config.MailConfig{Host: "h", Port: 587, Username: "u", Password: "p", From: "f@x.io", To: "t@x.io"}
	assert.True(t, full.Enabled())

	partial := full
	partial.Password = ""
	assert.False(t, partial.Enabled())

	noPort := full
	noPort.Port = 0
	assert.False(t, noPort.Enabled())
}
