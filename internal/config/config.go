package config

import (
	"time"

	"github.com/Bitlatte/resonant/internal/logger"
)

// Config is the full configuration of the site service.
type Config struct {
	SiteTitle  string `mapstructure:"siteTitle"`
	OutputDir  string `mapstructure:"outputDir"`
	BaseURL    string `mapstructure:"baseURL"`
	ContentDir string `mapstructure:"contentDir"`
	DataDir    string `mapstructure:"dataDir"`
	StaticDir  string `mapstructure:"staticDir"`

	Server ServerConfig  `mapstructure:"server"`
	Log    logger.Config `mapstructure:"log"`
	Mail   MailConfig    `mapstructure:"mail"`
	Slack  SlackConfig   `mapstructure:"slack"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	ReadTimeout     time.Duration `mapstructure:"readTimeout"`
	WriteTimeout    time.Duration `mapstructure:"writeTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
	CORSOrigins     []string      `mapstructure:"corsOrigins"`
}

// MailConfig configures the SMTP transport for intake notifications.
type MailConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// Enabled reports whether every setting the mail transport needs is present.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.Port > 0 && m.Username != "" && m.Password != "" && m.From != "" && m.To != ""
}

// SlackConfig configures the chat webhook for intake notifications.
type SlackConfig struct {
	WebhookURL string        `mapstructure:"webhookURL"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether a webhook URL is configured.
func (s SlackConfig) Enabled() bool {
	return s.WebhookURL != ""
}
