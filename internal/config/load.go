package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every automatically bound environment variable.
const EnvPrefix = "RESONANT"

// envAliases binds the environment names the deployment already uses.
var envAliases = map[string][]string{
	"baseURL":          {"SITE_URL", "NEXT_PUBLIC_SITE_URL"},
	"mail.host":        {"SMTP_HOST"},
	"mail.port":        {"SMTP_PORT"},
	"mail.username":    {"SMTP_USER"},
	"mail.password":    {"SMTP_PASSWORD"},
	"mail.from":        {"START_PROJECT_EMAIL_FROM"},
	"mail.to":          {"START_PROJECT_EMAIL_TO"},
	"slack.webhookURL": {"SLACK_WEBHOOK_URL"},
	"server.port":      {"PORT"},
	"log.level":        {"LOG_LEVEL"},
}

// Result is a loaded configuration plus the file it came from, if any.
type Result struct {
	Config   Config
	FileUsed string
}

// Load reads configuration from cfgFile (or ./config.yaml when empty), the
// environment and any .env files. A missing default config file is not an error.
func Load(cfgFile string) (Result, error) {
	if err := loadEnvFiles(); err != nil {
		return Result{}, err
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		args := append([]string{key}, names...)
		if err := v.BindEnv(args...); err != nil {
			return Result{}, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	var res Result
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Result{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return Result{}, fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		res.FileUsed = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&res.Config); err != nil {
		return Result{}, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return res, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("siteTitle", "Resonant Studio")
	v.SetDefault("outputDir", "public")
	v.SetDefault("baseURL", "https://resonant.studio")
	v.SetDefault("contentDir", "content")
	v.SetDefault("dataDir", "data")
	v.SetDefault("staticDir", "static")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("server.shutdownTimeout", 15*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("slack.timeout", 10*time.Second)
}

// loadEnvFiles loads ENV_FILE when set, otherwise .env.local then .env.
// Variables already in the environment win; missing files are ignored.
func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
