package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/resonant/internal/config"
	"github.com/Bitlatte/resonant/internal/content"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/site"
)

// Version is stamped at build time with -ldflags "-X".
var Version = "dev"

var (
	cfgFile   string
	appConfig config.Config
	log       logger.Logger = logger.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "resonant",
	Short: "Resonant Studio content service",
	Long: `resonant loads the studio's case studies, backstage posts and service
catalogue, publishes them as static JSON documents and a sitemap, and serves
them over an HTTP API together with the start-project intake endpoint.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = log.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
	rootCmd.Version = Version
}

func initializeConfig(cmd *cobra.Command) error {
	res, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	appConfig = res.Config

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		appConfig.Log.Level = level
	}
	l, err := logger.New(appConfig.Log)
	if err != nil {
		return err
	}
	log = l.With(logger.String("service", "resonant"), logger.String("version", Version))

	if res.FileUsed != "" {
		log.Info("Using config file", logger.String("path", res.FileUsed))
	} else {
		log.Info("No config file found, using defaults and environment")
	}
	return nil
}

// loadSite reads the content and data directories into a snapshot.
func loadSite(cfg config.Config) (*site.Site, error) {
	loader := content.NewLoader(content.NewMarkdown(), log)
	return site.Load(site.Options{ContentDir: cfg.ContentDir, DataDir: cfg.DataDir}, loader, log)
}
