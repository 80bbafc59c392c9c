package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Bitlatte/resonant/internal/config"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/publish"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Publishes the site as JSON documents and a sitemap",
	Long: `The build command loads Markdown entries from the content directory and the
service catalogue from the data directory, then writes into the output directory
(default './public/'):

  index.json               every project and post summary, services and facets
  work/<slug>.json         each case study with its previous and next neighbours
  backstage/<slug>.json    each backstage post with its neighbours
  sitemap.xml              static routes plus every entry

Static assets from the static directory are copied alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuildProcess(appConfig, time.Now())
		return err
	},
}

func runBuildProcess(cfg config.Config, now time.Time) (publish.Report, error) {
	log.Info("Starting build",
		logger.String("content_dir", cfg.ContentDir),
		logger.String("output_dir", cfg.OutputDir),
		logger.String("base_url", cfg.BaseURL),
	)
	s, err := loadSite(cfg)
	if err != nil {
		return publish.Report{}, err
	}
	return publish.Publish(s, publish.Options{
		OutputDir: cfg.OutputDir,
		StaticDir: cfg.StaticDir,
		BaseURL:   cfg.BaseURL,
		SiteTitle: cfg.SiteTitle,
		Now:       now,
	}, log)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
