package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Bitlatte/resonant/internal/api"
	"github.com/Bitlatte/resonant/internal/intake"
	"github.com/Bitlatte/resonant/internal/logger"
	"github.com/Bitlatte/resonant/internal/metrics"
	"github.com/Bitlatte/resonant/internal/site"
)

var (
	serverPort int
	noWatch    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the content API and watches for changes",
	Long: `The serve command loads the site, starts the HTTP API (listings, facets,
entry pages, search, the start-project intake endpoint, health and metrics) and
watches the content and data directories, swapping in a rebuilt snapshot
whenever they change.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			appConfig.Server.Port = serverPort
		}

		log.Info("Performing initial load...")
		initial, err := loadSite(appConfig)
		if err != nil {
			return fmt.Errorf("initial load failed, fix the content and try again: %w", err)
		}
		store := site.NewStore(initial)

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m := metrics.New(reg)

		notifiers, err := intake.ConfiguredNotifiers(&appConfig)
		if err != nil {
			return err
		}
		dispatcher := intake.NewDispatcher(notifiers, log, m)
		log.Info("Intake notifications", logger.Strings("channels", dispatcher.Channels()))

		handlers := api.NewHandlers(store, intake.NewHandler(dispatcher, m), reg, Version)
		server := api.NewServer(appConfig.Server, log, m, handlers.RegisterRoutes)

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			err := server.RunWithGracefulShutdown(gctx)
			// Stop the watcher once the server is down.
			stop()
			return err
		})
		if !noWatch {
			reloader := site.NewReloader(store, func() (*site.Site, error) { return loadSite(appConfig) }, log, m)
			g.Go(func() error {
				return reloader.Watch(gctx, appConfig.ContentDir, appConfig.DataDir)
			})
		}
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "port to serve the API on (overrides server.port)")
	serveCmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload when content changes")
	rootCmd.AddCommand(serveCmd)
}

