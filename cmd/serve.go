package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/theopenlane/rapidrecon/config"
	"github.com/theopenlane/rapidrecon/internal/api"
	"github.com/theopenlane/rapidrecon/internal/jobs"
	"github.com/theopenlane/rapidrecon/internal/recon"
)

// serveCmd is the cobra command that starts the local scan API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the local scan api server",
	Run: func(cmd *cobra.Command, _ []string) {
		err := serve(cmd.Context())
		cobra.CheckErr(err)
	},
}

// init registers the serve command and its flags on the root command
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.PersistentFlags().String("config", config.DefaultConfigFilePath, "config file location")
}

// serve initializes dependencies and starts the API server
func serve(ctx context.Context) error {
	cfgPath := k.String("config")

	cfg, err := config.Load(&cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	runner, err := newRunner(cfg, recon.WithObserver(recon.LogObserver(log.Logger)))
	if err != nil {
		return fmt.Errorf("setting up runner: %w", err)
	}

	manager, err := setupJobs(runner, cfg)
	if err != nil {
		return fmt.Errorf("setting up jobs: %w", err)
	}

	go manager.Run(ctx)

	handler := api.NewRouter(manager, cfg.RapidAPI.APIKey, cfg.Server.MaxBodySize, cfg.Server.WriteTimeout)

	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ln, err := net.Listen("tcp", cfg.Server.Listen)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	log.Info().Str("listen", ln.Addr().String()).Bool("default_key", cfg.RapidAPI.APIKey != "").Msg("starting rapidrecon service")

	return runServer(ctx, srv, ln, manager, cfg.Server.ShutdownGracePeriod)
}

// runServer serves on ln until ctx is done, then drains open requests and scan jobs before returning
func runServer(ctx context.Context, srv *http.Server, ln net.Listener, manager *jobs.Manager, grace time.Duration) error {
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}

		if err := manager.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("scan jobs did not stop in time")
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	<-stopped

	log.Info().Msg("rapidrecon service stopped")

	return nil
}

// setupJobs builds the background job manager from config
func setupJobs(runner *recon.Runner, cfg *config.Config) (*jobs.Manager, error) {
	opts := []jobs.Option{
		jobs.WithMaxConcurrent(cfg.Server.MaxConcurrent),
		jobs.WithJobTTL(cfg.Server.JobTTL),
	}

	if notifier := setupSlack(cfg); notifier != nil {
		log.Info().Msg("slack notifications configured")

		opts = append(opts, jobs.WithNotifier(notifier))
	}

	return jobs.NewManager(runner, opts...)
}
