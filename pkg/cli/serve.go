package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"

	"github.com/opencity-lab/musette/pkg/cli/config"
	httpctrl "github.com/opencity-lab/musette/pkg/controller/http"
	"github.com/opencity-lab/musette/pkg/service/queue"
	"github.com/opencity-lab/musette/pkg/usecase"
	"github.com/opencity-lab/musette/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var sentryDSN string
	var repoCfg config.Repository
	var geoCfg config.Geocoder
	var profileCfg config.Profile
	var recommenderCfg config.Recommender

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("MUSETTE_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Sources:     cli.EnvVars("MUSETTE_SENTRY_DSN"),
			Destination: &sentryDSN,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, geoCfg.Flags()...)
	flags = append(flags, profileCfg.Flags()...)
	flags = append(flags, recommenderCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if sentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{Dsn: sentryDSN}); err != nil {
					return goerr.Wrap(err, "failed to initialize sentry")
				}
				defer sentry.Flush(2 * time.Second)
				logging.Default().Info("Sentry error reporting enabled")
			}

			recommendCfg, err := recommenderCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load recommender configuration")
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			geo, err := geoCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize geocoder")
			}

			ucOpts := []usecase.Option{
				usecase.WithConfig(recommendCfg),
				usecase.WithGeocoder(geo),
				usecase.WithTaskQueue(queue.NewInProcess()),
			}

			if profileCfg.IsConfigured() {
				profileSvc, err := profileCfg.Configure()
				if err != nil {
					return goerr.Wrap(err, "failed to initialize profile service")
				}
				ucOpts = append(ucOpts, usecase.WithProfileService(profileSvc))
				logging.Default().Info("Profile service enabled")
			} else {
				logging.Default().Warn("Profile service not configured, app recommendation will be unavailable")
			}

			uc := usecase.New(repo, ucOpts...)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
