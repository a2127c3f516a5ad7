package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/saathi-app/saathi/pkg/cli/config"
	httpctrl "github.com/saathi-app/saathi/pkg/controller/http"
	"github.com/saathi-app/saathi/pkg/service/worker"
	"github.com/saathi-app/saathi/pkg/usecase"
	"github.com/saathi-app/saathi/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var noAuth bool
	var exportBucket string
	var tokenSweepInterval time.Duration
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var genaiCfg config.GenAI

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("SAATHI_ADDR"),
			Destination: &addr,
		},
		&cli.BoolFlag{
			Name:        "no-auth",
			Usage:       "Skip authentication and serve a single anonymous user (development only)",
			Category:    "Authentication",
			Sources:     cli.EnvVars("SAATHI_NO_AUTH"),
			Destination: &noAuth,
		},
		&cli.StringFlag{
			Name:        "export-bucket",
			Usage:       "GCS bucket for archiving account data exports (disabled when empty)",
			Sources:     cli.EnvVars("SAATHI_EXPORT_BUCKET"),
			Destination: &exportBucket,
		},
		&cli.DurationFlag{
			Name:        "token-sweep-interval",
			Usage:       "Interval between expired session sweeps",
			Value:       time.Hour,
			Sources:     cli.EnvVars("SAATHI_TOKEN_SWEEP_INTERVAL"),
			Destination: &tokenSweepInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, genaiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			appFile, err := appCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load application configuration")
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

			genaiSvc, err := genaiCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize language model backend")
			}

			ucOpts := appFile.UseCaseOptions()

			if noAuth {
				logging.Default().Warn("Running in no-auth mode (development only)")
				ucOpts = append(ucOpts, usecase.WithAuth(usecase.NewNoAuthnUseCase()))
			}

			if exportBucket != "" {
				gcs, err := storage.NewClient(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to create GCS client")
				}
				defer func() {
					if err := gcs.Close(); err != nil {
						logging.Default().Error("failed to close GCS client", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithExportBucket(gcs, exportBucket))
				logging.Default().Info("Export archiving enabled", "bucket", exportBucket)
			}

			uc, err := usecase.New(repo, genaiSvc, ucOpts...)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize use cases")
			}

			tokenCleaner := worker.NewTokenCleaner(repo, worker.WithInterval(tokenSweepInterval))
			tokenCleaner.Start(ctx)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

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
				tokenCleaner.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				tokenCleaner.Stop()

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
