package cli

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/saathi-app/saathi/pkg/cli/config"
	"github.com/saathi-app/saathi/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	var loggerCfg config.Logger
	var sentryDSN string
	var closer func()

	app := &cli.Command{
		Name:    "saathi",
		Usage:   "Saathi mental wellness companion backend",
		Version: version,
		Flags: append(loggerCfg.Flags(),
			&cli.StringFlag{
				Name:        "sentry-dsn",
				Usage:       "Sentry DSN for error reporting (disabled when empty)",
				Sources:     cli.EnvVars("SAATHI_SENTRY_DSN"),
				Destination: &sentryDSN,
			},
		),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			if sentryDSN != "" {
				if err := sentry.Init(sentry.ClientOptions{
					Dsn:     sentryDSN,
					Release: version,
				}); err != nil {
					return ctx, err
				}
				logging.Default().Info("Sentry error reporting enabled")
			}

			logging.Default().Info("Starting saathi", "logger", loggerCfg)
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			sentry.Flush(2 * time.Second)
			if closer != nil {
				closer()
			}
			return nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdMigrate(),
			cmdChat(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}
