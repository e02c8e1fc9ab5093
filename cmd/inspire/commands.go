package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fhsinchy/inspire/internal/adapters/http"
	"github.com/fhsinchy/inspire/internal/adapters/http/handlers"
	"github.com/fhsinchy/inspire/internal/platform/logging"
	"github.com/fhsinchy/inspire/internal/platform/telemetry"
	"github.com/fhsinchy/inspire/internal/ports"
)

// defaultProfile is used when neither --profile nor APP_ENVIRONMENT is set.
const defaultProfile = "local"

func newRootCmd() *cobra.Command {
	var profile string

	root := &cobra.Command{
		Use:           "inspire",
		Short:         "Serve random inspirational quotes",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), profile)
		},
	}

	root.PersistentFlags().StringVar(&profile, "profile", profileFromEnv(), "config profile loaded from configs/<profile>.yaml")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server until SIGINT or SIGTERM",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), profile)
			},
		},
		&cobra.Command{
			Use:   "quote",
			Short: "Fetch one quote and print it",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runQuote(cmd, profile)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, _ []string) {
				bi := handlers.NewBuildInfo("inspire", Version, Commit, BuildTime)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s, %s)\n",
					bi.Service, bi.Version, bi.Commit, bi.BuildTime, bi.GoVersion)
			},
		},
	)

	return root
}

func profileFromEnv() string {
	if p := os.Getenv("APP_ENVIRONMENT"); p != "" {
		return p
	}

	return defaultProfile
}

func runServe(ctx context.Context, profile string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(profile)
	if err != nil {
		return err
	}

	logger := newLogger(cfg, os.Stdout)
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
		slog.String("upstream", cfg.Services.Inspiration.BaseURL),
	)

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	source, err := newInspirationClient(cfg)
	if err != nil {
		return err
	}

	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(source); err != nil {
		return fmt.Errorf("registering inspiration health check: %w", err)
	}

	healthHandler := handlers.NewHealthHandler(healthRegistry,
		handlers.NewBuildInfo(cfg.App.Name, Version, Commit, BuildTime))
	quoteHandler := handlers.NewQuoteHandler(newQuoteFetcher(source, logger))

	server := http.New(&cfg.Server, logger)

	routerCfg := http.NewDefaultRouterConfig(logger, &cfg.App, healthHandler, quoteHandler)
	routerCfg.Timeout = cfg.Server.RequestTimeout
	http.SetupRouter(server.Engine(), routerCfg)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	g.Go(func() error {
		// Startup probe only; an unreachable provider is reported, not fatal.
		if err := source.Check(gctx); err != nil {
			logger.Warn("quote provider not reachable at startup",
				slog.String("upstream", source.Name()),
				slog.Any("error", err),
			)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}

func runQuote(cmd *cobra.Command, profile string) error {
	cfg, err := loadConfig(profile)
	if err != nil {
		return err
	}

	// stdout carries only the quote.
	logger := newLogger(cfg, cmd.ErrOrStderr())

	source, err := newInspirationClient(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = logging.WithContext(ctx, logger)

	text, err := newQuoteFetcher(source, logger).Fetch(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)

	return err
}
