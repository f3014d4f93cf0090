package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/config"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/logging"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/mail"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/reference"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/report"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/version"
)

var (
	hostFlag string
	portFlag string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "server",
		Short:        "Start the closing costs estimator API",
		Version:      version.Version,
		SilenceUsage: true,
		RunE:         runServer,
	}

	rootCmd.Flags().StringVar(&hostFlag, "host", "", "Listen host (overrides SERVER_HOST)")
	rootCmd.Flags().StringVarP(&portFlag, "port", "p", "", "Listen port (overrides SERVER_PORT)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if hostFlag != "" || portFlag != "" {
		cfg.Server = overrideAddr(cfg.Server, hostFlag, portFlag)
	}

	logger, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	logging.SetGlobal(logger)

	m := metrics.New()

	keyring, err := reference.NewKeyring(cfg.Reference.Keys, cfg.Reference.KeepKeys, cfg.Reference.TTL)
	if err != nil {
		return fmt.Errorf("failed to create reference keyring: %w", err)
	}
	if len(cfg.Reference.Keys) == 0 {
		logger.Warn().Msg("REFERENCE_KEYS not set, using a generated key; references will not survive a restart")
	}

	var sender mail.Sender
	if cfg.MailConfigured() {
		client, err := mail.NewSendGridClient(cfg.Mail.SendGridAPIKey, cfg.Mail.SendGridHost)
		if err != nil {
			return err
		}
		sender = client
	} else {
		logger.Warn().Msg("SENDGRID_API_KEY not set, estimate emails are disabled")
	}

	// Create services
	deliveryService := service.NewDeliveryService(sender, report.NewRenderer(), service.DeliveryConfig{
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
		CC:       cfg.Mail.CC,
		Subject:  cfg.Mail.Subject,
	}, m)
	services := api.Services{
		System:   service.NewSystemService(deliveryService),
		Estimate: service.NewEstimateService(keyring, m),
		Delivery: deliveryService,
	}

	scheduler := cron.New()
	if cfg.Reference.RotateSchedule != "" {
		if _, err := keyring.ScheduleRotation(scheduler, cfg.Reference.RotateSchedule, logger); err != nil {
			return err
		}
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(services, m, logger, cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", cfg.Server.Addr).Str("version", version.Version).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()

		logger.Info().Msg("shutting down server")

		// Graceful shutdown with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		cronDone := scheduler.Stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		select {
		case <-cronDone.Done():
		case <-shutdownCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return err
	}

	logger.Info().Msg("server exited")
	return nil
}

func overrideAddr(s config.ServerConfig, host, port string) config.ServerConfig {
	if host != "" {
		s.Host = host
	}
	if port != "" {
		s.Port = port
	}
	s.Addr = net.JoinHostPort(s.Host, s.Port)
	return s
}
