package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/cli"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/config"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/logging"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/mail"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/reference"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/report"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		return err
	}
	logging.SetGlobal(logger)

	// Metrics are recorded but never scraped from the CLI.
	m := metrics.New()

	keyring, err := reference.NewKeyring(cfg.Reference.Keys, cfg.Reference.KeepKeys, cfg.Reference.TTL)
	if err != nil {
		return fmt.Errorf("failed to create reference keyring: %w", err)
	}

	var sender mail.Sender
	if cfg.MailConfigured() {
		client, err := mail.NewSendGridClient(cfg.Mail.SendGridAPIKey, cfg.Mail.SendGridHost)
		if err != nil {
			return err
		}
		sender = client
	}

	delivery := service.NewDeliveryService(sender, report.NewRenderer(), service.DeliveryConfig{
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
		CC:       cfg.Mail.CC,
		Subject:  cfg.Mail.Subject,
	}, m)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := cli.NewCLI(cli.Options{
		Estimates: service.NewEstimateService(keyring, m),
		Delivery:  delivery,
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	})
	return app.Execute(ctx, os.Args[1:])
}
