package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/mail"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/report"
)

// Defaults for the estimate email.
const (
	DefaultMailFrom    = "info@exilex.com"
	DefaultMailSubject = "Your Exilex Closing Costs Estimate"
	DefaultMailBody    = "Please find attached your closing costs estimate (PDF)."
	EstimateAttachment = "closing-costs-estimate.pdf"
)

// DeliveryConfig describes the envelope of estimate emails.
type DeliveryConfig struct {
	From     string
	FromName string
	CC       []string
	Subject  string
	Body     string
}

// DefaultDeliveryConfig sends from the firm's inbox and copies the firm.
func DefaultDeliveryConfig() DeliveryConfig {
	return DeliveryConfig{
		From:     DefaultMailFrom,
		FromName: report.DefaultOrganization,
		CC:       []string{DefaultMailFrom},
		Subject:  DefaultMailSubject,
		Body:     DefaultMailBody,
	}
}

// DeliveryService renders estimates as PDFs and emails them.
type DeliveryService struct {
	sender   mail.Sender
	renderer *report.Renderer
	cfg      DeliveryConfig
	metrics  *metrics.Metrics
}

// NewDeliveryService creates a new DeliveryService. A nil sender means mail is
// not configured: estimates can still be rendered but not sent.
func NewDeliveryService(sender mail.Sender, renderer *report.Renderer, cfg DeliveryConfig, m *metrics.Metrics) *DeliveryService {
	if renderer == nil {
		renderer = report.NewRenderer()
	}
	defaults := DefaultDeliveryConfig()
	if cfg.From == "" {
		cfg.From = defaults.From
	}
	if cfg.FromName == "" {
		cfg.FromName = defaults.FromName
	}
	if cfg.Subject == "" {
		cfg.Subject = defaults.Subject
	}
	if cfg.Body == "" {
		cfg.Body = defaults.Body
	}

	return &DeliveryService{
		sender:   sender,
		renderer: renderer,
		cfg:      cfg,
		metrics:  m,
	}
}

// Configured reports whether a mail sender is available.
func (s *DeliveryService) Configured() bool {
	return s.sender != nil
}

// CopiesFirm reports whether estimate emails carry the firm in copy.
func (s *DeliveryService) CopiesFirm() bool {
	return len(s.cfg.CC) > 0
}

// RenderEstimate returns the PDF summary of e.
func (s *DeliveryService) RenderEstimate(e model.Estimate) ([]byte, error) {
	return s.renderer.Render(report.NewDocument(e))
}

// SendEstimate renders e and emails it to recipient with the firm in copy.
//
// Returns apperrors.ErrMailNotConfigured when no sender is configured, the
// renderer's error when the PDF cannot be produced, and an error wrapping
// apperrors.ErrFailedToSendEmail when the provider rejects the message.
func (s *DeliveryService) SendEstimate(ctx context.Context, recipient string, e model.Estimate) error {
	logger := zerolog.Ctx(ctx).With().Str("estimate_id", e.ID).Logger()

	if !s.Configured() {
		s.metrics.RecordEmail(metrics.EmailNotConfigured)
		return apperrors.ErrMailNotConfigured
	}

	pdf, err := s.RenderEstimate(e)
	if err != nil {
		s.metrics.RecordEmail(metrics.EmailFailed)
		logger.Error().Err(err).Msg("failed to render estimate")
		return err
	}

	msg := mail.Message{
		From:     s.cfg.From,
		FromName: s.cfg.FromName,
		To:       recipient,
		CC:       s.cfg.CC,
		Subject:  s.cfg.Subject,
		Text:     s.cfg.Body,
		Attachments: []mail.Attachment{{
			Filename:    EstimateAttachment,
			ContentType: "application/pdf",
			Content:     pdf,
		}},
	}

	if err := s.sender.Send(ctx, msg); err != nil {
		s.metrics.RecordEmail(metrics.EmailFailed)
		logger.Error().Err(err).Msg("failed to send estimate email")
		if errors.Is(err, apperrors.ErrMailNotConfigured) {
			return err
		}
		return fmt.Errorf("%w: %w", apperrors.ErrFailedToSendEmail, err)
	}

	s.metrics.RecordEmail(metrics.EmailSent)
	logger.Info().Msg("estimate emailed")
	return nil
}
