package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/mail"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/report"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/testutil"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func calculated(t *testing.T, in model.TransactionInput) model.Estimate {
	t.Helper()
	e, err := testutil.NewTestEstimateService(t).Calculate(context.Background(), in)
	require.NoError(t, err)
	return e
}

func TestDeliveryService_SendEstimate(t *testing.T) {
	t.Run("sends the rendered pdf with the firm in copy", func(t *testing.T) {
		sender := new(mockSender)
		m := metrics.New()
		svc := service.NewDeliveryService(sender, report.NewRenderer(report.WithoutCompression()), service.DefaultDeliveryConfig(), m)
		e := calculated(t, testutil.NewPurchase().InToronto().FirstTimeBuyer().Build())

		sender.On("Send", mock.Anything, mock.MatchedBy(func(msg mail.Message) bool {
			return msg.To == "buyer@example.com" &&
				msg.From == service.DefaultMailFrom &&
				msg.Subject == service.DefaultMailSubject &&
				msg.Text == service.DefaultMailBody &&
				len(msg.CC) == 1 && msg.CC[0] == service.DefaultMailFrom &&
				len(msg.Attachments) == 1 &&
				msg.Attachments[0].Filename == service.EstimateAttachment &&
				msg.Attachments[0].ContentType == "application/pdf" &&
				bytes.HasPrefix(msg.Attachments[0].Content, []byte("%PDF-")) &&
				bytes.Contains(msg.Attachments[0].Content, []byte("Reference: "+e.ID))
		})).Return(nil).Once()

		err := svc.SendEstimate(context.Background(), "buyer@example.com", e)

		require.NoError(t, err)
		sender.AssertExpectations(t)

		expected := `
# HELP closing_costs_estimate_emails_total Total number of estimate emails by result.
# TYPE closing_costs_estimate_emails_total counter
closing_costs_estimate_emails_total{result="sent"} 1
`
		assert.NoError(t, promtestutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "closing_costs_estimate_emails_total"))
	})

	t.Run("mail not configured", func(t *testing.T) {
		svc := testutil.NewTestDeliveryService(t, nil)

		err := svc.SendEstimate(context.Background(), "buyer@example.com", calculated(t, testutil.NewSale().Build()))

		assert.ErrorIs(t, err, apperrors.ErrMailNotConfigured)
		assert.False(t, svc.Configured())
	})

	t.Run("provider failure keeps the provider message", func(t *testing.T) {
		sender := testutil.NewMockSender().WithError(errors.New("sendgrid returned 403: forbidden"))
		svc := testutil.NewTestDeliveryService(t, sender)

		err := svc.SendEstimate(context.Background(), "buyer@example.com", calculated(t, testutil.NewRefinance().Build()))

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrFailedToSendEmail)
		assert.Contains(t, err.Error(), "sendgrid returned 403: forbidden")
		assert.Equal(t, 1, sender.SendCount())
	})

	t.Run("custom envelope", func(t *testing.T) {
		sender := testutil.NewMockSender()
		svc := service.NewDeliveryService(sender, nil, service.DeliveryConfig{
			From:    "closings@example.com",
			Subject: "Your estimate",
		}, nil)

		err := svc.SendEstimate(context.Background(), "seller@example.com", calculated(t, testutil.NewSale().Build()))
		require.NoError(t, err)

		msg, ok := sender.LastMessage()
		require.True(t, ok)
		assert.Equal(t, "closings@example.com", msg.From)
		assert.Equal(t, report.DefaultOrganization, msg.FromName)
		assert.Equal(t, "Your estimate", msg.Subject)
		assert.Equal(t, service.DefaultMailBody, msg.Text)
		assert.Empty(t, msg.CC)
	})
}

func TestDeliveryService_RenderEstimate(t *testing.T) {
	svc := testutil.NewTestDeliveryService(t, nil)

	pdf, err := svc.RenderEstimate(calculated(t, testutil.NewSale().Build()))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))
	// fpdf escapes parentheses inside text strings.
	assert.Contains(t, string(pdf), `Net proceeds to seller \(approx.\): $356,425`)
}
