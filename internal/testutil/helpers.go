package testutil

import (
	"testing"
	"time"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/mail"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/reference"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/report"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
)

// NewTestKeyring creates a single-key keyring whose references expire after an hour.
func NewTestKeyring(t *testing.T) *reference.Keyring {
	t.Helper()

	kr, err := reference.NewKeyring(nil, 1, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create keyring: %v", err)
	}
	return kr
}

func NewTestEstimateService(t *testing.T) *service.EstimateService {
	t.Helper()

	return service.NewEstimateService(NewTestKeyring(t), metrics.New())
}

// NewTestDeliveryService creates a DeliveryService around sender. Pass nil to
// get a service without mail configured.
func NewTestDeliveryService(t *testing.T, sender *MockSender) *service.DeliveryService {
	t.Helper()

	var s mail.Sender
	if sender != nil {
		s = sender
	}
	return service.NewDeliveryService(
		s,
		report.NewRenderer(report.WithoutCompression()),
		service.DefaultDeliveryConfig(),
		metrics.New(),
	)
}

func NewTestSystemService(t *testing.T, delivery *service.DeliveryService) *service.SystemService {
	t.Helper()

	return service.NewSystemService(delivery)
}
