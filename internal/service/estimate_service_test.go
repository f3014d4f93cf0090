package service_test

import (
	"context"
	"strings"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/metrics"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/testutil"
)

func TestEstimateService_Calculate(t *testing.T) {
	t.Run("stamps id, time and reference", func(t *testing.T) {
		svc := testutil.NewTestEstimateService(t)
		in := testutil.NewPurchase().Build()

		e, err := svc.Calculate(context.Background(), in)
		require.NoError(t, err)

		assert.Len(t, e.ID, 36)
		assert.False(t, e.CalculatedAt.IsZero())
		assert.Equal(t, "UTC", e.CalculatedAt.Location().String())
		assert.NotEmpty(t, e.Reference)
		assert.Equal(t, in, e.Input)

		b, ok := e.Breakdown.(model.PurchaseBreakdown)
		require.True(t, ok, "expected PurchaseBreakdown, got %T", e.Breakdown)
		assert.Equal(t, int64(15580), b.TotalCosts)
		assert.Equal(t, int64(0), b.CashRequired)
	})

	t.Run("each estimate gets a new id", func(t *testing.T) {
		svc := testutil.NewTestEstimateService(t)
		in := testutil.NewSale().Build()

		first, err := svc.Calculate(context.Background(), in)
		require.NoError(t, err)
		second, err := svc.Calculate(context.Background(), in)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.Breakdown, second.Breakdown)
	})

	t.Run("unknown transaction type fails", func(t *testing.T) {
		svc := testutil.NewTestEstimateService(t)
		in := testutil.NewPurchase().Build()
		in.Type = "lease"

		_, err := svc.Calculate(context.Background(), in)

		assert.ErrorIs(t, err, apperrors.ErrFailedToCalculate)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransactionType)
	})

	t.Run("without keyring no reference is issued", func(t *testing.T) {
		svc := service.NewEstimateService(nil, nil)

		e, err := svc.Calculate(context.Background(), testutil.NewRefinance().Build())
		require.NoError(t, err)

		assert.Empty(t, e.Reference)
	})

	t.Run("counts estimates per transaction type", func(t *testing.T) {
		m := metrics.New()
		svc := service.NewEstimateService(testutil.NewTestKeyring(t), m)

		for _, in := range []model.TransactionInput{
			testutil.NewPurchase().Build(),
			testutil.NewPurchase().InToronto().Build(),
			testutil.NewRefinance().Build(),
		} {
			_, err := svc.Calculate(context.Background(), in)
			require.NoError(t, err)
		}

		expected := `
# HELP closing_costs_estimates_total Total number of estimates calculated.
# TYPE closing_costs_estimates_total counter
closing_costs_estimates_total{transaction_type="purchase"} 2
closing_costs_estimates_total{transaction_type="refinance"} 1
`
		assert.NoError(t, promtestutil.GatherAndCompare(m.Registry, strings.NewReader(expected), "closing_costs_estimates_total"))
	})
}

func TestEstimateService_Resolve(t *testing.T) {
	t.Run("recomputes the sealed estimate", func(t *testing.T) {
		svc := testutil.NewTestEstimateService(t)
		original, err := svc.Calculate(context.Background(), testutil.NewSale().WithCommission("4.5").Build())
		require.NoError(t, err)

		resolved, err := svc.Resolve(context.Background(), original.Reference)
		require.NoError(t, err)

		assert.Equal(t, original.ID, resolved.ID)
		assert.Equal(t, original.Reference, resolved.Reference)
		assert.Equal(t, original.Breakdown, resolved.Breakdown)
		assert.True(t, original.Input.CommissionPercent.Equal(resolved.Input.CommissionPercent))
	})

	t.Run("blank reference", func(t *testing.T) {
		svc := testutil.NewTestEstimateService(t)

		_, err := svc.Resolve(context.Background(), "   ")

		assert.ErrorIs(t, err, apperrors.ErrMissingReference)
	})

	t.Run("reference from another keyring", func(t *testing.T) {
		issuer := testutil.NewTestEstimateService(t)
		e, err := issuer.Calculate(context.Background(), testutil.NewPurchase().Build())
		require.NoError(t, err)

		other := testutil.NewTestEstimateService(t)
		_, err = other.Resolve(context.Background(), e.Reference)

		assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
	})

	t.Run("references disabled", func(t *testing.T) {
		svc := service.NewEstimateService(nil, nil)

		_, err := svc.Resolve(context.Background(), "gAAAAABk")

		assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
	})
}
