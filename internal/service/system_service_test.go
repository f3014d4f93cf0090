package service_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/testutil"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/version"
)

func TestSystemService_CheckHealth(t *testing.T) {
	t.Run("mail configured", func(t *testing.T) {
		svc := testutil.NewTestSystemService(t, testutil.NewTestDeliveryService(t, testutil.NewMockSender()))

		health := svc.CheckHealth()

		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "configured", health.Mail)
	})

	t.Run("mail not configured is still healthy", func(t *testing.T) {
		svc := testutil.NewTestSystemService(t, testutil.NewTestDeliveryService(t, nil))

		health := svc.CheckHealth()

		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "not configured", health.Mail)
	})
}

func TestSystemService_CheckVersion(t *testing.T) {
	svc := testutil.NewTestSystemService(t, nil)

	info, err := svc.CheckVersion()

	require.NoError(t, err)
	assert.Equal(t, version.Version, info.AppVersion)
	assert.Equal(t, runtime.Version(), info.GoVersion)
}
