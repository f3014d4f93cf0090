package service

import (
	"runtime"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/model"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	delivery *DeliveryService
}

// NewSystemService creates a new SystemService
func NewSystemService(delivery *DeliveryService) *SystemService {
	return &SystemService{
		delivery: delivery,
	}
}

// CheckHealth reports the service status. Missing mail configuration does not
// make the service unhealthy since estimates can still be calculated.
func (s *SystemService) CheckHealth() model.HealthStatus {
	mail := "not configured"
	if s.delivery != nil && s.delivery.Configured() {
		mail = "configured"
	}
	return model.HealthStatus{Status: "healthy", Mail: mail}
}

// CheckVersion returns the application and Go runtime versions.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	if version.Version == "" {
		return model.VersionInfo{}, apperrors.ErrFailedToGetVersion
	}
	return model.VersionInfo{
		AppVersion: version.Version,
		GoVersion:  runtime.Version(),
	}, nil
}
