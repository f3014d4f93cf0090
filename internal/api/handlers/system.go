package handlers

import (
	"net/http"

	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/api/response"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/apperrors"
	"github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// Health reports whether the service is up and whether email delivery is configured.
//
// Endpoint: GET /api/system/health
// Response: 200 OK with HealthStatus
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.systemService.CheckHealth())
}

// Version handles GET requests to retrieve version information.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionInfo
// Error: 500 Internal Server Error if version check fails
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	version, err := h.systemService.CheckVersion()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetVersion.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, version)
}
