package model

// VersionInfo contains version information for the application.
type VersionInfo struct {
	AppVersion string `json:"app_version"`
	GoVersion  string `json:"go_version"`
}

// HealthStatus reports whether the service and its collaborators are usable.
type HealthStatus struct {
	Status string `json:"status"`
	Mail   string `json:"mail"`
}
