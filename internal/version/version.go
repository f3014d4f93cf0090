// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/ndewijer/Closing-Costs-Estimator-Backend/internal/version.Version=1.2.3".
package version

// Version is the application version.
var Version = "dev"
