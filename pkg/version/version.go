// Package version provides build and version information for ymjkit.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current version of ymjkit.
// Set via ldflags at build time, or defaults to dev:
// -X github.com/Aman-CERP/ymjkit/pkg/version.Version=$(VERSION)
var Version = "dev"

// Build information set via ldflags at build time.
var (
	// Commit is the git commit hash.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"

	// GoVersion is the Go version used to build the binary (set at runtime).
	GoVersion = runtime.Version()
)

// String returns a formatted version string with all build info.
func String() string {
	return fmt.Sprintf("ymjkit %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, Date, GoVersion, runtime.GOOS, runtime.GOARCH)
}
