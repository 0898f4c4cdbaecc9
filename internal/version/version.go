package version

import "fmt"

// Build-time variables injected via ldflags.
var (
	Release   = "dev"
	GitCommit = "unknown"
	GOOS      = "unknown"
	GOARCH    = "unknown"
)

// FullWithPlatform returns the version string with commit and platform
// information.
func FullWithPlatform() string {
	return fmt.Sprintf("%s (commit: %s, %s/%s)", Release, GitCommit, GOOS, GOARCH)
}
