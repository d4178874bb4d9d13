package version

import "fmt"

// Set with -ldflags "-X github.com/modu-ai/folio/pkg/version.Version=..." in
// release builds.
var (
	Version = "v0.1.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}

// GetCommit returns the build commit hash.
func GetCommit() string {
	return Commit
}

// GetFullVersion returns a formatted full version string.
func GetFullVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date)
}

// Stamp returns the string injected into pages when version stamping is
// enabled. An explicit site version wins over the binary version.
func Stamp(siteVersion string) string {
	if siteVersion != "" {
		return siteVersion
	}
	return Version
}
