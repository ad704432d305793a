// Package version holds build metadata stamped in via ldflags.
package version

import "runtime"

var (
	Version   = "dev"             // ex: v0.3.0
	Commit    = "none"            // ex: abcd123
	BuildDate = "unknown"         // ex: 2026-08-23T18:42:00Z
	GoVersion = runtime.Version() // toolchain that built the binary
)

// ShortCommit truncates a commit hash to 12 characters for display.
func ShortCommit(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
