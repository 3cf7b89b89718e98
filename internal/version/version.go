// Package version provides version information for msgstack.
package version

// Version is the release version, set at build time with
// -ldflags "-X github.com/cristianoliveira/msgstack/internal/version.Version=...".
var Version = "development"

// Commit is the git commit hash, also set through ldflags.
var Commit = "unknown"

// String returns the version with the commit appended when it is known.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}
