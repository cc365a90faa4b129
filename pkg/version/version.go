// Package version exposes the build version of tdsdose.
package version

import (
	"github.com/Masterminds/semver/v3"
)

// DevVersion is reported when no valid version was injected at build time.
const DevVersion = "0.0.0-dev"

// These are set with -ldflags "-X github.com/rshade/tdsdose/pkg/version.version=...".
//
//nolint:gochecknoglobals // Linker-injected build metadata.
var (
	version = DevVersion
	commit  = ""
)

// GetVersion returns the build version in canonical semver form without a
// leading "v". Invalid or empty injected values yield DevVersion.
func GetVersion() string {
	v, err := semver.NewVersion(version)
	if err != nil {
		return DevVersion
	}
	return v.String()
}

// GetCommit returns the injected git commit, or "".
func GetCommit() string {
	return commit
}

// Parse parses s as a semantic version. A leading "v" is accepted.
func Parse(s string) (*semver.Version, error) {
	return semver.NewVersion(s)
}
