package runtime

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (set via -ldflags)
	Version = "0.0.0-dev"

	// GitCommit is the short git commit hash (set via -ldflags)
	GitCommit = "dev"

	// BuildTime is the UTC build timestamp (set via -ldflags)
	BuildTime = "unknown"
)

const devVersion = "0.0.0-dev"

// ModuleVersion returns Version, falling back to the module version recorded
// by `go install` when no -ldflags were given.
func ModuleVersion() string {
	if Version != devVersion {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return Version
	}
	return info.Main.Version
}

// VersionString returns the formatted version string for display.
func VersionString() string {
	return fmt.Sprintf("chartpedia version %s (%s) built %s", ModuleVersion(), GitCommit, BuildTime)
}
