// Package version provides build information for dirparse.
package version

import (
	"fmt"
	"runtime"
)

// AppName is the command name reported in version output and log fields.
const AppName = "dirparse"

// These variables are populated at build time using -ldflags.
// Example:
// go build -ldflags "-X 'dirparse/pkg/version.Version=1.2.3' -X 'dirparse/pkg/version.Commit=abcdefg' -X 'dirparse/pkg/version.BuildTime=2026-10-15T09:30:00Z'"
var (
	Version   = "dev"     // Semantic version of the application
	Commit    = "none"    // Git commit hash
	BuildTime = "unknown" // Build timestamp
)

// Info contains version information.
type Info struct {
	Version   string // Semantic version
	GitCommit string // Git commit hash
	BuildTime string // Build timestamp
	GoVersion string // Go runtime version
	Platform  string // OS and architecture
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns the version information on one line, e.g.
// dirparse version 1.2.3 (commit: abcdefg) built at 2026-10-15T09:30:00Z with go1.24.0 on linux/amd64
func (i Info) String() string {
	return fmt.Sprintf(
		"%s version %s (commit: %s) built at %s with %s on %s",
		AppName,
		i.Version,
		i.GitCommit,
		i.BuildTime,
		i.GoVersion,
		i.Platform,
	)
}
