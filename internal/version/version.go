// Package version holds lotego build metadata injected via ldflags:
//
//	-X github.com/lotego/lotego/internal/version.Version=v1.2.0
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// String formats the build metadata for logs and the version flag.
func String() string {
	return Version + " (" + Commit + ", built " + Date + ")"
}
