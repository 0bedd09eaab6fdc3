// Package version exposes build-time version information.
// The variables are meant to be overridden with -ldflags at build time.
package version

//nolint:gochecknoglobals // Build metadata is set by the linker and read-only at runtime.
var (
	// Version is the application version.
	Version = "1.0.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the time the binary was built.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version together with commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
