package version

// Version information, overridden via ldflags during release builds.
var (
	// Version is the tool version used for template compatibility checks.
	Version = "1.0.0"
	// GitCommit is the git commit the binary was built from.
	GitCommit = "unknown"
	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)
