package version

// Build metadata, injected with -ldflags at release time.
// Defaults cover local development builds.
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)
