package version

// Version contains the resumebuilder version information.
// This should be set via build-time ldflags in production:
// go build -ldflags "-X git.home.luguber.info/inful/resumebuilder/internal/version.Version=v1.2.0".
var Version = "unknown"

// BuildInfo contains additional build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String returns a one-line description suitable for --version output.
func String() string {
	return "resumebuilder " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
