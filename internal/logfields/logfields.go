package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyCommand    = "command"
	KeyExitCode   = "exit_code"
	KeyRevision   = "revision"
	KeyVersion    = "version"
	KeyTrigger    = "trigger"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr      { return slog.String(KeyBuildID, id) }
func Stage(name string) slog.Attr      { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func Command(name string) slog.Attr    { return slog.String(KeyCommand, name) }
func ExitCode(code int) slog.Attr      { return slog.Int(KeyExitCode, code) }
func Revision(rev string) slog.Attr    { return slog.String(KeyRevision, rev) }
func Version(v string) slog.Attr       { return slog.String(KeyVersion, v) }
func Trigger(path string) slog.Attr    { return slog.String(KeyTrigger, path) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
