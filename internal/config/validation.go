package config

import (
	"fmt"
	"go/token"

	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
)

// Validate checks that the configuration can drive a build. Invalid values
// are validation errors; unreadable or missing files are config errors.
func (c *Config) Validate() error {
	required := []struct {
		field, value string
	}{
		{"source", c.Source},
		{"output.dir", c.Output.Dir},
		{"tools.git", c.Tools.Git},
		{"tools.typst", c.Tools.Typst},
		{"document.output", c.Document.Output},
	}
	for _, r := range required {
		if r.value == "" {
			return ferrors.ValidationError(fmt.Sprintf("%s must not be empty", r.field)).
				WithContext("field", r.field).Build()
		}
	}
	if !token.IsIdentifier(c.Output.Package) {
		return ferrors.ValidationError(fmt.Sprintf("output.package %q is not a valid Go package name", c.Output.Package)).
			WithContext("field", "output.package").Build()
	}
	if c.Watch.Debounce < 0 || c.Watch.PollInterval < 0 {
		return ferrors.ValidationError("watch intervals must not be negative").
			WithContext("field", "watch").Build()
	}
	switch c.Logging.Level {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	default:
		return ferrors.ValidationError(fmt.Sprintf("unknown log level %q", c.Logging.Level)).
			WithContext("field", "logging.level").Build()
	}
	return nil
}
