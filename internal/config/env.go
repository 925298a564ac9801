package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RESUMEBUILDER_"

// envFiles are loaded in order; variables already set win.
var envFiles = []string{".env", ".env.local"}

func loadEnvFiles() error {
	for _, name := range envFiles {
		err := godotenv.Load(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		slog.Debug("Loaded environment file", "path", name)
	}
	return nil
}

// ApplyEnv overrides fields from RESUMEBUILDER_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	str("RELEASE_VERSION", &c.ReleaseVersion)
	str("SOURCE", &c.Source)
	str("REPO_DIR", &c.RepoDir)
	str("OUTPUT_DIR", &c.Output.Dir)
	str("PACKAGE", &c.Output.Package)
	str("DOCUMENT", &c.Document.Output)
	str("GIT", &c.Tools.Git)
	str("TYPST", &c.Tools.Typst)

	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = LogLevel(v)
	}
	if v, ok := lookup(EnvPrefix + "SKIP_DOCUMENT"); ok && v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return ferrors.ConfigError("invalid boolean").
				WithContext("variable", EnvPrefix+"SKIP_DOCUMENT").
				WithContext("value", v).
				Build()
		}
		c.Document.Skip = skip
	}
	return nil
}
