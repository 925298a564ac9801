// Package config holds the build configuration: where the source document
// lives, where artifacts go, which tools to run and how watch mode behaves.
//
// Values are layered: Defaults, then the optional YAML file, then
// RESUMEBUILDER_* environment variables (after .env files are loaded), then
// command-line flags applied by the CLI. Nothing below the CLI reads the
// environment; the resolved Config is passed down explicitly.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/resumebuilder/internal/fileutil"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "resumebuilder.yaml"

// Config represents the build configuration.
type Config struct {
	// Source is the resume document.
	Source string `yaml:"source"`
	// RepoDir is the checkout whose revision is recorded as provenance.
	RepoDir string `yaml:"repo_dir"`
	// ReleaseVersion is usually supplied by RESUMEBUILDER_RELEASE_VERSION.
	ReleaseVersion string `yaml:"release_version,omitempty"`

	Output   OutputConfig   `yaml:"output"`
	Document DocumentConfig `yaml:"document"`
	Tools    ToolsConfig    `yaml:"tools"`
	Watch    WatchConfig    `yaml:"watch"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// OutputConfig controls the generated Go sources and build reports.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	Package     string `yaml:"package"`
	ReportDir   string `yaml:"report_dir,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`
}

// DocumentConfig controls the typeset document.
type DocumentConfig struct {
	Output string `yaml:"output"`
	// Markup, when set, is where the intermediate Typst file is written.
	// Otherwise it goes to a workspace under WorkDir (kept) or the system
	// temp dir (removed after the build).
	Markup  string `yaml:"markup,omitempty"`
	WorkDir string `yaml:"work_dir,omitempty"`
	Skip    bool   `yaml:"skip,omitempty"`

	Margin    string `yaml:"margin"`
	Font      string `yaml:"font"`
	FontSize  string `yaml:"font_size"`
	LinkColor string `yaml:"link_color"`
}

// ToolsConfig names the external binaries.
type ToolsConfig struct {
	Git   string `yaml:"git"`
	Typst string `yaml:"typst"`
}

// WatchConfig controls rebuild-on-change mode.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
	// PollInterval enables a periodic HEAD comparison; zero disables it.
	PollInterval time.Duration `yaml:"poll_interval"`
	// MetricsAddr, when set, serves Prometheus metrics while watching.
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
}

// LoggingConfig controls the log level.
type LoggingConfig struct {
	Level LogLevel `yaml:"level"`
}

// ConstantsPath is the generated constant-table source.
func (c *Config) ConstantsPath() string {
	return filepath.Join(c.Output.Dir, "resume_data.go")
}

// ProvenancePath is the generated provenance source.
func (c *Config) ProvenancePath() string {
	return filepath.Join(c.Output.Dir, "build_info.go")
}

// Load reads the configuration file at path over Defaults, then applies
// environment overrides and validates the result. An empty path yields the
// defaults plus environment. .env files in the working directory are loaded
// first without overriding the process environment.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "cannot load .env file").Fatal().Build()
	}

	cfg := Defaults()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ferrors.ConfigError("configuration file not found").WithContext("path", path).Build()
	}
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "cannot read configuration file").
			Fatal().WithContext("path", path).Build()
	}

	expanded := os.ExpandEnv(string(data))
	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "invalid configuration file").
			Fatal().WithContext("path", path).Build()
	}
	return nil
}

// Init writes a configuration file holding the defaults.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).Build()
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "failed to marshal config").Build()
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryWrite, "failed to write config file").
			Fatal().WithContext("path", path).Build()
	}
	return nil
}
