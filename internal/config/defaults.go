package config

import "time"

// Defaults returns the configuration used when nothing is configured.
func Defaults() *Config {
	return &Config{
		Source:  "resume.yaml",
		RepoDir: ".",
		Output: OutputConfig{
			Dir:     "internal/resumedata",
			Package: "resumedata",
		},
		Document: DocumentConfig{
			Output:    "assets/resume.pdf",
			Margin:    "1.5cm",
			Font:      "Liberation Sans",
			FontSize:  "9pt",
			LinkColor: "#0066cc",
		},
		Tools: ToolsConfig{
			Git:   "git",
			Typst: "typst",
		},
		Watch: WatchConfig{
			Debounce: 300 * time.Millisecond,
		},
		Logging: LoggingConfig{Level: LogLevelInfo},
	}
}
