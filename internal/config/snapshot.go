package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Snapshot computes a stable hash of the build-affecting fields. It is
// recorded in the build report so two reports can be compared for the
// configuration that produced them; logging and watch settings are excluded.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	w("source", c.Source)
	w("repo_dir", c.RepoDir)
	w("release_version", c.ReleaseVersion)
	w("output.dir", c.Output.Dir)
	w("output.package", c.Output.Package)
	w("document.output", c.Document.Output)
	w("document.markup", c.Document.Markup)
	w("document.skip", boolString(c.Document.Skip))
	w("document.margin", c.Document.Margin)
	w("document.font", c.Document.Font)
	w("document.font_size", c.Document.FontSize)
	w("document.link_color", c.Document.LinkColor)
	w("tools.git", c.Tools.Git)
	w("tools.typst", c.Tools.Typst)
	return hex.EncodeToString(h.Sum(nil))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
