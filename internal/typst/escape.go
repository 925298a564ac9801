// Package typst turns a resume document into Typst markup and compiles it to
// PDF with the external typst binary.
package typst

import "strings"

// escaper prefixes every Typst markup control character used by the layout
// with a backslash. strings.Replacer scans left to right and never rescans its
// own output, so the inserted backslashes are not escaped again.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	`#`, `\#`,
	`$`, `\$`,
	`@`, `\@`,
	`[`, `\[`,
	`]`, `\]`,
	`"`, `\"`,
)

// Escape makes s safe for the markup body.
func Escape(s string) string {
	return escaper.Replace(s)
}
