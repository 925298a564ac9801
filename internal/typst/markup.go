package typst

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/resumebuilder/internal/resume"
)

// Style holds the page setup of the preamble.
type Style struct {
	Margin   string
	Font     string
	FontSize string
	// LinkColor is a hex color for hyperlinks.
	LinkColor string
}

// DefaultStyle is the layout used when no style is configured.
func DefaultStyle() Style {
	return Style{
		Margin:    "1.5cm",
		Font:      "Liberation Sans",
		FontSize:  "9pt",
		LinkColor: "#0066cc",
	}
}

func (s Style) withDefaults() Style {
	d := DefaultStyle()
	if s.Margin == "" {
		s.Margin = d.Margin
	}
	if s.Font == "" {
		s.Font = d.Font
	}
	if s.FontSize == "" {
		s.FontSize = d.FontSize
	}
	if s.LinkColor == "" {
		s.LinkColor = d.LinkColor
	}
	return s
}

// Markup builds the Typst source for doc using the default style.
func Markup(doc *resume.Document) string {
	return MarkupWithStyle(doc, DefaultStyle())
}

// MarkupWithStyle builds the Typst source for doc. User-authored text is
// escaped; contact URLs are emitted verbatim inside string literals.
func MarkupWithStyle(doc *resume.Document, style Style) string {
	style = style.withDefaults()
	var b strings.Builder

	fmt.Fprintf(&b, "#set page(margin: %s)\n", style.Margin)
	fmt.Fprintf(&b, "#set text(font: %q, size: %s)\n", style.Font, style.FontSize)
	fmt.Fprintf(&b, "#show link: it => underline(text(fill: rgb(%q), it))\n\n", style.LinkColor)

	fmt.Fprintf(&b, "#align(center)[#text(size: 18pt, weight: \"bold\")[%s]]\n", Escape(doc.Profile.Name))
	fmt.Fprintf(&b, "#align(center)[#text(size: 11pt)[%s]]\n\n", Escape(doc.Profile.Title))
	b.WriteString(Escape(doc.Profile.Summary))
	b.WriteString("\n\n")

	heading(&b, "CORE COMPETENCIES")
	for _, c := range doc.Skills.Categories() {
		items := make([]string, len(c.Items))
		for i, item := range c.Items {
			items[i] = Escape(item)
		}
		fmt.Fprintf(&b, "*%s:* %s\n\n", c.Label, strings.Join(items, ", "))
	}

	heading(&b, "PROFESSIONAL EXPERIENCE")
	for _, e := range doc.Experience {
		fmt.Fprintf(&b, "#text(size: 10pt, weight: \"bold\")[%s — %s]\n\n", Escape(e.Company), Escape(e.Position))
		fmt.Fprintf(&b, "#text(style: \"italic\")[%s | %s]\n\n", Escape(e.Period), Escape(e.Location))
		for _, h := range e.Highlights {
			fmt.Fprintf(&b, "- %s\n", Escape(h))
		}
		b.WriteString("\n")
	}

	heading(&b, "CONTACT")
	for _, c := range doc.Contacts {
		fmt.Fprintf(&b, "%s: #link(\"%s\")[%s]\n\n", Escape(c.Platform), c.URL, Escape(c.Label))
	}
	return b.String()
}

func heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "#text(size: 12pt, weight: \"bold\")[%s]\n\n", title)
}
