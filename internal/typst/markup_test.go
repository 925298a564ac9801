package typst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/resumebuilder/internal/resume"
)

func janeRoe() *resume.Document {
	return &resume.Document{
		Profile: resume.Profile{Name: "Jane Roe", Title: "Engineer", Summary: "Builds things."},
		Skills:  resume.Skills{Security: []string{"TLS", "OAuth"}},
		Experience: []resume.Experience{{
			Company:    "Acme",
			Position:   "SRE",
			Period:     "2020-2023",
			Location:   "Remote",
			Highlights: []string{"Cut p99 latency 40%"},
		}},
		Contacts: []resume.Contact{{Platform: "Email", URL: "mailto:jane@example.com", Label: "jane@example.com"}},
	}
}

func TestMarkup_JaneRoe(t *testing.T) {
	m := Markup(janeRoe())

	assert.True(t, strings.HasPrefix(m, "#set page(margin: 1.5cm)\n#set text(font: \"Liberation Sans\", size: 9pt)\n"))
	assert.Contains(t, m, `#show link: it => underline(text(fill: rgb("#0066cc"), it))`)
	assert.Contains(t, m, `#align(center)[#text(size: 18pt, weight: "bold")[Jane Roe]]`)
	assert.Contains(t, m, `#align(center)[#text(size: 11pt)[Engineer]]`)
	assert.Contains(t, m, "\nBuilds things.\n")
	assert.Contains(t, m, "*Security:* TLS, OAuth\n")
	assert.Contains(t, m, `#text(size: 10pt, weight: "bold")[Acme — SRE]`)
	assert.Contains(t, m, `#text(style: "italic")[2020-2023 | Remote]`)
	assert.Contains(t, m, "\n- Cut p99 latency 40%\n")
	assert.Contains(t, m, `Email: #link("mailto:jane@example.com")[jane\@example.com]`)
}

func TestMarkup_SectionOrder(t *testing.T) {
	m := Markup(janeRoe())

	order := []string{
		"CORE COMPETENCIES",
		"*Cloud & Infrastructure:*",
		"*DevOps & Automation:*",
		"*Monitoring & Observability:*",
		"*Programming Languages:*",
		"*Ecosystem & Frameworks:*",
		"*Databases & Messaging:*",
		"*Security:*",
		"PROFESSIONAL EXPERIENCE",
		"CONTACT",
	}
	last := -1
	for _, s := range order {
		idx := strings.Index(m, s)
		if assert.GreaterOrEqual(t, idx, 0, "missing %q", s) {
			assert.Greater(t, idx, last, "%q out of order", s)
			last = idx
		}
	}
}

func TestMarkup_EscapesUserText(t *testing.T) {
	doc := janeRoe()
	doc.Profile.Summary = `Costs $5 #1 [draft] "quoted" C:\tmp`
	doc.Experience[0].Highlights = []string{"Owned @oncall", "Second"}
	doc.Contacts = append(doc.Contacts, resume.Contact{
		Platform: "Web", URL: "https://example.com/a#b?c=[1]", Label: "example.com #1",
	})

	m := Markup(doc)
	assert.Contains(t, m, `Costs \$5 \#1 \[draft\] \"quoted\" C:\\tmp`)
	assert.Contains(t, m, "- Owned \\@oncall\n- Second\n")
	assert.Contains(t, m, `Web: #link("https://example.com/a#b?c=[1]")[example.com \#1]`)
}

func TestMarkup_PreservesOrder(t *testing.T) {
	doc := janeRoe()
	doc.Skills.Cloud = []string{"A", "B", "C"}
	doc.Experience = append(doc.Experience, resume.Experience{
		Company: "Beta", Position: "Dev", Period: "2018-2020", Location: "Oslo",
	})

	m := Markup(doc)
	assert.Contains(t, m, "*Cloud & Infrastructure:* A, B, C\n")
	assert.Less(t, strings.Index(m, "[Acme — SRE]"), strings.Index(m, "[Beta — Dev]"))
}

func TestMarkupWithStyle(t *testing.T) {
	m := MarkupWithStyle(janeRoe(), Style{Margin: "2cm", Font: "Inter"})
	assert.Contains(t, m, "#set page(margin: 2cm)\n")
	assert.Contains(t, m, `#set text(font: "Inter", size: 9pt)`)
}
