// Package codegen emits the Go source that embeds a resume document as
// read-only package-level tables.
//
// Go has no composite constants, so the tables are package-level variables
// that the generated file documents as read-only. String values are emitted
// as Go-quoted literals: strconv.Unquote of any literal returns the original
// string byte for byte.
package codegen

import (
	"bytes"
	"fmt"
	"go/token"
	"path/filepath"

	"github.com/dave/jennifer/jen"

	"git.home.luguber.info/inful/resumebuilder/internal/fileutil"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/resumebuilder/internal/resume"
)

// DefaultPackage is the package name of generated files.
const DefaultPackage = "resumedata"

// Options controls file-level details of generated sources.
type Options struct {
	// Package is the Go package name; DefaultPackage when empty.
	Package string
	// Source names the input document in the generated header.
	Source string
}

func (o Options) pkg() string {
	if o.Package == "" {
		return DefaultPackage
	}
	return o.Package
}

// Validate checks that the options produce a compilable file.
func (o Options) Validate() error {
	if !token.IsIdentifier(o.pkg()) {
		return ferrors.ValidationError(fmt.Sprintf("invalid Go package name %q", o.pkg())).Build()
	}
	return nil
}

// multiline renders a brace-enclosed, comma-separated list with one element
// per line and a trailing comma, as gofmt lays out long literals.
var multiline = jen.Options{Open: "{", Close: "}", Separator: ",", Multi: true}

// NewFile returns a jennifer file with the generated-code header.
func NewFile(opts Options) *jen.File {
	f := jen.NewFile(opts.pkg())
	src := "resume.yaml"
	if opts.Source != "" {
		src = filepath.Base(opts.Source)
	}
	f.HeaderComment(fmt.Sprintf("Code generated by resumebuilder from %s. DO NOT EDIT.", src))
	return f
}

// Generate renders the constant-table source for doc. Identical documents
// always produce identical bytes.
func Generate(doc *resume.Document, opts Options) ([]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	f := NewFile(opts)

	declareTypes(f)

	f.Line()
	f.Comment("ProfileData is the profile section of the source document. Treat as read-only.")
	f.Var().Id("ProfileData").Op("=").Id("Profile").Custom(multiline,
		field("Name", doc.Profile.Name),
		field("Title", doc.Profile.Title),
		field("Summary", doc.Profile.Summary),
	)

	for _, c := range doc.Skills.Categories() {
		name := "Skills" + c.Name
		f.Line()
		f.Commentf("%s lists the %q skills in display order. Treat as read-only.", name, c.Key)
		f.Var().Id(name).Op("=").Add(stringList(c.Items, false))
	}

	f.Line()
	f.Comment("Experiences is the work history in document order. Treat as read-only.")
	f.Var().Id("Experiences").Op("=").Index().Id("Experience").CustomFunc(multiline, func(g *jen.Group) {
		for _, e := range doc.Experience {
			g.Custom(multiline,
				field("Company", e.Company),
				field("Position", e.Position),
				field("Period", e.Period),
				field("Location", e.Location),
				jen.Id("Highlights").Op(":").Add(stringList(e.Highlights, true)),
			)
		}
	})

	f.Line()
	f.Comment("Contacts lists the contact channels in display order. Treat as read-only.")
	f.Var().Id("Contacts").Op("=").Index().Id("Contact").CustomFunc(multiline, func(g *jen.Group) {
		for _, c := range doc.Contacts {
			g.Custom(multiline,
				field("Platform", c.Platform),
				field("URL", c.URL),
				field("Label", c.Label),
			)
		}
	})

	return render(f)
}

// Write generates the constant-table source and writes it to path,
// replacing any previous file.
func Write(doc *resume.Document, opts Options, path string) error {
	src, err := Generate(doc, opts)
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, src); err != nil {
		return ferrors.WriteError("cannot write constant tables").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}

func declareTypes(f *jen.File) {
	f.Comment("Profile is the display identity.")
	f.Type().Id("Profile").Struct(
		jen.Id("Name").String(),
		jen.Id("Title").String(),
		jen.Id("Summary").String(),
	)

	f.Line()
	f.Comment("Experience is one work history entry.")
	f.Type().Id("Experience").Struct(
		jen.Id("Company").String(),
		jen.Id("Position").String(),
		jen.Id("Period").String(),
		jen.Id("Location").String(),
		jen.Id("Highlights").Index().String(),
	)

	f.Line()
	f.Comment("Contact is one contact channel.")
	f.Type().Id("Contact").Struct(
		jen.Id("Platform").String(),
		jen.Id("URL").String(),
		jen.Id("Label").String(),
	)
}

func field(name, value string) jen.Code {
	return jen.Id(name).Op(":").Lit(value)
}

// stringList renders a []string literal. Empty input renders []string{} so
// consumers never see a nil table.
func stringList(items []string, multi bool) *jen.Statement {
	lits := make([]jen.Code, len(items))
	for i, s := range items {
		lits[i] = jen.Lit(s)
	}
	if multi && len(items) > 0 {
		return jen.Index().String().Custom(multiline, lits...)
	}
	return jen.Index().String().Values(lits...)
}

func render(f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "generated source failed to format").Build()
	}
	return buf.Bytes(), nil
}
