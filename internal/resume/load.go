package resume

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
)

// Load reads and validates the resume document at path.
//
// Any failure (missing file, unreadable file, malformed YAML, schema
// violation, unknown key, wrong type) is a fatal parse error.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		msg := "cannot read resume document"
		if errors.Is(err, os.ErrNotExist) {
			msg = "resume document not found"
		}
		return nil, ferrors.ParseError(msg).
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return Parse(data, path)
}

// Parse decodes a resume document from memory. name is used in error context.
func Parse(data []byte, name string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, parseError(err, "malformed resume document", name)
	}
	if err := checkSchema(&root); err != nil {
		var se *schemaError
		b := ferrors.ParseError("resume document does not match schema").
			WithCause(err).
			WithContext("path", name)
		if errors.As(err, &se) {
			b = b.WithContext("field", se.path)
			if se.line > 0 {
				b = b.WithContext("line", se.line)
			}
		}
		return nil, b.Build()
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, parseError(err, "empty resume document", name)
		}
		return nil, parseError(err, "resume document does not match schema", name)
	}
	return &doc, nil
}

func parseError(err error, msg, name string) error {
	return ferrors.ParseError(msg).
		WithCause(err).
		WithContext("path", name).
		Build()
}
