package resume

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// field describes one required mapping key.
type field struct {
	key      string
	kind     yaml.Kind
	nonEmpty bool
	// strings marks a sequence whose items must all be strings.
	strings bool
}

var (
	documentFields = []field{
		{key: "profile", kind: yaml.MappingNode},
		{key: "skills", kind: yaml.MappingNode},
		{key: "experience", kind: yaml.SequenceNode},
		{key: "contacts", kind: yaml.SequenceNode},
	}
	profileFields = []field{
		{key: "name", kind: yaml.ScalarNode, nonEmpty: true},
		{key: "title", kind: yaml.ScalarNode, nonEmpty: true},
		{key: "summary", kind: yaml.ScalarNode, nonEmpty: true},
	}
	skillFields = []field{
		{key: "cloud", kind: yaml.SequenceNode, strings: true},
		{key: "devops", kind: yaml.SequenceNode, strings: true},
		{key: "monitoring", kind: yaml.SequenceNode, strings: true},
		{key: "languages", kind: yaml.SequenceNode, strings: true},
		{key: "domainEcosystem", kind: yaml.SequenceNode, strings: true},
		{key: "databases", kind: yaml.SequenceNode, strings: true},
		{key: "security", kind: yaml.SequenceNode, strings: true},
	}
	experienceFields = []field{
		{key: "company", kind: yaml.ScalarNode},
		{key: "position", kind: yaml.ScalarNode},
		{key: "period", kind: yaml.ScalarNode},
		{key: "location", kind: yaml.ScalarNode},
		{key: "highlights", kind: yaml.SequenceNode, strings: true},
	}
	contactFields = []field{
		{key: "platform", kind: yaml.ScalarNode},
		{key: "url", kind: yaml.ScalarNode},
		{key: "label", kind: yaml.ScalarNode},
	}
)

// schemaError is a schema violation at a YAML path.
type schemaError struct {
	path string
	line int
	msg  string
}

func (e *schemaError) Error() string {
	if e.line > 0 {
		return fmt.Sprintf("%s (line %d): %s", e.path, e.line, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.path, e.msg)
}

// checkSchema verifies presence and shape of every required field. Leaf
// values must be strings: the decoder would otherwise turn numbers and
// booleans into text and drop null list items.
func checkSchema(doc *yaml.Node) error {
	if doc.Kind == 0 {
		return &schemaError{path: "$", msg: "empty document"}
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return &schemaError{path: "$", msg: "empty document"}
		}
		doc = doc.Content[0]
	}
	top, err := checkFields(deref(doc), "$", documentFields)
	if err != nil {
		return err
	}
	if _, err := checkFields(top["profile"], "profile", profileFields); err != nil {
		return err
	}
	if _, err := checkFields(top["skills"], "skills", skillFields); err != nil {
		return err
	}
	for i, item := range top["experience"].Content {
		if _, err := checkFields(deref(item), fmt.Sprintf("experience[%d]", i), experienceFields); err != nil {
			return err
		}
	}
	for i, item := range top["contacts"].Content {
		if _, err := checkFields(deref(item), fmt.Sprintf("contacts[%d]", i), contactFields); err != nil {
			return err
		}
	}
	return nil
}

// checkFields returns the value node of each field keyed by name.
func checkFields(n *yaml.Node, path string, fields []field) (map[string]*yaml.Node, error) {
	if n.Kind != yaml.MappingNode {
		return nil, &schemaError{path: path, line: n.Line, msg: "expected a mapping"}
	}
	values := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		values[n.Content[i].Value] = deref(n.Content[i+1])
	}

	out := make(map[string]*yaml.Node, len(fields))
	for _, f := range fields {
		p := path + "." + f.key
		if path == "$" {
			p = f.key
		}
		v, ok := values[f.key]
		if !ok || isNull(v) {
			return nil, &schemaError{path: p, line: n.Line, msg: "missing required field"}
		}
		if v.Kind != f.kind {
			return nil, &schemaError{path: p, line: v.Line, msg: "expected " + kindName(f.kind)}
		}
		if f.kind == yaml.ScalarNode && !isString(v) {
			return nil, &schemaError{path: p, line: v.Line, msg: "expected a string, got " + v.ShortTag()}
		}
		if f.strings {
			for i, item := range v.Content {
				item = deref(item)
				if item.Kind != yaml.ScalarNode || !isString(item) {
					return nil, &schemaError{path: fmt.Sprintf("%s[%d]", p, i), line: item.Line, msg: "expected a string"}
				}
			}
		}
		if f.nonEmpty && v.Value == "" {
			return nil, &schemaError{path: p, line: v.Line, msg: "must not be empty"}
		}
		out[f.key] = v
	}
	return out, nil
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// isString reports whether a scalar resolves to a string. Unquoted dates stay
// strings as well; they decode verbatim.
func isString(n *yaml.Node) bool {
	switch n.ShortTag() {
	case "!!str", "!!timestamp":
		return true
	}
	return false
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.Tag == "!!null"
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a string"
	default:
		return "a value"
	}
}
