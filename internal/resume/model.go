// Package resume loads the source-of-truth resume document.
//
// A Document is parsed once per build and handed to every generation stage
// read-only. List order is display order and is never re-sorted.
package resume

// Document is the in-memory model of resume.yaml.
type Document struct {
	Profile    Profile      `yaml:"profile"`
	Skills     Skills       `yaml:"skills"`
	Experience []Experience `yaml:"experience"`
	Contacts   []Contact    `yaml:"contacts"`
}

// Profile holds the display identity.
type Profile struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Skills holds the seven fixed skill categories.
type Skills struct {
	Cloud           []string `yaml:"cloud"`
	DevOps          []string `yaml:"devops"`
	Monitoring      []string `yaml:"monitoring"`
	Languages       []string `yaml:"languages"`
	DomainEcosystem []string `yaml:"domainEcosystem"`
	Databases       []string `yaml:"databases"`
	Security        []string `yaml:"security"`
}

// Experience is one work history entry. Entries are kept in document order.
type Experience struct {
	Company    string   `yaml:"company"`
	Position   string   `yaml:"position"`
	Period     string   `yaml:"period"`
	Location   string   `yaml:"location"`
	Highlights []string `yaml:"highlights"`
}

// Contact is one contact channel.
type Contact struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
	Label    string `yaml:"label"`
}

// Category is a skill list together with its fixed identity.
type Category struct {
	// Key is the YAML key, e.g. "domainEcosystem".
	Key string
	// Name is the exported Go identifier suffix, e.g. "DomainEcosystem".
	Name string
	// Label is the human-readable heading used in the typeset document.
	Label string
	Items []string
}

// Categories returns the seven skill categories in their fixed display order.
func (s Skills) Categories() []Category {
	return []Category{
		{Key: "cloud", Name: "Cloud", Label: "Cloud & Infrastructure", Items: s.Cloud},
		{Key: "devops", Name: "DevOps", Label: "DevOps & Automation", Items: s.DevOps},
		{Key: "monitoring", Name: "Monitoring", Label: "Monitoring & Observability", Items: s.Monitoring},
		{Key: "languages", Name: "Languages", Label: "Programming Languages", Items: s.Languages},
		{Key: "domainEcosystem", Name: "DomainEcosystem", Label: "Ecosystem & Frameworks", Items: s.DomainEcosystem},
		{Key: "databases", Name: "Databases", Label: "Databases & Messaging", Items: s.Databases},
		{Key: "security", Name: "Security", Label: "Security", Items: s.Security},
	}
}
