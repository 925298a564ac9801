package resume

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/resumebuilder/internal/fileutil"
)

// Example returns a small, valid document used by the init command.
func Example() Document {
	return Document{
		Profile: Profile{
			Name:    "Jane Roe",
			Title:   "Site Reliability Engineer",
			Summary: "Builds and operates reliable distributed systems.",
		},
		Skills: Skills{
			Cloud:           []string{"AWS", "GCP"},
			DevOps:          []string{"Terraform", "GitHub Actions"},
			Monitoring:      []string{"Prometheus", "Grafana"},
			Languages:       []string{"Go", "Python"},
			DomainEcosystem: []string{"gRPC", "NATS"},
			Databases:       []string{"PostgreSQL", "Redis"},
			Security:        []string{"TLS", "OAuth"},
		},
		Experience: []Experience{
			{
				Company:    "Acme",
				Position:   "SRE",
				Period:     "2020-2023",
				Location:   "Remote",
				Highlights: []string{"Cut p99 latency 40%"},
			},
		},
		Contacts: []Contact{
			{Platform: "Email", URL: "mailto:jane@example.com", Label: "jane@example.com"},
			{Platform: "GitHub", URL: "https://github.com/janeroe", Label: "github.com/janeroe"},
		},
	}
}

// Init writes the example document to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("resume document already exists: %s (use --force to overwrite)", path)
	}

	doc := Example()
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("failed to marshal example document: %w", err)
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write resume document: %w", err)
	}
	return nil
}
