package domains

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of the watched-domains file.
type Loader struct {
	filePath string
}

// NewLoader creates a loader for the given domains.yaml path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads and parses the domains file, preserving file order.
// Entries are trimmed and lower-cased; empty entries are dropped.
func (l *Loader) Load() ([]string, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read domains file: %w", err)
	}

	var config domainsConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse domains yaml: %w", err)
	}

	names := make([]string, 0, len(config.Domains))
	for _, raw := range config.Domains {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name != "" {
			names = append(names, name)
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("domains file %s contains no domains", l.filePath)
	}
	return names, nil
}
