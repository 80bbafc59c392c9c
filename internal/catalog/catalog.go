// Package catalog loads the studio's service catalogue from a YAML data file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/Bitlatte/resonant/internal/model"
)

// FileName is the conventional catalogue file inside the data directory.
const FileName = "services.yaml"

type document struct {
	Services []model.Service `yaml:"services"`
}

// Load reads the catalogue at path. A missing file yields an empty catalogue.
func Load(path string) ([]model.Service, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []model.Service{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading service catalogue %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalogue document and checks every service has a unique slug and a name.
func Parse(data []byte) ([]model.Service, error) {
	var doc document
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return nil, fmt.Errorf("error unmarshalling service catalogue: %w", err)
	}

	seen := make(map[string]struct{}, len(doc.Services))
	for i, s := range doc.Services {
		if strings.TrimSpace(s.Slug) == "" || strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("service %d: slug and name are required", i)
		}
		if _, dup := seen[s.Slug]; dup {
			return nil, fmt.Errorf("service %q declared twice", s.Slug)
		}
		seen[s.Slug] = struct{}{}
	}
	if doc.Services == nil {
		doc.Services = []model.Service{}
	}
	return doc.Services, nil
}
