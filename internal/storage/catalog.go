// ABOUTME: Built-in exercise catalog embedded as YAML.
// ABOUTME: Parsed with yaml.v3 and inserted by the schema bootstrap.
package storage

import (
	_ "embed"
	"fmt"

	"github.com/harperreed/fitspire/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Exercises []catalogEntry `yaml:"exercises"`
}

type catalogEntry struct {
	Name         string `yaml:"name"`
	MuscleGroup  string `yaml:"muscle_group"`
	Equipment    string `yaml:"equipment"`
	Instructions string `yaml:"instructions"`
}

// LoadSeedCatalog parses the embedded built-in exercise list.
func LoadSeedCatalog() ([]models.Exercise, error) {
	var f catalogFile
	if err := yaml.Unmarshal(catalogYAML, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	out := make([]models.Exercise, 0, len(f.Exercises))
	for _, e := range f.Exercises {
		ex := models.Exercise{
			Name:         e.Name,
			MuscleGroup:  e.MuscleGroup,
			Equipment:    e.Equipment,
			Instructions: e.Instructions,
		}
		if err := ex.Validate(); err != nil {
			return nil, fmt.Errorf("parse catalog: %w", err)
		}
		out = append(out, ex)
	}
	return out, nil
}
