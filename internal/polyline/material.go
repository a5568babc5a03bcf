package polyline

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// ErrMissingResource is returned when a referenced asset (e.g. a material) can't be found.
var ErrMissingResource = errors.New("missing resource")

// MaterialDef is the YAML definition of a ribbon material (e.g. assets/materials/polyline.yaml).
// Shader selects a built-in shader by name; Tint multiplies the vertex color.
type MaterialDef struct {
	Name   string `yaml:"name"`
	Shader string `yaml:"shader"`
	Tint   string `yaml:"tint,omitempty"`
}

// LoadMaterial reads the material definition at path within fsys.
// A missing file returns an error wrapping ErrMissingResource.
func LoadMaterial(fsys fs.FS, path string) (*MaterialDef, error) {
	if fsys == nil {
		return nil, fmt.Errorf("%w: %s (no material source)", ErrMissingResource, path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingResource, path)
		}
		return nil, fmt.Errorf("read material %s: %w", path, err)
	}
	var def MaterialDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse material %s: %w", path, err)
	}
	if _, err := ParseColor(def.Tint); err != nil {
		return nil, fmt.Errorf("material %s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = path
	}
	return &def, nil
}
