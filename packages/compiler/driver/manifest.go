package driver

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Manifest lists the template files of one compilation unit.
type Manifest struct {
	// Files are template paths, relative to the manifest's directory
	// unless absolute.
	Files []string `yaml:"files"`
}

// LoadManifest reads a yaml manifest and returns the template paths it
// names, resolved against the manifest's directory.
func LoadManifest(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}
	if len(m.Files) == 0 {
		return nil, errors.Errorf("manifest %s names no files", path)
	}
	base := filepath.Dir(path)
	paths := make([]string, len(m.Files))
	for i, f := range m.Files {
		if filepath.IsAbs(f) {
			paths[i] = f
		} else {
			paths[i] = filepath.Join(base, f)
		}
	}
	return paths, nil
}
