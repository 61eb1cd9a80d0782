// Package manifest owns the on-disk list of tracked mods and the target
// game version they are resolved against.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tunaflsh/external-mods-manager/pkg/logger"
)

// DefaultFile is the manifest filename used when none is given.
const DefaultFile = "mods.json"

// Mod describes one tracked mod. Version and File record the state of the
// last successful update; File, when set, names a resident file on disk.
type Mod struct {
	Name     string `json:"name" yaml:"name"`
	Source   string `json:"source" yaml:"source"`
	Version  string `json:"version,omitempty" yaml:"version,omitempty"`
	File     string `json:"file,omitempty" yaml:"file,omitempty"`
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// Manifest is an ordered collection of mods plus the target game version
// shared by all of them.
type Manifest struct {
	Version string `json:"version" yaml:"version"`
	Mods    []*Mod `json:"mods" yaml:"mods"`
}

// Load reads, validates, and decodes a manifest. JSON is the native format;
// .yaml/.yml manifests are accepted and validated against the same schema.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-supplied by design
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var doc interface{}
	if isYAML(path) {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parse manifest: %w", err)
		}
	}

	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	var m Manifest
	if isYAML(path) {
		err = yaml.Unmarshal(data, &m)
	} else {
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	seen := make(map[string]bool, len(m.Mods))
	for _, mod := range m.Mods {
		if seen[mod.Name] {
			return nil, fmt.Errorf("invalid manifest: duplicate mod name %q", mod.Name)
		}
		seen[mod.Name] = true
	}

	return &m, nil
}

// Save writes the manifest back to path in the format its extension implies.
func (m *Manifest) Save(path string) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "    ")
		if err == nil {
			data = append(data, '\n')
		}
	}
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// Mod returns the descriptor with the given name, or nil.
func (m *Manifest) Mod(name string) *Mod {
	for _, mod := range m.Mods {
		if mod.Name == name {
			return mod
		}
	}
	return nil
}

// Prune removes resident files of disabled mods from dir and clears their
// recorded version/file. A disabled mod keeps its entry but no artifact.
func (m *Manifest) Prune(dir string) {
	for _, mod := range m.Mods {
		if !mod.Disabled || mod.File == "" {
			continue
		}
		path := filepath.Join(dir, mod.File)
		if _, err := os.Stat(path); err == nil {
			if err := os.Remove(path); err != nil {
				logger.Named(mod.Name).Error("Failed to remove file of disabled mod", logger.Err(err))
				continue
			}
			logger.Named(mod.Name).Info("Removed file of disabled mod", logger.String("file", mod.File))
		}
		mod.File = ""
		mod.Version = ""
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
