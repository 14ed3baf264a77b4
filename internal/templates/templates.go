// Package templates holds the platform templates bundled into the binary
// and the manifest describing which templates make up a project.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

//go:embed bundle manifest.yaml manifest.schema.json
var embedded embed.FS

// ErrInvalidManifest indicates a manifest that fails schema validation.
var ErrInvalidManifest = errors.New("invalid template manifest")

// Platform describes a native host project copied from the bundle.
type Platform struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Bundle      string `yaml:"bundle"`      // folder inside Bundle()
	Destination string `yaml:"destination"` // folder inside the project
}

// Remote lists the template folders fetched from the template repository.
type Remote struct {
	Base     string            `yaml:"base"`
	Overlays map[string]string `yaml:"overlays"`
}

// Manifest describes every template a project can be built from.
type Manifest struct {
	Version   int        `yaml:"version"`
	Platforms []Platform `yaml:"platforms"`
	Remote    Remote     `yaml:"remote"`
}

// Platform returns the platform with the given id.
func (m *Manifest) Platform(id string) (Platform, bool) {
	for _, p := range m.Platforms {
		if p.ID == id {
			return p, true
		}
	}
	return Platform{}, false
}

// PlatformIDs returns the platform ids in manifest order.
func (m *Manifest) PlatformIDs() []string {
	ids := make([]string, len(m.Platforms))
	for i, p := range m.Platforms {
		ids[i] = p.ID
	}
	return ids
}

// Overlay returns the repository folder of the named overlay.
func (m *Manifest) Overlay(name string) (string, bool) {
	path, ok := m.Remote.Overlays[name]
	return path, ok
}

// Bundle returns the embedded platform templates rooted at the bundle folder.
func Bundle() fs.FS {
	sub, err := fs.Sub(embedded, "bundle")
	if err != nil {
		// fs.Sub only fails on an invalid path literal.
		panic(err)
	}
	return sub
}

// Load parses and validates the embedded manifest.
func Load() (*Manifest, error) {
	data, err := embedded.ReadFile("manifest.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded manifest: %w", err)
	}
	return Parse(data)
}

// Parse validates data against the manifest schema and decodes it.
// Schema violations are reported as ErrInvalidManifest with every issue
// in the message.
func Parse(data []byte) (*Manifest, error) {
	result, err := Validate(data)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidManifest, result)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}
