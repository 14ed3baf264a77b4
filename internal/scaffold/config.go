package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/lynx-community/create-lynx-app/internal/naming"
)

// Platform is a native host the generated app can run on.
type Platform string

// Supported platforms.
const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
)

// AllPlatforms returns every supported platform in prompt order.
func AllPlatforms() []Platform {
	return []Platform{PlatformIOS, PlatformAndroid}
}

// ParsePlatforms converts names to platforms, case-insensitively.
// Duplicates are dropped; the first occurrence keeps its position.
func ParsePlatforms(names []string) ([]Platform, error) {
	var out []Platform
	for _, name := range names {
		p := Platform(strings.ToLower(strings.TrimSpace(name)))
		if p == "" {
			continue
		}
		if !slices.Contains(AllPlatforms(), p) {
			return nil, fmt.Errorf("%w: %q (want ios or android)", ErrUnknownPlatform, name)
		}
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ProjectConfig is everything needed to scaffold one project. Build it
// with NewProjectConfig; it is not modified afterwards.
type ProjectConfig struct {
	Name        string
	Platforms   []Platform
	Directory   string // absolute parent directory of the project
	UseTailwind bool
	UseGit      bool
}

// NewProjectConfig validates its inputs and returns a config whose
// Directory is absolute. An empty directory means the working directory.
func NewProjectConfig(name string, platforms []Platform, directory string, useTailwind, useGit bool) (ProjectConfig, error) {
	if err := naming.ValidateProjectName(name); err != nil {
		return ProjectConfig{}, err
	}

	names := make([]string, len(platforms))
	for i, p := range platforms {
		names[i] = string(p)
	}
	parsed, err := ParsePlatforms(names)
	if err != nil {
		return ProjectConfig{}, err
	}
	if len(parsed) == 0 {
		return ProjectConfig{}, ErrNoPlatforms
	}

	if directory == "" {
		if directory, err = os.Getwd(); err != nil {
			return ProjectConfig{}, fmt.Errorf("resolve working directory: %w", err)
		}
	}
	abs, err := filepath.Abs(directory)
	if err != nil {
		return ProjectConfig{}, fmt.Errorf("resolve directory %s: %w", directory, err)
	}

	return ProjectConfig{
		Name:        name,
		Platforms:   parsed,
		Directory:   abs,
		UseTailwind: useTailwind,
		UseGit:      useGit,
	}, nil
}

// TargetPath returns the directory the project is created in.
func (c ProjectConfig) TargetPath() string {
	return filepath.Join(c.Directory, c.Name)
}

// Has reports whether p was selected.
func (c ProjectConfig) Has(p Platform) bool {
	return slices.Contains(c.Platforms, p)
}
