package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// ProjectConfigFile is the project settings file name.
const ProjectConfigFile = ".ci-config.json"

// FindProjectConfig walks up from startDir looking for ProjectConfigFile.
// The first ancestor containing it wins. Returns "" if none is found.
func FindProjectConfig(startDir string) (string, error) {
	current, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		candidate := filepath.Join(current, ProjectConfigFile)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// LoadProjectConfig reads a settings file. Comments and trailing commas are
// accepted.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var cfg ProjectConfig
	if err := json.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.Path = path
	return &cfg, nil
}

// DiscoverProjectConfig finds and loads the nearest settings file above
// startDir. Returns (nil, nil) when there is none.
func DiscoverProjectConfig(startDir string) (*ProjectConfig, error) {
	path, err := FindProjectConfig(startDir)
	if err != nil || path == "" {
		return nil, err
	}
	return LoadProjectConfig(path)
}

// DefaultAgent returns the first active agent, if any.
func (p *ProjectConfig) DefaultAgent() string {
	if p == nil {
		return ""
	}
	for _, a := range p.ActiveAgents {
		if a != "" {
			return a
		}
	}
	return ""
}

// IsActive reports whether name is listed in active_agents.
func (p *ProjectConfig) IsActive(name string) bool {
	return p != nil && foldContains(p.ActiveAgents, name)
}
