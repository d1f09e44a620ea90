package core

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	// ProjectsDir is the knowledge base directory holding project checkouts.
	ProjectsDir = "Projects"

	legacyProjectConfigFile = ".collaborative-intelligence.json"
)

// DefaultProjectDirs are scanned for integrated projects when the knowledge
// base has no Projects directory.
var DefaultProjectDirs = []string{
	"~/Projects",
	"~/Documents/Projects",
	"~/repositories",
	"~/code",
	"~/src",
}

// ProjectStatus describes one project directory.
type ProjectStatus struct {
	Name       string `json:"name"`
	Path       string `json:"path"`
	Integrated bool   `json:"integrated"`

	// Instructions is the assistant instructions file found in the project
	// (CLAUDE.md or CLAUDE.local.md), or empty.
	Instructions string `json:"instructions,omitempty"`
}

// ListProjects reads <kbRoot>/Projects. It returns nil without error when
// the directory does not exist.
func ListProjects(kbRoot string) ([]ProjectStatus, error) {
	dir := filepath.Join(kbRoot, ProjectsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	var out []ProjectStatus
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		out = append(out, projectStatus(filepath.Join(dir, e.Name())))
	}
	sortProjects(out)
	return out, nil
}

// ScanProjects lists integrated projects directly under each of dirs.
// Missing or unreadable dirs are skipped, as is the knowledge base itself.
func ScanProjects(dirs []string, kbRoot string) []ProjectStatus {
	var out []ProjectStatus
	seen := make(map[string]bool)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			p := filepath.Join(dir, e.Name())
			if p == filepath.Clean(kbRoot) || seen[p] {
				continue
			}
			seen[p] = true
			if st := projectStatus(p); st.Integrated {
				out = append(out, st)
			}
		}
	}
	sortProjects(out)
	return out
}

// ExpandProjectDirs resolves "~/" entries of dirs against home.
func ExpandProjectDirs(dirs []string, home string) []string {
	out := make([]string, len(dirs))
	for i, d := range dirs {
		out[i] = expandPath(d, home, os.Getenv)
	}
	return out
}

func projectStatus(dir string) ProjectStatus {
	st := ProjectStatus{Name: filepath.Base(dir), Path: dir}
	for _, f := range []string{ProjectConfigFile, legacyProjectConfigFile} {
		if fileExists(filepath.Join(dir, f)) {
			st.Integrated = true
			break
		}
	}
	for _, f := range []string{"CLAUDE.md", "CLAUDE.local.md"} {
		if fileExists(filepath.Join(dir, f)) {
			st.Instructions = f
			break
		}
	}
	return st
}

func sortProjects(ps []ProjectStatus) {
	sort.SliceStable(ps, func(i, j int) bool {
		return strings.ToLower(ps[i].Name) < strings.ToLower(ps[j].Name)
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
