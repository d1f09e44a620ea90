package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
}

func TestListProjects(t *testing.T) {
	kb := t.TempDir()
	projects := filepath.Join(kb, ProjectsDir)
	touch(t, filepath.Join(projects, "billing", ProjectConfigFile))
	touch(t, filepath.Join(projects, "billing", "CLAUDE.local.md"))
	touch(t, filepath.Join(projects, "Api", legacyProjectConfigFile))
	touch(t, filepath.Join(projects, "Api", "CLAUDE.md"))
	touch(t, filepath.Join(projects, "Api", "CLAUDE.local.md"))
	require.NoError(t, os.MkdirAll(filepath.Join(projects, "scratch"), 0o755))
	touch(t, filepath.Join(projects, "notes.txt"))

	got, err := ListProjects(kb)
	require.NoError(t, err)

	assert.Equal(t, []ProjectStatus{
		{Name: "Api", Path: filepath.Join(projects, "Api"), Integrated: true, Instructions: "CLAUDE.md"},
		{Name: "billing", Path: filepath.Join(projects, "billing"), Integrated: true, Instructions: "CLAUDE.local.md"},
		{Name: "scratch", Path: filepath.Join(projects, "scratch")},
	}, got)
}

func TestListProjects_NoDirectory(t *testing.T) {
	got, err := ListProjects(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestScanProjects_OnlyIntegrated(t *testing.T) {
	home := t.TempDir()
	code := filepath.Join(home, "code")
	src := filepath.Join(home, "src")
	kb := filepath.Join(code, "CollaborativeIntelligence")

	touch(t, filepath.Join(code, "web", ProjectConfigFile))
	touch(t, filepath.Join(src, "cli", legacyProjectConfigFile))
	touch(t, filepath.Join(src, "plain", "README.md"))
	touch(t, filepath.Join(kb, ProjectConfigFile))

	dirs := ExpandProjectDirs([]string{"~/code", "~/src", "~/missing"}, home)
	assert.Equal(t, []string{code, src, filepath.Join(home, "missing")}, dirs)

	got := ScanProjects(dirs, kb)
	var names []string
	for _, p := range got {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"cli", "web"}, names)
}
