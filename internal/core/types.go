// Package core provides the resolution logic for ci: locating the knowledge
// base, loading project settings and deciding the auto-accept policy.
// It has zero UI dependencies and is independently testable.
package core

import "path/filepath"

// Config represents the user configuration stored at ~/.ci/config.json.
type Config struct {
	Settings Settings `json:"settings"`
}

// Settings holds user launch preferences.
type Settings struct {
	System      string   `json:"system,omitempty"`      // launch target, e.g. "claude-code"
	ExtraArgs   []string `json:"extraArgs,omitempty"`   // appended to every launch
	WindowTitle *bool    `json:"windowTitle,omitempty"` // nil means enabled
}

// WindowTitleEnabled reports whether the terminal title should be managed.
func (s Settings) WindowTitleEnabled() bool {
	return s.WindowTitle == nil || *s.WindowTitle
}

// ProjectConfig is the project-level settings file (.ci-config.json).
// It is read-only: ci never writes it.
type ProjectConfig struct {
	ProjectName  string            `json:"project_name,omitempty"`
	CIVersion    string            `json:"ci_version,omitempty"`
	CIPath       string            `json:"ci_path,omitempty"`
	ActiveAgents []string          `json:"active_agents,omitempty"`
	AutoAccept   *AutoAcceptConfig `json:"auto_accept,omitempty"`
	Metadata     map[string]any    `json:"metadata,omitempty"`

	// Path is the settings file this config was read from. Not serialized.
	Path string `json:"-"`
}

// AutoAcceptConfig controls unattended launches.
type AutoAcceptConfig struct {
	AgentLoad     bool     `json:"agent_load,omitempty"`
	AgentActivate bool     `json:"agent_activate,omitempty"`
	Agents        []string `json:"agents,omitempty"`

	// Global is tri-state: nil (unset), true (force on), false (no effect).
	Global *bool `json:"global,omitempty"`
}

// Dir returns the directory containing the settings file.
func (p *ProjectConfig) Dir() string {
	if p == nil || p.Path == "" {
		return ""
	}
	return filepath.Dir(p.Path)
}

// Source identifies where a knowledge base location came from.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceEnv      Source = "env"
	SourceConfig   Source = "config"
	SourceSearch   Source = "search"
	SourceDefault  Source = "default"
)

// Candidate is one location the resolver tried.
type Candidate struct {
	Source Source `json:"source"`
	Path   string `json:"path"`
	Reason string `json:"reason,omitempty"` // why it was rejected; empty if accepted
}

// Location is a resolved knowledge base root.
type Location struct {
	Path   string `json:"path"`
	Source Source `json:"source"`
	Valid  bool   `json:"valid"`

	// Tried lists every candidate examined up to and including the winner.
	Tried []Candidate `json:"tried,omitempty"`
}

// Command names a launch category for the policy merger.
type Command string

const (
	CommandLoad     Command = "load"
	CommandActivate Command = "activate"
)

// PolicySource identifies which rule decided an auto-accept policy.
type PolicySource string

const (
	PolicyFromFlag      PolicySource = "flag"
	PolicyFromGlobal    PolicySource = "global"
	PolicyFromAgentList PolicySource = "agent-list"
	PolicyFromCategory  PolicySource = "category"
	PolicyFromDefault   PolicySource = "default"
)

// Policy is the resolved auto-accept decision.
type Policy struct {
	AutoAccept bool         `json:"autoAccept"`
	Source     PolicySource `json:"source"`
}
