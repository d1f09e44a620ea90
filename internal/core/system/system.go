// Package system defines the launch targets ci can start a session in.
//
// A System represents an interactive AI coding assistant (Claude Code, Codex,
// Gemini CLI, etc.). Each system knows its binary, how to pass an initial
// prompt and how to run unattended. Systems are self-contained Go structs
// registered at init time.
package system

import (
	"fmt"
	"strings"
)

// System defines how ci starts an interactive assistant.
type System interface {
	// Identity
	Name() string        // machine name: "claude-code", "codex"
	DisplayName() string // human name: "Claude Code", "Codex"

	// Detection
	Binary() string    // executable looked up on PATH
	IsInstalled() bool // binary on PATH or config directory present
	InstallHint() string

	// Launch
	SupportsAutoAccept() bool
	Command(inv Invocation) Command
}

// Invocation is what the launcher asks a system to run.
type Invocation struct {
	Prompt     string
	AutoAccept bool
	ExtraArgs  []string
}

// Command is the argv and extra environment for a launch.
type Command struct {
	Args []string // excluding the binary
	Env  []string // KEY=VALUE pairs added to the inherited environment
}

// --- Registry ---

var systems []System

// Register adds a system to the global registry.
func Register(s System) { systems = append(systems, s) }

// All returns all registered systems.
func All() []System { return systems }

// ByName returns the system with the given machine name, if registered.
func ByName(name string) (System, bool) {
	for _, s := range systems {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// Lookup is ByName with an error listing the valid names.
func Lookup(name string) (System, error) {
	if s, ok := ByName(name); ok {
		return s, nil
	}
	return nil, fmt.Errorf("unknown system %q; available: %s", name, strings.Join(Names(systems), ", "))
}

// Detect returns all installed systems.
func Detect() []System {
	var detected []System
	for _, s := range systems {
		if s.IsInstalled() {
			detected = append(detected, s)
		}
	}
	return detected
}

// Names returns the machine names of the given systems.
func Names(systems []System) []string {
	names := make([]string, len(systems))
	for i, s := range systems {
		names[i] = s.Name()
	}
	return names
}
