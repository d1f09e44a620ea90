package system

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// BaseSystem provides default implementations for common system patterns.
// Individual systems embed this and override methods as needed.
type BaseSystem struct {
	name        string
	displayName string
	binary      string
	detectPaths []string // config dirs indicating installation (with ~ or $VAR)
	installHint string

	subcommand     []string // args placed before everything else
	autoAcceptArgs []string // added when the session runs unattended
	autoAcceptEnv  []string // KEY=VALUE added when the session runs unattended
	promptFlag     []string // args preceding the prompt; nil means positional
}

func (b *BaseSystem) Name() string        { return b.name }
func (b *BaseSystem) DisplayName() string { return b.displayName }
func (b *BaseSystem) Binary() string      { return b.binary }
func (b *BaseSystem) InstallHint() string { return b.installHint }

func (b *BaseSystem) SupportsAutoAccept() bool {
	return len(b.autoAcceptArgs) > 0 || len(b.autoAcceptEnv) > 0
}

func (b *BaseSystem) IsInstalled() bool {
	if _, err := lookPath(b.binary); err == nil {
		return true
	}
	for _, p := range b.detectPaths {
		if dirExists(expandPath(p)) {
			return true
		}
	}
	return false
}

// DetectPaths returns the detection paths (expanded).
func (b *BaseSystem) DetectPaths() []string {
	result := make([]string, len(b.detectPaths))
	for i, p := range b.detectPaths {
		result[i] = expandPath(p)
	}
	return result
}

// Command assembles: subcommand, auto-accept args, extra args, prompt.
func (b *BaseSystem) Command(inv Invocation) Command {
	var c Command
	c.Args = append(c.Args, b.subcommand...)
	if inv.AutoAccept {
		c.Args = append(c.Args, b.autoAcceptArgs...)
		c.Env = append(c.Env, b.autoAcceptEnv...)
	}
	c.Args = append(c.Args, inv.ExtraArgs...)
	if inv.Prompt != "" {
		c.Args = append(c.Args, b.promptFlag...)
		c.Args = append(c.Args, inv.Prompt)
	}
	return c
}

// dirExists returns true if the path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// expandPath expands ~ to the home directory and $VAR / $XDG_CONFIG to env values.
func expandPath(p string) string {
	if strings.Contains(p, "$XDG_CONFIG") {
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			home, _ := os.UserHomeDir()
			xdgConfig = filepath.Join(home, ".config")
		}
		p = strings.ReplaceAll(p, "$XDG_CONFIG", xdgConfig)
	}

	if strings.Contains(p, "$") {
		p = os.ExpandEnv(p)
	}

	if strings.HasPrefix(p, "~/") {
		home, _ := os.UserHomeDir()
		p = filepath.Join(home, p[2:])
	} else if p == "~" {
		home, _ := os.UserHomeDir()
		p = home
	}

	return p
}
