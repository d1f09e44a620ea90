package system

// Codex implements the System interface for the Codex CLI.
type Codex struct {
	BaseSystem
}

// NewCodex creates a configured Codex system.
func NewCodex() *Codex {
	return &Codex{BaseSystem{
		name:           "codex",
		displayName:    "Codex",
		binary:         "codex",
		detectPaths:    []string{"$CODEX_HOME", "~/.codex"},
		installHint:    "npm install -g @openai/codex",
		autoAcceptArgs: []string{"--full-auto"},
	}}
}

func init() { Register(NewCodex()) }
