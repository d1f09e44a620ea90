package system

// ClaudeCode implements the System interface for Claude Code.
type ClaudeCode struct {
	BaseSystem
}

// NewClaudeCode creates a configured Claude Code system. The initial prompt
// is passed as a positional argument.
func NewClaudeCode() *ClaudeCode {
	return &ClaudeCode{BaseSystem{
		name:           "claude-code",
		displayName:    "Claude Code",
		binary:         "claude",
		detectPaths:    []string{"~/.claude"},
		installHint:    "npm install -g @anthropic-ai/claude-code",
		autoAcceptArgs: []string{"--dangerously-skip-permissions"},
	}}
}

func init() { Register(NewClaudeCode()) }
