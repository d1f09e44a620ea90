package system

// GitHubCopilot implements the System interface for the GitHub Copilot CLI.
type GitHubCopilot struct {
	BaseSystem
}

// NewGitHubCopilot creates a configured GitHub Copilot system.
func NewGitHubCopilot() *GitHubCopilot {
	return &GitHubCopilot{BaseSystem{
		name:           "github-copilot",
		displayName:    "GitHub Copilot",
		binary:         "copilot",
		detectPaths:    []string{"~/.copilot"},
		installHint:    "npm install -g @github/copilot",
		autoAcceptArgs: []string{"--allow-all-tools"},
		promptFlag:     []string{"--interactive"},
	}}
}

func init() { Register(NewGitHubCopilot()) }
