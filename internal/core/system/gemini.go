package system

// GeminiCLI implements the System interface for the Gemini CLI.
type GeminiCLI struct {
	BaseSystem
}

// NewGeminiCLI creates a configured Gemini CLI system.
func NewGeminiCLI() *GeminiCLI {
	return &GeminiCLI{BaseSystem{
		name:           "gemini-cli",
		displayName:    "Gemini CLI",
		binary:         "gemini",
		detectPaths:    []string{"~/.gemini"},
		installHint:    "npm install -g @google/gemini-cli",
		autoAcceptArgs: []string{"--yolo"},
		promptFlag:     []string{"--prompt-interactive"},
	}}
}

// A plain positional prompt makes Gemini CLI exit after one answer, so the
// prompt goes through --prompt-interactive.

func init() { Register(NewGeminiCLI()) }
