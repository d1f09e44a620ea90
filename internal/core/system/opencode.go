package system

// OpenCode implements the System interface for the OpenCode AI coding tool.
type OpenCode struct {
	BaseSystem
}

// NewOpenCode creates a configured OpenCode system.
func NewOpenCode() *OpenCode {
	return &OpenCode{BaseSystem{
		name:        "opencode",
		displayName: "OpenCode",
		binary:      "opencode",
		detectPaths: []string{"$XDG_CONFIG/opencode"},
		installHint: "npm install -g opencode-ai",
		promptFlag:  []string{"--prompt"},
	}}
}

// OpenCode has no unattended flag; permissions live in opencode.json.

func init() { Register(NewOpenCode()) }
