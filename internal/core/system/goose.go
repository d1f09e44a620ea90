package system

// Goose implements the System interface for the Goose AI coding tool.
type Goose struct {
	BaseSystem
}

// NewGoose creates a configured Goose system.
func NewGoose() *Goose {
	return &Goose{BaseSystem{
		name:          "goose",
		displayName:   "Goose",
		binary:        "goose",
		detectPaths:   []string{"$XDG_CONFIG/goose"},
		installHint:   "see https://block.github.io/goose/docs/getting-started/installation",
		subcommand:    []string{"run", "--interactive"},
		autoAcceptEnv: []string{"GOOSE_MODE=auto"},
		promptFlag:    []string{"--text"},
	}}
}

// Command drops into a plain interactive session when there is no prompt;
// "goose run" requires input.
func (g *Goose) Command(inv Invocation) Command {
	if inv.Prompt != "" {
		return g.BaseSystem.Command(inv)
	}
	c := Command{Args: append([]string{"session"}, inv.ExtraArgs...)}
	if inv.AutoAccept {
		c.Env = append(c.Env, g.autoAcceptEnv...)
	}
	return c
}

func init() { Register(NewGoose()) }
