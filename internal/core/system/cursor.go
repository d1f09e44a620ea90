package system

// Cursor implements the System interface for the Cursor agent CLI.
type Cursor struct {
	BaseSystem
}

// NewCursor creates a configured Cursor system.
func NewCursor() *Cursor {
	return &Cursor{BaseSystem{
		name:           "cursor",
		displayName:    "Cursor",
		binary:         "cursor-agent",
		detectPaths:    []string{"~/.cursor"},
		installHint:    "curl https://cursor.com/install -fsS | bash",
		autoAcceptArgs: []string{"--force"},
	}}
}

func init() { Register(NewCursor()) }
