package launch

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAgentNotFound          = errors.New("agent not found")
	ErrMemorySourceUnreadable = errors.New("memory source unreadable")
	ErrLauncherMissing        = errors.New("launcher missing")
)

// AgentNotFoundError is returned before any process is started when the
// requested agent is not in the registry.
type AgentNotFoundError struct {
	Name      string
	Available []string
}

func (e *AgentNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("agent %q not found: knowledge base lists no agents", e.Name)
	}
	return fmt.Sprintf("agent %q not found; available: %s", e.Name, strings.Join(e.Available, ", "))
}

func (e *AgentNotFoundError) Is(target error) bool { return target == ErrAgentNotFound }

// MemorySourceUnreadableError is returned when an alternate memory file
// cannot be read.
type MemorySourceUnreadableError struct {
	Path string
	Err  error
}

func (e *MemorySourceUnreadableError) Error() string {
	return fmt.Sprintf("reading memory file %s: %v", e.Path, e.Err)
}

func (e *MemorySourceUnreadableError) Unwrap() error { return e.Err }

func (e *MemorySourceUnreadableError) Is(target error) bool {
	return target == ErrMemorySourceUnreadable
}

// LauncherMissingError is returned when the assistant binary is not on PATH.
type LauncherMissingError struct {
	System string
	Binary string
	Hint   string
}

func (e *LauncherMissingError) Error() string {
	msg := fmt.Sprintf("%s launcher %q not found on PATH", e.System, e.Binary)
	if e.Hint != "" {
		msg += "; install it with: " + e.Hint
	}
	return msg
}

func (e *LauncherMissingError) Is(target error) bool { return target == ErrLauncherMissing }
