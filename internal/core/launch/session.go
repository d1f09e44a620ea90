// Package launch turns an agent profile into an assistant session: it
// assembles the context bundle and either prints it or starts the external
// assistant with it as the first prompt.
package launch

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/collabintel/ci/internal/core"
	"github.com/collabintel/ci/internal/core/kb"
)

// Request describes a session to prepare.
type Request struct {
	Agent         string
	ExtraContext  string
	MemoryPath    string // replaces the registry memory when set
	Command       core.Command
	Force         bool // --auto-accept
	Project       *core.ProjectConfig
	KnowledgeBase string

	// AgentInfo adds an "Agent Context Information" block to the bundle.
	AgentInfo bool
	WorkDir   string
}

// ProjectMeta is the project information passed to the session.
type ProjectMeta struct {
	Name          string
	Dir           string
	KnowledgeBase string
}

// Session is everything needed to start one assistant session.
type Session struct {
	ID          string
	Agent       string
	Description string
	Memory      string
	Extra       string
	Project     ProjectMeta
	Policy      core.Policy

	// Info is nil unless the request asked for the agent information block.
	Info *AgentInfo
}

// AgentInfo is what the agent is told about itself and its environment.
type AgentInfo struct {
	Started      time.Time
	WorkDir      string
	Capabilities []string
	UsageCount   int
	LastUsed     string
	HasMetadata  bool
}

// Prepare validates the request against the registry and builds a Session.
// No process is started.
func Prepare(reg *kb.Registry, req Request) (*Session, error) {
	prof, ok := reg.Lookup(req.Agent)
	if !ok {
		return nil, &AgentNotFoundError{Name: req.Agent, Available: reg.Names()}
	}

	memory := prof.Memory
	if req.MemoryPath != "" {
		data, err := os.ReadFile(req.MemoryPath)
		if err != nil {
			return nil, &MemorySourceUnreadableError{Path: req.MemoryPath, Err: err}
		}
		memory = string(data)
	}

	cmd := req.Command
	if cmd == "" {
		cmd = core.CommandLoad
	}

	s := &Session{
		ID:          uuid.NewString(),
		Agent:       prof.Name,
		Description: prof.Description,
		Memory:      memory,
		Extra:       strings.TrimSpace(req.ExtraContext),
		Policy: core.ResolvePolicy(core.PolicyRequest{
			Agent:   prof.Name,
			Command: cmd,
			Force:   req.Force,
			Project: req.Project,
		}),
		Project: ProjectMeta{KnowledgeBase: req.KnowledgeBase},
	}
	if req.Project != nil {
		s.Project.Name = req.Project.ProjectName
		s.Project.Dir = req.Project.Dir()
	}
	if req.AgentInfo {
		s.Info = &AgentInfo{Started: time.Now(), WorkDir: req.WorkDir}
		if m := prof.Meta; m != nil {
			s.Info.HasMetadata = true
			s.Info.Capabilities = m.Capabilities
			s.Info.UsageCount = m.UsageCount
			s.Info.LastUsed = m.LastUsed
		}
	}
	return s, nil
}

// Bundle is the text handed to the assistant: the memory, the optional agent
// information block, then any extra context under its own heading.
func (s *Session) Bundle() string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(s.Memory, "\n"))
	b.WriteString("\n")
	if s.Info != nil {
		b.WriteString("\n")
		s.writeInfo(&b)
	}
	if s.Extra != "" {
		b.WriteString("\n## Additional Context\n\n")
		b.WriteString(s.Extra)
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Session) writeInfo(b *strings.Builder) {
	fmt.Fprintf(b, "# Agent Context Information\n\n## Agent: %s\n\n", s.Agent)
	if s.Description != "" {
		fmt.Fprintf(b, "Role: %s\n\n", s.Description)
	}

	if len(s.Info.Capabilities) > 0 {
		b.WriteString("### Capabilities\n")
		for _, c := range s.Info.Capabilities {
			fmt.Fprintf(b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Session Information\n")
	fmt.Fprintf(b, "- Session ID: %s\n", s.ID)
	fmt.Fprintf(b, "- Started: %s\n", s.Info.Started.Format(time.RFC3339))
	if s.Info.HasMetadata {
		fmt.Fprintf(b, "- Previous sessions: %d\n", s.Info.UsageCount)
		last := s.Info.LastUsed
		if last == "" {
			last = "never"
		}
		fmt.Fprintf(b, "- Last used: %s\n", last)
	}
	b.WriteString("\n")

	b.WriteString("### Environment\n")
	if s.Project.KnowledgeBase != "" {
		fmt.Fprintf(b, "- Knowledge base: %s\n", s.Project.KnowledgeBase)
	}
	if s.Project.Name != "" {
		fmt.Fprintf(b, "- Project: %s\n", s.Project.Name)
	}
	if s.Info.WorkDir != "" {
		fmt.Fprintf(b, "- Working directory: %s\n", s.Info.WorkDir)
	}
}

// Env returns the variables exported to the assistant process.
func (s *Session) Env() []string {
	env := []string{
		"CI_AGENT_CONTEXT=true",
		"CI_AGENT_NAME=" + s.Agent,
		"CI_SESSION_ID=" + s.ID,
	}
	if s.Project.KnowledgeBase != "" {
		env = append(env, "CI_KNOWLEDGE_BASE="+s.Project.KnowledgeBase)
	}
	if s.Project.Name != "" {
		env = append(env, "CI_PROJECT_NAME="+s.Project.Name)
	}
	return env
}

// Title is the terminal title shown while the session runs.
func (s *Session) Title() string {
	return "CI Agent: " + s.Agent
}
