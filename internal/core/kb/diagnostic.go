package kb

import (
	"errors"
	"fmt"
)

// ErrNoKnowledgeBase matches any *NoKnowledgeBaseError via errors.Is.
var ErrNoKnowledgeBase = errors.New("no knowledge base")

// NoKnowledgeBaseError is returned when the root exists but has no
// descriptor file.
type NoKnowledgeBaseError struct {
	Root       string
	Descriptor string
}

func (e *NoKnowledgeBaseError) Error() string {
	return fmt.Sprintf("no knowledge base at %s: %s not found", e.Root, e.Descriptor)
}

func (e *NoKnowledgeBaseError) Is(target error) bool { return target == ErrNoKnowledgeBase }

// DiagnosticKind classifies a non-fatal parse problem.
type DiagnosticKind string

const (
	DiagMalformedHeading   DiagnosticKind = "malformed-heading"
	DiagDuplicate          DiagnosticKind = "duplicate"
	DiagDetailUnreadable   DiagnosticKind = "detail-unreadable"
	DiagInvalidFrontmatter DiagnosticKind = "invalid-frontmatter"
	DiagInvalidMetadata    DiagnosticKind = "invalid-metadata"
)

// Diagnostic records something the parser skipped or overrode.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	File    string         `json:"file"`
	Line    int            `json:"line,omitempty"`
	Agent   string         `json:"agent,omitempty"`
	Message string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", d.File, d.Line, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.File, d.Message)
}
