package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPathNotFound matches any *PathNotFoundError via errors.Is.
var ErrPathNotFound = errors.New("knowledge base not found")

// PathNotFoundError is returned when no candidate location is a usable
// directory. Candidates are listed in the order they were tried.
type PathNotFoundError struct {
	Candidates []Candidate
}

func (e *PathNotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return "knowledge base not found: no candidate locations"
	}
	var b strings.Builder
	b.WriteString("knowledge base not found; tried:")
	for _, c := range e.Candidates {
		fmt.Fprintf(&b, "\n  [%s] %s (%s)", c.Source, c.Path, c.Reason)
	}
	return b.String()
}

func (e *PathNotFoundError) Is(target error) bool { return target == ErrPathNotFound }
