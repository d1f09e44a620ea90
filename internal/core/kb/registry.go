// Package kb parses a Collaborative Intelligence knowledge base into an
// immutable registry of agent profiles.
//
// A knowledge base root holds an AGENTS.md descriptor listing agents as
// level-3 headings ("### Athena - Memory systems specialist") and an
// AGENTS/<Name>/ directory per agent with its detail file.
package kb

import (
	"sort"
	"strings"
)

// Profile is one agent entry.
type Profile struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Memory      string `json:"-"`

	// MemorySource is the detail file the memory came from, relative to the
	// knowledge base root. Empty when the descriptor summary is used.
	MemorySource string `json:"memorySource,omitempty"`

	// Tags come from the detail file frontmatter.
	Tags []string `json:"tags,omitempty"`

	// Meta is the metadata.json sidecar, when present and valid.
	Meta *Metadata `json:"metadata,omitempty"`

	// Index is the position of the first occurrence in the descriptor.
	Index int `json:"index"`
	Line  int `json:"line,omitempty"`
}

// HasDetail reports whether the memory came from a per-agent detail file.
func (p Profile) HasDetail() bool { return p.MemorySource != "" }

// Registry is an insertion-ordered, read-only set of profiles.
type Registry struct {
	profiles []Profile
	byName   map[string]int
	byFold   map[string]int
}

// NewRegistry builds a registry. When two profiles share a name (ignoring
// case) the later one replaces the earlier but keeps its position.
func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{
		byName: make(map[string]int, len(profiles)),
		byFold: make(map[string]int, len(profiles)),
	}
	for _, p := range profiles {
		key := strings.ToLower(p.Name)
		if i, ok := r.byFold[key]; ok {
			delete(r.byName, r.profiles[i].Name)
			p.Index = i
			r.profiles[i] = p
			r.byName[p.Name] = i
			continue
		}
		p.Index = len(r.profiles)
		r.byFold[key] = p.Index
		r.byName[p.Name] = p.Index
		r.profiles = append(r.profiles, p)
	}
	return r
}

// Lookup finds a profile by exact name, then case-insensitively.
func (r *Registry) Lookup(name string) (Profile, bool) {
	if r == nil {
		return Profile{}, false
	}
	if i, ok := r.byName[name]; ok {
		return r.profiles[i], true
	}
	if i, ok := r.byFold[strings.ToLower(name)]; ok {
		return r.profiles[i], true
	}
	return Profile{}, false
}

// Len returns the number of profiles.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.profiles)
}

// Names returns profile names in insertion order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.profiles))
	for i, p := range r.profiles {
		names[i] = p.Name
	}
	return names
}

// Profiles returns a copy of all profiles in insertion order.
func (r *Registry) Profiles() []Profile {
	if r == nil {
		return nil
	}
	out := make([]Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Sorted returns a copy of all profiles ordered by name, ignoring case.
func (r *Registry) Sorted() []Profile {
	out := r.Profiles()
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}
