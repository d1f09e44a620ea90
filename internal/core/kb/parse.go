package kb

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

const (
	// DescriptorFile lists the agents of a knowledge base.
	DescriptorFile = "AGENTS.md"

	// AgentsDir holds one directory per agent.
	AgentsDir = "AGENTS"

	learningFile   = "ContinuousLearning.md"
	learningHeader = "# Continuous Learning"

	agentHeadingLevel = 3
)

var namePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// descriptionSeparators split "Name - description" headings. The first
// separator found wins.
var descriptionSeparators = []string{" - ", " \u2013 ", " \u2014 "}

// Result is the outcome of parsing a knowledge base.
type Result struct {
	Root        string
	Registry    *Registry
	Diagnostics []Diagnostic
}

// Parser reads knowledge bases. The zero value is ready to use.
type Parser struct {
	Logger *zap.Logger
}

// Parse reads the knowledge base rooted at root with a default Parser.
func Parse(root string) (*Result, error) {
	return (&Parser{}).Parse(root)
}

// Parse reads the knowledge base rooted at root.
func (p *Parser) Parse(root string) (*Result, error) {
	return p.ParseFS(os.DirFS(root), root)
}

// ParseFS reads a knowledge base from fsys. root is used for error messages
// and the Result only.
func (p *Parser) ParseFS(fsys fs.FS, root string) (*Result, error) {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	raw, err := fs.ReadFile(fsys, DescriptorFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NoKnowledgeBaseError{Root: root, Descriptor: DescriptorFile}
		}
		return nil, fmt.Errorf("reading %s: %w", DescriptorFile, err)
	}

	entries, diags := scanDescriptor(string(raw))

	profiles := make([]Profile, 0, len(entries))
	for _, e := range entries {
		prof, d := loadProfile(fsys, e)
		diags = append(diags, d...)
		profiles = append(profiles, prof)
		log.Debug("agent parsed",
			zap.String("agent", prof.Name),
			zap.Int("line", prof.Line),
			zap.String("memory", prof.MemorySource))
	}

	for _, d := range diags {
		log.Debug("knowledge base diagnostic", zap.String("kind", string(d.Kind)), zap.String("detail", d.String()))
	}

	return &Result{
		Root:        root,
		Registry:    NewRegistry(profiles...),
		Diagnostics: diags,
	}, nil
}

// entry is an agent heading and the text under it.
type entry struct {
	name        string
	description string
	summary     string
	line        int
}

// scanDescriptor extracts agent entries from the descriptor in first
// occurrence order. A repeated name replaces the earlier entry in place.
func scanDescriptor(content string) ([]entry, []Diagnostic) {
	var (
		entries []entry
		diags   []Diagnostic
		seen    = make(map[string]int)
		current *entry
		body    []string
		fence   string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.summary = strings.TrimSpace(strings.Join(body, "\n"))
		key := strings.ToLower(current.name)
		if i, ok := seen[key]; ok {
			diags = append(diags, Diagnostic{
				Kind:    DiagDuplicate,
				File:    DescriptorFile,
				Line:    current.line,
				Agent:   current.name,
				Message: fmt.Sprintf("agent %q redefined; replaces definition at line %d", current.name, entries[i].line),
			})
			entries[i] = *current
		} else {
			seen[key] = len(entries)
			entries = append(entries, *current)
		}
		current = nil
		body = nil
	}

	content = strings.TrimPrefix(content, "\ufeff")
	for n, line := range strings.Split(content, "\n") {
		lineNo := n + 1
		line = strings.TrimRight(line, "\r")

		if f := fenceMarker(line); f != "" {
			if fence == "" {
				fence = f
			} else if f[0] == fence[0] && len(f) >= len(fence) {
				fence = ""
			}
			if current != nil {
				body = append(body, line)
			}
			continue
		}
		if fence != "" {
			if current != nil {
				body = append(body, line)
			}
			continue
		}

		level, text := headingLevel(line)
		if level == 0 || level > agentHeadingLevel {
			if current != nil {
				body = append(body, line)
			}
			continue
		}

		flush()
		if level < agentHeadingLevel {
			continue
		}

		name, desc, err := parseHeading(text)
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagMalformedHeading,
				File:    DescriptorFile,
				Line:    lineNo,
				Message: err.Error(),
			})
			continue
		}
		current = &entry{name: name, description: desc, line: lineNo}
	}
	flush()

	return entries, diags
}

// headingLevel returns the ATX heading level of line and its text, or 0.
func headingLevel(line string) (int, string) {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return 0, ""
	}
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, ""
	}
	rest := trimmed[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, ""
	}
	text := strings.TrimSpace(rest)
	// Optional closing sequence: "### Name ###".
	if stripped := strings.TrimRight(text, "#"); stripped != text && (stripped == "" || strings.HasSuffix(stripped, " ")) {
		text = strings.TrimSpace(stripped)
	}
	return level, text
}

// fenceMarker returns the fence run (``` or ~~~) opening line, or "".
func fenceMarker(line string) string {
	t := strings.TrimLeft(line, " ")
	for _, c := range []string{"`", "~"} {
		n := 0
		for n < len(t) && t[n:n+1] == c {
			n++
		}
		if n >= 3 {
			return t[:n]
		}
	}
	return ""
}

// parseHeading splits "Name - description" and validates the name token.
func parseHeading(text string) (name, desc string, err error) {
	name = text
	for _, sep := range descriptionSeparators {
		if i := strings.Index(text, sep); i >= 0 {
			name, desc = text[:i], text[i+len(sep):]
			break
		}
	}
	name = strings.Trim(strings.TrimSpace(name), "*`")
	desc = strings.TrimSpace(desc)

	if name == "" {
		return "", "", fmt.Errorf("heading %q has no agent name", text)
	}
	if !namePattern.MatchString(name) {
		return "", "", fmt.Errorf("heading %q: invalid agent name %q", text, name)
	}
	return name, desc, nil
}

// detailCandidates lists per-agent detail files in lookup order.
func detailCandidates(name string) []string {
	dir := path.Join(AgentsDir, name)
	return []string{
		path.Join(dir, name+".md"),
		path.Join(dir, name+"_memory.md"),
		path.Join(dir, "MEMORY.md"),
	}
}

// loadProfile resolves the memory for an entry. The first existing detail
// file wins; otherwise the descriptor summary is used.
func loadProfile(fsys fs.FS, e entry) (Profile, []Diagnostic) {
	prof := Profile{
		Name:        e.name,
		Description: e.description,
		Memory:      e.summary,
		Line:        e.line,
	}
	var diags []Diagnostic

	for _, candidate := range detailCandidates(e.name) {
		data, err := fs.ReadFile(fsys, candidate)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagDetailUnreadable,
				File:    candidate,
				Agent:   e.name,
				Message: fmt.Sprintf("cannot read detail file: %v; using descriptor summary", err),
			})
			break
		}

		content := string(data)
		meta, ok, ferr := splitFrontmatter(content)
		if ferr != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagInvalidFrontmatter,
				File:    candidate,
				Agent:   e.name,
				Message: ferr.Error(),
			})
		} else if ok {
			if prof.Description == "" {
				prof.Description = strings.TrimSpace(meta.Description)
			}
			prof.Tags = meta.Tags
		}

		prof.Memory = content
		prof.MemorySource = candidate
		break
	}

	if data, err := fs.ReadFile(fsys, metadataPath(e.name)); err == nil {
		meta, merr := parseMetadata(data)
		if merr != nil {
			diags = append(diags, Diagnostic{
				Kind:    DiagInvalidMetadata,
				File:    metadataPath(e.name),
				Agent:   e.name,
				Message: merr.Error(),
			})
		} else {
			prof.Meta = meta
			if prof.Description == "" {
				prof.Description = strings.TrimSpace(meta.Description)
			}
		}
	}

	learning := path.Join(AgentsDir, e.name, learningFile)
	if data, err := fs.ReadFile(fsys, learning); err == nil {
		if text := strings.TrimSpace(string(data)); text != "" {
			prof.Memory = strings.TrimRight(prof.Memory, "\n") + "\n\n" + learningHeader + "\n\n" + text + "\n"
		}
	}

	return prof, diags
}
