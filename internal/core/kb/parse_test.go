package kb

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const sampleDescriptor = `# Collaborative Intelligence Agents

Intro text that belongs to no agent.

## Core Agents

### Athena - Memory systems specialist
Keeps the shared memory coherent.

### ProjectArchitect - Designs project structure
Plans layouts.

#### Responsibilities
- structure
- naming

## Utility

### Developer
Writes code.
`

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func parseMap(t *testing.T, files map[string]string) *Result {
	t.Helper()
	res, err := (&Parser{}).ParseFS(mapFS(files), "/kb")
	if err != nil {
		t.Fatalf("ParseFS() error: %v", err)
	}
	return res
}

func TestParse_HeadingsAndSummaries(t *testing.T) {
	res := parseMap(t, map[string]string{DescriptorFile: sampleDescriptor})

	want := []Profile{
		{Name: "Athena", Description: "Memory systems specialist", Memory: "Keeps the shared memory coherent.", Index: 0, Line: 7},
		{Name: "ProjectArchitect", Description: "Designs project structure", Memory: "Plans layouts.\n\n#### Responsibilities\n- structure\n- naming", Index: 1, Line: 10},
		{Name: "Developer", Memory: "Writes code.", Index: 2, Line: 19},
	}
	if diff := cmp.Diff(want, res.Registry.Profiles()); diff != "" {
		t.Errorf("profiles mismatch (-want +got):\n%s", diff)
	}
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics: %v", res.Diagnostics)
	}
}

func TestParse_Deterministic(t *testing.T) {
	files := map[string]string{
		DescriptorFile:                        sampleDescriptor + "\n### Athena - again\nsecond\n### bad name here\n",
		"AGENTS/Developer/Developer.md":        "# Developer memory\n",
		"AGENTS/Athena/ContinuousLearning.md": "learned things",
	}

	first := parseMap(t, files)
	second := parseMap(t, files)

	if diff := cmp.Diff(first.Registry.Profiles(), second.Registry.Profiles()); diff != "" {
		t.Errorf("registries differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Diagnostics, second.Diagnostics); diff != "" {
		t.Errorf("diagnostics differ between runs (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(first.Registry.Names(), second.Registry.Names()); diff != "" {
		t.Errorf("order differs between runs: %s", diff)
	}
}

func TestParse_DuplicateLastWinsKeepsPosition(t *testing.T) {
	res := parseMap(t, map[string]string{DescriptorFile: `### Athena - first
old body
### Developer - dev
dev body
### Athena - second
new body
`})

	if got := res.Registry.Names(); !cmp.Equal(got, []string{"Athena", "Developer"}) {
		t.Errorf("Names() = %v", got)
	}
	p, ok := res.Registry.Lookup("Athena")
	if !ok {
		t.Fatal("Athena not found")
	}
	if p.Description != "second" || p.Memory != "new body" {
		t.Errorf("duplicate should reflect second occurrence, got %+v", p)
	}
	if p.Index != 0 {
		t.Errorf("Index = %d, want first-occurrence index 0", p.Index)
	}
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagDuplicate {
		t.Fatalf("expected one duplicate diagnostic, got %v", res.Diagnostics)
	}
	if res.Diagnostics[0].Line != 5 {
		t.Errorf("duplicate diagnostic line = %d, want 5", res.Diagnostics[0].Line)
	}
}

func TestParse_DuplicateIgnoresCase(t *testing.T) {
	res := parseMap(t, map[string]string{DescriptorFile: "### athena - lower\n### Athena - upper\n"})
	if res.Registry.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", res.Registry.Len())
	}
	p, _ := res.Registry.Lookup("ATHENA")
	if p.Name != "Athena" || p.Description != "upper" {
		t.Errorf("got %+v", p)
	}
}

func TestParse_MalformedHeadingSkipped(t *testing.T) {
	res := parseMap(t, map[string]string{DescriptorFile: `### Athena - ok
body
### !!! - broken
ignored body
### Two Words - also broken
### Developer - still parsed
dev
`})

	if got := res.Registry.Names(); !cmp.Equal(got, []string{"Athena", "Developer"}) {
		t.Errorf("Names() = %v, want [Athena Developer]", got)
	}
	var lines []int
	for _, d := range res.Diagnostics {
		if d.Kind != DiagMalformedHeading {
			t.Errorf("unexpected diagnostic kind %q", d.Kind)
		}
		lines = append(lines, d.Line)
	}
	if !cmp.Equal(lines, []int{3, 5}) {
		t.Errorf("diagnostic lines = %v, want [3 5]", lines)
	}
	p, _ := res.Registry.Lookup("Athena")
	if p.Memory != "body" {
		t.Errorf("malformed heading must end the previous body, got %q", p.Memory)
	}
}

func TestParse_HeadingsInsideCodeFencesIgnored(t *testing.T) {
	res := parseMap(t, map[string]string{DescriptorFile: "### Athena - a\n```md\n### NotAnAgent - x\n```\n### Developer\n"})
	if got := res.Registry.Names(); !cmp.Equal(got, []string{"Athena", "Developer"}) {
		t.Errorf("Names() = %v", got)
	}
	p, _ := res.Registry.Lookup("Athena")
	if !strings.Contains(p.Memory, "### NotAnAgent") {
		t.Errorf("fenced content should stay in the body, got %q", p.Memory)
	}
}

func TestParse_DashVariants(t *testing.T) {
	res := parseMap(t, map[string]string{DescriptorFile: "### Athena \u2014 em\n### Hermes \u2013 en\n### **Bold** - starred\n"})
	want := map[string]string{"Athena": "em", "Hermes": "en", "Bold": "starred"}
	for name, desc := range want {
		p, ok := res.Registry.Lookup(name)
		if !ok {
			t.Errorf("%s not found", name)
			continue
		}
		if p.Description != desc {
			t.Errorf("%s description = %q, want %q", name, p.Description, desc)
		}
	}
}

func TestParse_DetailFileOrder(t *testing.T) {
	res := parseMap(t, map[string]string{
		DescriptorFile:                         "### Athena - a\nsummary\n### Developer - d\nsummary\n### Tester - t\nsummary\n",
		"AGENTS/Athena/Athena.md":              "primary",
		"AGENTS/Athena/Athena_memory.md":       "secondary",
		"AGENTS/Developer/Developer_memory.md": "dev memory",
		"AGENTS/Tester/MEMORY.md":              "tester memory",
	})

	tests := []struct {
		name, memory, source string
	}{
		{"Athena", "primary", "AGENTS/Athena/Athena.md"},
		{"Developer", "dev memory", "AGENTS/Developer/Developer_memory.md"},
		{"Tester", "tester memory", "AGENTS/Tester/MEMORY.md"},
	}
	for _, tt := range tests {
		p, ok := res.Registry.Lookup(tt.name)
		if !ok {
			t.Fatalf("%s not found", tt.name)
		}
		if p.Memory != tt.memory || p.MemorySource != tt.source {
			t.Errorf("%s: memory=%q source=%q, want %q from %q", tt.name, p.Memory, p.MemorySource, tt.memory, tt.source)
		}
		if !p.HasDetail() {
			t.Errorf("%s: HasDetail() = false", tt.name)
		}
	}
}

func TestParse_ContinuousLearningAppended(t *testing.T) {
	res := parseMap(t, map[string]string{
		DescriptorFile:                       "### Athena - a\n",
		"AGENTS/Athena/Athena.md":             "# Athena\n\nCore memory.\n",
		"AGENTS/Athena/ContinuousLearning.md": "Lesson one.\n",
	})
	p, _ := res.Registry.Lookup("Athena")
	want := "# Athena\n\nCore memory.\n\n# Continuous Learning\n\nLesson one.\n"
	if p.Memory != want {
		t.Errorf("Memory = %q, want %q", p.Memory, want)
	}
}

func TestParse_FrontmatterFillsDescription(t *testing.T) {
	detail := "---\nname: Athena\ndescription: From frontmatter\n---\n# Athena\n"
	res := parseMap(t, map[string]string{
		DescriptorFile:            "### Athena\n### Hermes - heading wins\n",
		"AGENTS/Athena/Athena.md": detail,
		"AGENTS/Hermes/Hermes.md": "---\ndescription: ignored\n---\nbody\n",
	})

	athena, _ := res.Registry.Lookup("Athena")
	if athena.Description != "From frontmatter" {
		t.Errorf("Description = %q", athena.Description)
	}
	if athena.Memory != detail {
		t.Errorf("memory should be the full detail file, got %q", athena.Memory)
	}
	hermes, _ := res.Registry.Lookup("Hermes")
	if hermes.Description != "heading wins" {
		t.Errorf("Description = %q", hermes.Description)
	}
}

func TestParse_InvalidFrontmatterIsDiagnostic(t *testing.T) {
	res := parseMap(t, map[string]string{
		DescriptorFile:            "### Athena - a\n",
		"AGENTS/Athena/Athena.md": "---\ndescription: [unclosed\n---\nbody\n",
	})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagInvalidFrontmatter {
		t.Fatalf("expected an invalid-frontmatter diagnostic, got %v", res.Diagnostics)
	}
	p, _ := res.Registry.Lookup("Athena")
	if p.MemorySource == "" {
		t.Error("detail file should still be used as memory")
	}
}

func TestParse_NoDescriptor(t *testing.T) {
	_, err := (&Parser{}).ParseFS(mapFS(map[string]string{"README.md": "hi"}), "/kb")

	var nkb *NoKnowledgeBaseError
	if !errors.As(err, &nkb) {
		t.Fatalf("expected *NoKnowledgeBaseError, got %v", err)
	}
	if nkb.Root != "/kb" || nkb.Descriptor != DescriptorFile {
		t.Errorf("got %+v", nkb)
	}
	if !errors.Is(err, ErrNoKnowledgeBase) {
		t.Error("errors.Is(err, ErrNoKnowledgeBase) should be true")
	}
}

func TestParse_FromDisk(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, DescriptorFile), []byte("### Athena - a\nsummary\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := filepath.Join(root, AgentsDir, "Athena")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "Athena.md"), []byte("disk memory"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := Parse(root)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if res.Root != root {
		t.Errorf("Root = %q", res.Root)
	}
	p, _ := res.Registry.Lookup("Athena")
	if p.Memory != "disk memory" {
		t.Errorf("Memory = %q", p.Memory)
	}
}

func TestParseHeading(t *testing.T) {
	tests := []struct {
		text    string
		name    string
		desc    string
		wantErr bool
	}{
		{"Athena - Memory", "Athena", "Memory", false},
		{"Athena", "Athena", "", false},
		{"Project_Architect-2 - x - y", "Project_Architect-2", "x - y", false},
		{"`Coder` - code", "Coder", "code", false},
		{" - no name", "", "", true},
		{"9Lives - starts with digit", "", "", true},
		{"Two Words", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, desc, err := parseHeading(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseHeading(%q) error = %v, wantErr %v", tt.text, err, tt.wantErr)
			}
			if name != tt.name || desc != tt.desc {
				t.Errorf("parseHeading(%q) = %q, %q", tt.text, name, desc)
			}
		})
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		line  string
		level int
		text  string
	}{
		{"### Athena - a", 3, "Athena - a"},
		{"   ### Indented", 3, "Indented"},
		{"    ### code block", 0, ""},
		{"###NoSpace", 0, ""},
		{"## Section ##", 2, "Section"},
		{"####### seven", 0, ""},
		{"plain", 0, ""},
	}
	for _, tt := range tests {
		level, text := headingLevel(tt.line)
		if level != tt.level || text != tt.text {
			t.Errorf("headingLevel(%q) = %d, %q; want %d, %q", tt.line, level, text, tt.level, tt.text)
		}
	}
}

func TestParse_DashRuleIsNotFrontmatter(t *testing.T) {
	detail := "-----\n# Athena\n\nCore memory.\n"
	res := parseMap(t, map[string]string{
		DescriptorFile:            "### Athena - a\n",
		"AGENTS/Athena/Athena.md": detail,
	})
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}
	p, _ := res.Registry.Lookup("Athena")
	if p.Memory != detail {
		t.Errorf("Memory = %q, want %q", p.Memory, detail)
	}
}

func TestSplitFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantOK  bool
		wantErr bool
		want    detailMeta
	}{
		{name: "none", content: "# Athena\n"},
		{name: "long rule", content: "-----\n# Athena\n"},
		{name: "dashes with text", content: "--- draft\n# Athena\n"},
		{name: "only delimiter", content: "---"},
		{
			name:    "crlf",
			content: "---\r\ndescription: x\r\ntags: [a, b]\r\n---\r\nbody\r\n",
			wantOK:  true,
			want:    detailMeta{Description: "x", Tags: []string{"a", "b"}},
		},
		{
			name:    "bom",
			content: "\uFEFF---\ndescription: y\n---\n",
			wantOK:  true,
			want:    detailMeta{Description: "y"},
		},
		{
			name:    "closing must be exact",
			content: "---\ndescription: z\n----\nbody\n",
			wantOK:  true,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := splitFrontmatter(tt.content)
			if ok != tt.wantOK || (err != nil) != tt.wantErr {
				t.Fatalf("ok=%v err=%v, want ok=%v wantErr=%v", ok, err, tt.wantOK, tt.wantErr)
			}
			if !tt.wantErr {
				if diff := cmp.Diff(tt.want, got); diff != "" {
					t.Errorf("meta mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestParse_FrontmatterTags(t *testing.T) {
	res := parseMap(t, map[string]string{
		DescriptorFile:            "### Athena - a\n",
		"AGENTS/Athena/Athena.md": "---\ntags: [memory, review]\n---\nbody\n",
	})
	p, _ := res.Registry.Lookup("Athena")
	if diff := cmp.Diff([]string{"memory", "review"}, p.Tags); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Metadata(t *testing.T) {
	res := parseMap(t, map[string]string{
		DescriptorFile: "### Athena\n### Hermes - heading wins\n",
		"AGENTS/Athena/metadata.json": `{
			// written by the agent tracker
			"name": "Athena",
			"description": "Memory systems specialist",
			"capabilities": ["memory", "review"],
			"usage_count": 3,
			"last_used": "2026-01-02T03:04:05Z",
			"version": "1.0.0",
			"unknown": true,
		}`,
		"AGENTS/Hermes/metadata.json": `{"description": "ignored"}`,
	})
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Diagnostics)
	}

	athena, _ := res.Registry.Lookup("Athena")
	want := &Metadata{
		Name:         "Athena",
		Description:  "Memory systems specialist",
		Capabilities: []string{"memory", "review"},
		UsageCount:   3,
		LastUsed:     "2026-01-02T03:04:05Z",
		Version:      "1.0.0",
	}
	if diff := cmp.Diff(want, athena.Meta); diff != "" {
		t.Errorf("Meta mismatch (-want +got):\n%s", diff)
	}
	if athena.Description != "Memory systems specialist" {
		t.Errorf("Description = %q", athena.Description)
	}

	hermes, _ := res.Registry.Lookup("Hermes")
	if hermes.Description != "heading wins" {
		t.Errorf("Description = %q", hermes.Description)
	}
}

func TestParse_InvalidMetadataIsDiagnostic(t *testing.T) {
	res := parseMap(t, map[string]string{
		DescriptorFile:                "### Athena - a\nSummary.\n",
		"AGENTS/Athena/metadata.json": `{"usage_count": "many"}`,
	})
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != DiagInvalidMetadata {
		t.Fatalf("expected an invalid-metadata diagnostic, got %v", res.Diagnostics)
	}
	p, _ := res.Registry.Lookup("Athena")
	if p.Meta != nil || p.Memory != "Summary." {
		t.Errorf("profile should fall back cleanly: meta=%v memory=%q", p.Meta, p.Memory)
	}
}
