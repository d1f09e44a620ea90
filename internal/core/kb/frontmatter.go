package kb

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelim = "---"

// detailMeta is the optional YAML frontmatter of a detail file.
type detailMeta struct {
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags,omitempty"`
}

// splitFrontmatter parses a leading YAML block. The block opens when the
// first line is exactly "---" and closes at the next line that is exactly
// "---". ok is false when the content has no frontmatter.
func splitFrontmatter(content string) (meta detailMeta, ok bool, err error) {
	content = strings.TrimPrefix(content, "\ufeff")
	first, rest, found := strings.Cut(content, "\n")
	if !found || strings.TrimRight(first, "\r") != frontmatterDelim {
		return meta, false, nil
	}

	var body []string
	closed := false
	for _, line := range strings.Split(rest, "\n") {
		if strings.TrimRight(line, "\r") == frontmatterDelim {
			closed = true
			break
		}
		body = append(body, line)
	}
	if !closed {
		return meta, true, fmt.Errorf("no closing frontmatter delimiter")
	}

	if err := yaml.Unmarshal([]byte(strings.Join(body, "\n")), &meta); err != nil {
		return meta, true, fmt.Errorf("parsing frontmatter: %w", err)
	}
	return meta, true, nil
}
