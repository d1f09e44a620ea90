package kb

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/tailscale/hujson"
)

const metadataFile = "metadata.json"

// Metadata is the optional AGENTS/<Name>/metadata.json sidecar kept by
// tools that track agent usage. Unknown fields are ignored.
type Metadata struct {
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	Capabilities []string          `json:"capabilities,omitempty"`
	CreatedAt    string            `json:"created_at,omitempty"`
	LastUsed     string            `json:"last_used,omitempty"`
	UsageCount   int               `json:"usage_count,omitempty"`
	Version      string            `json:"version,omitempty"`
	ToolkitPath  string            `json:"toolkit_path,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

func metadataPath(name string) string {
	return path.Join(AgentsDir, name, metadataFile)
}

// parseMetadata decodes a metadata sidecar. Comments and trailing commas
// are accepted.
func parseMetadata(data []byte) (*Metadata, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", metadataFile, err)
	}
	var m Metadata
	if err := json.Unmarshal(std, &m); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", metadataFile, err)
	}
	return &m, nil
}
