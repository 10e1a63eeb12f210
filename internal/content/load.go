package content

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a content file, applies tuning defaults, builds the lookup
// indexes, and validates referential integrity. Load errors are fatal at
// startup; the session never sees a half-built content set.
func Load(path string) (*Content, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content: %w", err)
	}
	var c Content
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse content %s: %w", path, err)
	}
	if err := c.Finalize(); err != nil {
		return nil, err
	}
	return &c, nil
}
