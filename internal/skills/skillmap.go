// Package skills provides the skill-synonym vocabulary and normalization of
// free text against it.
package skills

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Map associates a canonical skill name with an ordered list of synonyms.
// Canonical names and synonyms compare case-insensitively; a canonical name
// is always a valid detector for its own skill.
type Map map[string][]string

// Load reads a skill map from a JSON file of the form
// {"Canonical Name": ["synonym", ...], ...}.
func Load(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills map %s: %w", path, err)
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse skills map %s: %w", path, err)
	}

	return m, nil
}

// LoadOrEmpty reads a skill map, degrading to an empty map when the file is
// missing. Normalization against an empty map is the identity transform, so a
// missing vocabulary is not fatal.
func LoadOrEmpty(path string) Map {
	if path == "" {
		return Map{}
	}
	m, err := Load(path)
	if err != nil {
		return Map{}
	}
	return m
}

// Canonicals returns the canonical skill names in sorted order. Normalization
// processes canonicals in this order so results are stable run-to-run.
func (m Map) Canonicals() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names
}
