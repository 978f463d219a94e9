package skills

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSkillsMap(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skills_map.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSkillsMap(t, `{"Active Directory": ["AD", "azure ad"], "Terraform": ["tf"]}`)

	m, err := Load(path)
	require.NoError(t, err)

	assert.Len(t, m, 2)
	assert.Equal(t, []string{"AD", "azure ad"}, m["Active Directory"])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeSkillsMap(t, `{not json`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadOrEmpty(t *testing.T) {
	t.Run("missing file degrades to empty map", func(t *testing.T) {
		m := LoadOrEmpty(filepath.Join(t.TempDir(), "nope.json"))
		assert.Empty(t, m)
	})

	t.Run("empty path degrades to empty map", func(t *testing.T) {
		assert.Empty(t, LoadOrEmpty(""))
	})

	t.Run("valid file loads", func(t *testing.T) {
		path := writeSkillsMap(t, `{"Go": ["golang"]}`)
		m := LoadOrEmpty(path)
		assert.Equal(t, []string{"golang"}, m["Go"])
	})
}

func TestCanonicalsSorted(t *testing.T) {
	m := Map{
		"terraform":        {"tf"},
		"Active Directory": {"AD"},
		"Kubernetes":       {"k8s"},
	}

	assert.Equal(t, []string{"Active Directory", "Kubernetes", "terraform"}, m.Canonicals())
}
