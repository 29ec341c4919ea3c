package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTables(t *testing.T) {
	tables := Default()

	assert.Equal(t, "react", tables.SkillAliases["reactjs"])
	assert.Equal(t, "react", tables.SkillAliases["react.js"])
	assert.Equal(t, "go", tables.SkillAliases["golang"])

	require.NotEmpty(t, tables.VerbSwaps)
	assert.Equal(t, VerbSwap{Weak: "worked on", Strong: "built"}, tables.VerbSwaps[0])
	assert.Equal(t, VerbSwap{Weak: "helped with", Strong: "contributed to"}, tables.VerbSwaps[1])

	kinds := make([]string, 0, len(tables.Headings))
	for _, g := range tables.Headings {
		kinds = append(kinds, g.Kind)
	}
	assert.Equal(t, []string{"experience", "education", "skills", "projects", "summary"}, kinds)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	tables, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), tables)
}

func TestLoadOverrideReplacesTables(t *testing.T) {
	path := writeOverride(t, `{
		"skill_aliases": {"es": "elasticsearch"},
		"verb_swaps": [{"weak": "dealt with", "strong": "handled"}]
	}`)

	tables, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"es": "elasticsearch"}, tables.SkillAliases)
	assert.Equal(t, []VerbSwap{{Weak: "dealt with", Strong: "handled"}}, tables.VerbSwaps)

	// Untouched tables keep defaults
	assert.Equal(t, Default().Headings, tables.Headings)
	assert.Equal(t, Default().KnownSkills, tables.KnownSkills)
}

func TestLoadRejectsInvalidOverride(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown field", `{"verbs": []}`},
		{"bad heading kind", `{"headings": [{"kind": "hobbies", "synonyms": ["hobbies"]}]}`},
		{"swap missing strong", `{"verb_swaps": [{"weak": "worked on"}]}`},
		{"empty alias value", `{"skill_aliases": {"js": ""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeOverride(t, tt.content)
			_, err := Load(path)
			require.Error(t, err)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var lerr *LoadError
	assert.ErrorAs(t, err, &lerr)
}

func writeOverride(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
