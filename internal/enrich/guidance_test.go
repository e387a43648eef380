package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridline-labs/gridline/internal/model"
)

func TestDefaultGuidanceCoversAllDomains(t *testing.T) {
	t.Parallel()

	docs := DefaultGuidance()
	for _, d := range model.AllDomains {
		assert.NotEmpty(t, docs[d], "no guidance for %s", d)
	}

	// Callers get a copy.
	docs[model.DomainQB] = "mutated"
	assert.NotEqual(t, "mutated", DefaultGuidance()[model.DomainQB])
}

func TestLoadGuidanceOverrides(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "guidance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("qb: \"Custom quarterback guidance.\"\n"), 0o644))

	docs, err := LoadGuidance(path)
	require.NoError(t, err)
	assert.Equal(t, "Custom quarterback guidance.", docs[model.DomainQB])
	// Untouched domains keep defaults.
	assert.Equal(t, DefaultGuidance()[model.DomainHB], docs[model.DomainHB])
}

func TestLoadGuidanceMissingFile(t *testing.T) {
	t.Parallel()

	docs, err := LoadGuidance(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGuidance(), docs)
}

func TestLoadGuidanceUnknownDomain(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "guidance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("special_teams: \"nope\"\n"), 0o644))

	_, err := LoadGuidance(path)
	assert.Error(t, err)
}

func TestLoadGuidanceMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "guidance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("qb: [unterminated\n"), 0o644))

	_, err := LoadGuidance(path)
	assert.Error(t, err)
}
