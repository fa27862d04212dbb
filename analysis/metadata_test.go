package analysis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMetadataFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analyses:
  1:
    title: "Custom Activity Title"
  4:
    solution: "Custom plan"
pincodes:
  "380099": "New Locality"
languages:
  Goa: Konkani
`), 0o644))

	meta := DefaultMetadata()
	pincodes := DefaultPincodeNames()
	languages := DefaultLanguages()
	require.NoError(t, LoadMetadataFile(path, meta, pincodes, languages))

	// Overridden fields replace defaults, untouched fields survive.
	assert.Equal(t, "Custom Activity Title", meta[1].Title)
	assert.NotEmpty(t, meta[1].Problem)
	assert.Equal(t, "Custom plan", meta[4].Solution)
	assert.Equal(t, "The Ghost Child Indicator", meta[4].Title)

	assert.Equal(t, "New Locality", pincodes["380099"])
	assert.Equal(t, "Kalupur", pincodes["380002"])
	assert.Equal(t, "Konkani", languages["Goa"])
}

func TestLoadMetadataFileErrors(t *testing.T) {
	meta := DefaultMetadata()
	assert.Error(t, LoadMetadataFile(filepath.Join(t.TempDir(), "missing.yaml"), meta, nil, nil))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("analyses: ["), 0o644))
	assert.Error(t, LoadMetadataFile(path, meta, nil, nil))
}

func TestDefaultMetadataCoversAllIdeas(t *testing.T) {
	meta := DefaultMetadata()
	for id := 1; id <= 10; id++ {
		m, ok := meta[id]
		require.True(t, ok, "id %d", id)
		assert.NotEmpty(t, m.Title, "id %d", id)
		assert.NotEmpty(t, m.Problem, "id %d", id)
		assert.NotEmpty(t, m.Solution, "id %d", id)
	}
}
