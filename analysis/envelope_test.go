package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleFillsMetadata(t *testing.T) {
	a := testAnalyzer(WithMetadata(map[int]IdeaMetadata{
		3: {Title: "T", Problem: "P", Solution: "S", ReasonsHigh: "H", ReasonsLow: "L"},
	}))

	env := a.assemble(3, []string{"Gujarat"}, []float64{42}, "insight", nil)

	assert.Equal(t, 3, env.IdeaID)
	assert.Equal(t, "T", env.Title)
	assert.Equal(t, "P", env.Problem)
	assert.Equal(t, "S", env.Solution)
	assert.Equal(t, "H", env.ReasonsHigh)
	assert.Equal(t, "L", env.ReasonsLow)
	assert.Equal(t, []string{"Gujarat"}, env.Labels)
	assert.Equal(t, []float64{42}, env.Data)
	assert.Equal(t, "insight", env.Insight)
}

func TestEmptyEnvelopeShape(t *testing.T) {
	a := testAnalyzer()

	env := a.emptyEnvelope(5, "")
	assert.Equal(t, EmptyInsight, env.Insight)
	assert.NotNil(t, env.Labels)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Labels)
	assert.Empty(t, env.Data)

	// Empty slices must serialize as [] rather than null, and extra_info must
	// be omitted entirely when absent.
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"labels":[]`)
	assert.Contains(t, string(raw), `"data":[]`)
	assert.NotContains(t, string(raw), "extra_info")

	custom := a.emptyEnvelope(5, "nothing here")
	assert.Equal(t, "nothing here", custom.Insight)
}

func TestAssemblePanicsOnLengthMismatch(t *testing.T) {
	a := testAnalyzer()

	assert.Panics(t, func() {
		a.assemble(1, []string{"a", "b"}, []float64{1}, "", nil)
	})
	assert.Panics(t, func() {
		a.assemble(1, []string{"a"}, []float64{1}, "", []string{"x", "y"})
	})
	assert.NotPanics(t, func() {
		a.assemble(1, []string{"a"}, []float64{1}, "", []string{"x"})
	})
}
