package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-mentor/internal/core"
)

func newTestBuilder(t *testing.T) *PromptBuilder {
	t.Helper()
	pm, err := NewPromptManager()
	require.NoError(t, err)
	return NewPromptBuilder(pm, "ollama")
}

func TestBuildRewritePrompt(t *testing.T) {
	b := newTestBuilder(t)

	t.Run("Embeds snippet, comment, and resources", func(t *testing.T) {
		payload, err := b.BuildRewritePrompt(
			"def f():\n    pass",
			"Variable 'u' is a bad name.",
			core.SeverityHarsh,
			[]core.ResourceLink{{Label: "PEP 8 - Naming Conventions", URL: "https://peps.python.org/pep-0008/#naming-conventions"}},
		)
		require.NoError(t, err)

		assert.Contains(t, payload.User, "def f():")
		assert.Contains(t, payload.User, "Variable 'u' is a bad name.")
		assert.Contains(t, payload.User, "PEP 8 - Naming Conventions")
		assert.NotEmpty(t, payload.System)
	})

	t.Run("Empty snippet has a fallback instruction", func(t *testing.T) {
		payload, err := b.BuildRewritePrompt("", "Rename this.", core.SeverityModerate, nil)
		require.NoError(t, err)
		assert.Contains(t, payload.User, "did not attach a code snippet")
		assert.NotContains(t, payload.User, "Code under review:")
	})

	t.Run("Severity changes the system instruction only", func(t *testing.T) {
		harsh, err := b.BuildRewritePrompt("x = 1", "This is terrible.", core.SeverityHarsh, nil)
		require.NoError(t, err)
		neutral, err := b.BuildRewritePrompt("x = 1", "This is terrible.", core.SeverityNeutral, nil)
		require.NoError(t, err)

		assert.NotEqual(t, harsh.System, neutral.System)
		assert.Equal(t, harsh.User, neutral.User)
		assert.Contains(t, harsh.System, "softening harsh language")
	})

	t.Run("Unknown severity falls back to moderate guidance", func(t *testing.T) {
		unknown, err := b.BuildRewritePrompt("x = 1", "Hm.", core.SeverityTier("odd"), nil)
		require.NoError(t, err)
		moderate, err := b.BuildRewritePrompt("x = 1", "Hm.", core.SeverityModerate, nil)
		require.NoError(t, err)
		assert.Equal(t, moderate.System, unknown.System)
	})

	t.Run("Output directive is uniform across severities", func(t *testing.T) {
		for _, severity := range []core.SeverityTier{core.SeverityHarsh, core.SeverityModerate, core.SeverityNeutral} {
			payload, err := b.BuildRewritePrompt("x = 1", "Comment.", severity, nil)
			require.NoError(t, err)
			assert.Contains(t, payload.User, "### Positive Rephrasing")
			assert.Contains(t, payload.User, "### The 'Why'")
			assert.Contains(t, payload.User, "### Suggested Improvement")
		}
	})
}

func TestBuildSummaryPrompt(t *testing.T) {
	b := newTestBuilder(t)

	payload, err := b.BuildSummaryPrompt([]SummaryComment{
		{Comment: "Variable 'u' is a bad name.", Severity: core.SeverityHarsh},
		{Comment: "Maybe add a docstring.", Severity: core.SeverityNeutral},
	})
	require.NoError(t, err)

	assert.Contains(t, payload.User, `[harsh] "Variable 'u' is a bad name."`)
	assert.Contains(t, payload.User, `[neutral] "Maybe add a docstring."`)
	assert.NotEmpty(t, payload.System)
}

func TestPromptManagerFallback(t *testing.T) {
	pm, err := NewPromptManager()
	require.NoError(t, err)

	// No ollama-specific template exists, so lookups fall back to default.
	tmplDefault, err := pm.Get(RewritePrompt, DefaultProvider)
	require.NoError(t, err)
	tmplOllama, err := pm.Get(RewritePrompt, ModelProvider("ollama"))
	require.NoError(t, err)
	assert.Equal(t, tmplDefault, tmplOllama)

	_, err = pm.Get(PromptKey("missing"), DefaultProvider)
	assert.Error(t, err)
}
