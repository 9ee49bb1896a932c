package review

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-mentor/internal/config"
	"github.com/sevigo/code-mentor/internal/core"
	"github.com/sevigo/code-mentor/internal/llm"
)

// wellFormedResponse builds a parseable three-section reply whose rephrasing
// carries a marker so tests can trace outputs back to inputs.
func wellFormedResponse(marker string) string {
	return fmt.Sprintf(`### Positive Rephrasing
Nice instinct here. %s

### The 'Why'
Clearer structure makes the intent easier to follow.

### Suggested Improvement
`+"```python\nreturn [u for u in users if u.is_active]\n```", marker)
}

func newTestOrchestrator(t *testing.T, cfg *config.Config, gen core.Generator) *Orchestrator {
	t.Helper()

	policy, err := LoadTonePolicy("")
	require.NoError(t, err)

	pm, err := llm.NewPromptManager()
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewOrchestrator(cfg, gen, llm.NewPromptBuilder(pm, "ollama"), NewClassifier(policy), NewLinker(policy), logger)
}

func testConfig() *config.Config {
	return &config.Config{
		MaxWorkers:        4,
		MaxRetries:        1,
		GenerationTimeout: 5 * time.Second,
	}
}

func TestRunRejectsInvalidRequest(t *testing.T) {
	gen := core.GeneratorFunc(func(_ context.Context, _ core.PromptPayload) (string, error) {
		t.Fatal("generator must not be called for an invalid request")
		return "", nil
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	_, err := o.Run(context.Background(), &core.ReviewRequest{CodeSnippet: "x = 1"})
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
}

func TestRunHappyPath(t *testing.T) {
	var calls atomic.Int32
	gen := core.GeneratorFunc(func(_ context.Context, payload core.PromptPayload) (string, error) {
		calls.Add(1)
		if strings.Contains(payload.User, "overall assessment") {
			return "Solid work overall. The suggestions above focus on clarity and idiom.", nil
		}
		return wellFormedResponse("ok"), nil
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	req := &core.ReviewRequest{
		CodeSnippet: "def f(u):\n    return u.x == True",
		ReviewComments: []string{
			"This is inefficient. Don't loop twice conceptually.",
			"Variable 'u' is a bad name.",
			"Boolean comparison '== True' is redundant.",
		},
	}

	report, err := o.Run(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, report.Analyses, len(req.ReviewComments))
	for i, a := range report.Analyses {
		assert.Equal(t, req.ReviewComments[i], a.OriginalComment, "input order must be preserved")
		assert.False(t, a.Degraded)
		assert.NotEmpty(t, a.PositiveRephrasing)
		assert.NotEmpty(t, a.Rationale)
		assert.Contains(t, a.SuggestedCode, "u.is_active")
	}

	assert.Equal(t, core.SeverityHarsh, report.Analyses[1].Severity)
	assert.Equal(t, core.SeverityNeutral, report.Analyses[2].Severity)

	assert.False(t, report.SummaryDegraded)
	assert.Contains(t, report.Summary, "Solid work")

	// One call per comment plus the summary pass.
	assert.Equal(t, int32(len(req.ReviewComments)+1), calls.Load())
}

func TestRunIsolatesPerCommentFailures(t *testing.T) {
	gen := core.GeneratorFunc(func(_ context.Context, payload core.PromptPayload) (string, error) {
		if strings.Contains(payload.User, "bad name") {
			return "", &core.TerminalError{Err: errors.New("content rejected")}
		}
		return wellFormedResponse("ok"), nil
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	req := &core.ReviewRequest{
		CodeSnippet: "x = 1",
		ReviewComments: []string{
			"Consider a clearer structure here.",
			"Variable 'u' is a bad name.",
			"Maybe add a docstring.",
		},
	}

	report, err := o.Run(context.Background(), req)
	require.NoError(t, err, "a single comment failure must not fail the request")

	require.Len(t, report.Analyses, 3)
	assert.Equal(t, 1, report.DegradedCount())

	degraded := report.Analyses[1]
	assert.True(t, degraded.Degraded)
	assert.Equal(t, "Variable 'u' is a bad name.", degraded.OriginalComment)
	assert.Contains(t, degraded.FailureReason, "content rejected")
	assert.NotEmpty(t, degraded.Rationale, "a degraded entry still explains itself")
	assert.Empty(t, degraded.PositiveRephrasing)
	assert.Empty(t, degraded.SuggestedCode)

	assert.False(t, report.Analyses[0].Degraded)
	assert.False(t, report.Analyses[2].Degraded)
}

func TestRunRetriesTransientFailures(t *testing.T) {
	var rewriteCalls atomic.Int32
	gen := core.GeneratorFunc(func(_ context.Context, payload core.PromptPayload) (string, error) {
		if strings.Contains(payload.User, "overall assessment") {
			return "All good.", nil
		}
		if rewriteCalls.Add(1) == 1 {
			return "", &core.TransientError{Err: errors.New("429 too many requests")}
		}
		return wellFormedResponse("recovered"), nil
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	report, err := o.Run(context.Background(), &core.ReviewRequest{
		ReviewComments: []string{"Consider renaming this."},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(2), rewriteCalls.Load(), "one transient failure, one successful retry")
	require.Len(t, report.Analyses, 1)
	assert.False(t, report.Analyses[0].Degraded)
	assert.Contains(t, report.Analyses[0].PositiveRephrasing, "recovered")
}

func TestRunDoesNotRetryTerminalFailures(t *testing.T) {
	var calls atomic.Int32
	gen := core.GeneratorFunc(func(_ context.Context, _ core.PromptPayload) (string, error) {
		calls.Add(1)
		return "", &core.TerminalError{Err: errors.New("invalid api key")}
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	report, err := o.Run(context.Background(), &core.ReviewRequest{
		ReviewComments: []string{"Consider renaming this."},
	})
	require.NoError(t, err)

	// One rewrite attempt plus one summary attempt, no retries for either.
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 1, report.DegradedCount())
	assert.True(t, report.SummaryDegraded)
	assert.NotEmpty(t, report.Summary, "the fallback summary still fills the section")
}

func TestRunDegradesOnMalformedResponse(t *testing.T) {
	gen := core.GeneratorFunc(func(_ context.Context, payload core.PromptPayload) (string, error) {
		if strings.Contains(payload.User, "overall assessment") {
			return "Summary.", nil
		}
		return "### Positive Rephrasing\nNice.\n\n### The 'Why'\nBecause.", nil
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	report, err := o.Run(context.Background(), &core.ReviewRequest{
		ReviewComments: []string{"Consider renaming this."},
	})
	require.NoError(t, err)

	require.Len(t, report.Analyses, 1)
	assert.True(t, report.Analyses[0].Degraded)
	assert.Contains(t, report.Analyses[0].FailureReason, "Suggested Improvement")
}

func TestRunPreservesOrderUnderConcurrency(t *testing.T) {
	comments := []string{
		"Consider renaming the accumulator.",
		"Maybe extract this into a helper.",
		"This could use a docstring.",
		"Perhaps flatten the nested condition.",
		"You might memoize this lookup.",
		"Optional: tighten the return type.",
	}

	gen := core.GeneratorFunc(func(_ context.Context, payload core.PromptPayload) (string, error) {
		if strings.Contains(payload.User, "overall assessment") {
			return "Summary.", nil
		}
		// Finish in roughly reverse submission order to shake out ordering bugs.
		for i, c := range comments {
			if strings.Contains(payload.User, c) {
				time.Sleep(time.Duration(len(comments)-i) * 10 * time.Millisecond)
				return wellFormedResponse(c), nil
			}
		}
		return "", errors.New("unexpected prompt")
	})
	o := newTestOrchestrator(t, testConfig(), gen)

	report, err := o.Run(context.Background(), &core.ReviewRequest{ReviewComments: comments})
	require.NoError(t, err)

	require.Len(t, report.Analyses, len(comments))
	for i, a := range report.Analyses {
		assert.Equal(t, comments[i], a.OriginalComment)
		assert.Contains(t, a.PositiveRephrasing, comments[i])
	}
}

func TestRunTimesOutSlowGeneration(t *testing.T) {
	cfg := testConfig()
	cfg.GenerationTimeout = 50 * time.Millisecond
	cfg.MaxRetries = 0

	gen := core.GeneratorFunc(func(ctx context.Context, _ core.PromptPayload) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	o := newTestOrchestrator(t, cfg, gen)

	report, err := o.Run(context.Background(), &core.ReviewRequest{
		ReviewComments: []string{"Consider renaming this."},
	})
	require.NoError(t, err)

	require.Len(t, report.Analyses, 1)
	assert.True(t, report.Analyses[0].Degraded)
	assert.True(t, report.SummaryDegraded)
}
