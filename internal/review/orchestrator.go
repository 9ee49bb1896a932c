package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/code-mentor/internal/config"
	"github.com/sevigo/code-mentor/internal/core"
	"github.com/sevigo/code-mentor/internal/llm"
)

// Orchestrator drives the full transformation pipeline for one request:
// per-comment classify -> link -> build prompt -> generate -> parse, followed
// by a final holistic summary pass. Comments have no data dependency on each
// other, so they fan out over a bounded worker group; input order is
// preserved by writing into an indexed result slice.
type Orchestrator struct {
	gen        core.Generator
	prompts    *llm.PromptBuilder
	classifier *Classifier
	linker     *Linker
	maxWorkers int
	maxRetries int
	genTimeout time.Duration
	logger     *slog.Logger
}

// NewOrchestrator creates an Orchestrator. The generation capability is
// injected so tests can substitute a deterministic stub.
func NewOrchestrator(cfg *config.Config, gen core.Generator, prompts *llm.PromptBuilder, classifier *Classifier, linker *Linker, logger *slog.Logger) *Orchestrator {
	workers := cfg.MaxWorkers
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{
		gen:        gen,
		prompts:    prompts,
		classifier: classifier,
		linker:     linker,
		maxWorkers: workers,
		maxRetries: cfg.MaxRetries,
		genTimeout: cfg.GenerationTimeout,
		logger:     logger,
	}
}

// Run processes every comment of the request and assembles the report. The
// only request-level failure is input validation; generation and parse
// failures degrade individual entries so the rest of the report still
// completes.
func (o *Orchestrator) Run(ctx context.Context, req *core.ReviewRequest) (*core.ReviewReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	o.logger.Info("starting review run",
		"comments", len(req.ReviewComments),
		"backend", o.gen.Name(),
		"max_workers", o.maxWorkers,
	)
	start := time.Now()

	analyses := make([]core.CommentAnalysis, len(req.ReviewComments))

	var g errgroup.Group
	g.SetLimit(o.maxWorkers)
	for i, comment := range req.ReviewComments {
		g.Go(func() error {
			analyses[i] = o.analyzeComment(ctx, req.CodeSnippet, comment)
			return nil
		})
	}
	// Workers never return errors; failures degrade their own entry.
	_ = g.Wait()

	report := &core.ReviewReport{Analyses: analyses}

	summary, err := o.generateSummary(ctx, analyses)
	if err != nil {
		o.logger.Warn("summary generation failed, using fallback", "error", err)
		report.Summary = fallbackSummary(len(analyses), report.DegradedCount())
		report.SummaryDegraded = true
	} else {
		report.Summary = summary
	}

	o.logger.Info("review run finished",
		"comments", len(analyses),
		"degraded", report.DegradedCount(),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return report, nil
}

// analyzeComment builds one CommentAnalysis. It never fails: a generation or
// parse failure produces a degraded entry carrying the failure reason.
func (o *Orchestrator) analyzeComment(ctx context.Context, codeSnippet, comment string) core.CommentAnalysis {
	severity := o.classifier.Classify(comment)
	resources := o.linker.Link(comment)

	analysis := core.CommentAnalysis{
		OriginalComment: comment,
		Severity:        severity,
		Resources:       resources,
	}

	payload, err := o.prompts.BuildRewritePrompt(codeSnippet, comment, severity, resources)
	if err != nil {
		return degrade(analysis, fmt.Errorf("failed to build prompt: %w", err))
	}

	raw, err := o.generateWithRetry(ctx, payload)
	if err != nil {
		o.logger.Warn("comment generation failed", "severity", severity, "error", err)
		return degrade(analysis, err)
	}

	sections, err := llm.ParseRewrite(raw)
	if err != nil {
		o.logger.Warn("comment response unparsable", "severity", severity, "error", err)
		return degrade(analysis, err)
	}

	analysis.PositiveRephrasing = sections.PositiveRephrasing
	analysis.Rationale = sections.Rationale
	analysis.SuggestedCode = sections.SuggestedCode
	return analysis
}

func (o *Orchestrator) generateSummary(ctx context.Context, analyses []core.CommentAnalysis) (string, error) {
	comments := make([]llm.SummaryComment, len(analyses))
	for i, a := range analyses {
		comments[i] = llm.SummaryComment{Comment: a.OriginalComment, Severity: a.Severity}
	}

	payload, err := o.prompts.BuildSummaryPrompt(comments)
	if err != nil {
		return "", fmt.Errorf("failed to build summary prompt: %w", err)
	}
	return o.generateWithRetry(ctx, payload)
}

// generateWithRetry invokes the backend with the per-call timeout, retrying
// transient failures (timeout, rate limit) a bounded number of times with
// exponential backoff. Terminal failures are never retried; exhausted retries
// downgrade to a terminal failure.
func (o *Orchestrator) generateWithRetry(ctx context.Context, payload core.PromptPayload) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= o.maxRetries; attempt++ {
		out, err := o.generateWithTimeout(ctx, payload)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if !core.IsTransient(err) {
			return "", err
		}
		if attempt < o.maxRetries {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-ctx.Done():
				return "", &core.TerminalError{Err: ctx.Err()}
			case <-time.After(backoff):
			}
		}
	}
	return "", &core.TerminalError{Err: fmt.Errorf("retries exhausted: %w", lastErr)}
}

// generateWithTimeout wraps one backend call with a hard timeout. A call that
// outlives the deadline is reported as a transient failure.
func (o *Orchestrator) generateWithTimeout(ctx context.Context, payload core.PromptPayload) (string, error) {
	if o.genTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.genTimeout)
		defer cancel()
	}

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		resp, err := o.gen.Generate(ctx, payload)
		select {
		case resultCh <- result{resp, err}:
		case <-ctx.Done():
			// Do not block the goroutine if the caller timed out.
		}
	}()

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return "", &core.TransientError{Err: ctx.Err()}
	}
}

func degrade(analysis core.CommentAnalysis, err error) core.CommentAnalysis {
	analysis.Degraded = true
	analysis.FailureReason = err.Error()
	analysis.Rationale = "An empathetic rewrite could not be generated for this comment. The original comment is preserved above; please review it directly."
	analysis.PositiveRephrasing = ""
	analysis.SuggestedCode = ""
	return analysis
}

func fallbackSummary(total, degraded int) string {
	if degraded == 0 {
		return fmt.Sprintf("All %d review comments were rephrased into constructive guidance. Keep iterating on the suggestions above; the code is moving in a good direction.", total)
	}
	return fmt.Sprintf("%d of %d review comments were rephrased into constructive guidance; %d could not be processed automatically and are marked above. The suggestions that did complete still give a solid path forward.", total-degraded, total, degraded)
}
