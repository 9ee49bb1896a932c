package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/code-mentor/internal/core"
)

// goframeGenerator adapts a goframe llms.Model (Ollama, Gemini) to
// core.Generator. These clients take a single flat prompt, so the system and
// user instructions are joined with a blank line.
type goframeGenerator struct {
	model llms.Model
	name  string
}

func newGoframeGenerator(model llms.Model, name string) *goframeGenerator {
	return &goframeGenerator{model: model, name: name}
}

func (g *goframeGenerator) Name() string { return g.name }

func (g *goframeGenerator) Generate(ctx context.Context, payload core.PromptPayload) (string, error) {
	prompt := payload.System + "\n\n" + payload.User

	out, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt)
	if err != nil {
		return "", classifyGoframeError(err)
	}
	if strings.TrimSpace(out) == "" {
		return "", &core.TerminalError{Err: errors.New("model returned an empty completion")}
	}
	return out, nil
}

// classifyGoframeError maps client errors onto the transient/terminal
// taxonomy. The goframe clients surface HTTP details only in the message, so
// classification falls back to substring checks.
func classifyGoframeError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &core.TransientError{Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "429"),
		strings.Contains(msg, "timeout"), strings.Contains(msg, "connection refused"),
		strings.Contains(msg, "temporarily"):
		return &core.TransientError{Err: err}
	case strings.Contains(msg, "unauthorized"), strings.Contains(msg, "401"),
		strings.Contains(msg, "403"), strings.Contains(msg, "api key"):
		return &core.TerminalError{Err: err}
	default:
		return &core.TerminalError{Err: err}
	}
}
