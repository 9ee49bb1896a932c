package core

import "context"

// PromptPayload is one fully-built generation request. The system instruction
// carries the severity-tiered tone guidance; the user instruction carries the
// code snippet, the original comment, and the output-format directive.
type PromptPayload struct {
	System string
	User   string
}

// Generator is the external text-generation capability. Implementations wrap
// a concrete backend (OpenAI, Ollama, Gemini) and must be safe for concurrent
// use. Failures are classified via TransientError / TerminalError so the
// orchestrator can apply its retry policy.
type Generator interface {
	Generate(ctx context.Context, payload PromptPayload) (string, error)
	Name() string
}

// GeneratorFunc adapts a plain function to the Generator interface. Used by
// tests to substitute a deterministic stub.
type GeneratorFunc func(ctx context.Context, payload PromptPayload) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, payload PromptPayload) (string, error) {
	return f(ctx, payload)
}

func (f GeneratorFunc) Name() string { return "func" }
