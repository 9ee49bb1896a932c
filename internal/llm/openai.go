package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sevigo/code-mentor/internal/core"
)

// OpenAIGenerator implements core.Generator using the official OpenAI Go SDK.
// It supports any OpenAI-compatible endpoint via a custom base URL.
type OpenAIGenerator struct {
	client openai.Client
	model  string
}

// NewOpenAIGenerator creates a generator backed by the OpenAI chat
// completions API. An empty baseURL targets the public API.
func NewOpenAIGenerator(apiKey, baseURL, model string, timeout time.Duration) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set for the openai provider")
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(baseURL))
	}
	if timeout > 0 {
		clientOpts = append(clientOpts, option.WithRequestTimeout(timeout))
	}

	return &OpenAIGenerator{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}, nil
}

func (g *OpenAIGenerator) Name() string { return "openai" }

// Generate sends the payload as a system+user chat completion and classifies
// failures for the orchestrator's retry policy.
func (g *OpenAIGenerator) Generate(ctx context.Context, payload core.PromptPayload) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(payload.System),
			openai.UserMessage(payload.User),
		},
	}

	completion, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err)
	}

	if len(completion.Choices) == 0 {
		return "", &core.TerminalError{Err: fmt.Errorf("openai returned no choices")}
	}
	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", &core.TerminalError{Err: fmt.Errorf("openai returned an empty completion")}
	}
	return content, nil
}

// classifyOpenAIError maps SDK errors onto the transient/terminal taxonomy.
// Rate limits and server-side failures are retriable; authentication and
// content-policy rejections are not.
func classifyOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &core.TransientError{Err: err}
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch {
		case apierr.StatusCode == http.StatusTooManyRequests:
			return &core.TransientError{Err: err}
		case apierr.StatusCode >= http.StatusInternalServerError:
			return &core.TransientError{Err: err}
		default:
			return &core.TerminalError{Err: err}
		}
	}

	// Network-level failures without a status are treated as transient.
	return &core.TransientError{Err: err}
}
