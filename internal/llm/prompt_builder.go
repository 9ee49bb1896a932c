package llm

import (
	"fmt"

	"github.com/sevigo/code-mentor/internal/core"
)

// toneGuidance is the severity-tiered suffix appended to the base system
// instruction. Harsher input gets a stronger explicit instruction to soften
// tone without diluting technical accuracy.
var toneGuidance = map[core.SeverityTier]string{
	core.SeverityHarsh:    "Pay special attention to softening harsh language and being extra encouraging. The original feedback may have been blunt or discouraging, so focus on building the developer's confidence while still conveying the technical improvement needed.",
	core.SeverityModerate: "Maintain a balanced, professional tone while being supportive and educational.",
	core.SeverityNeutral:  "The original feedback was already fairly neutral, so focus on making it more educational and adding the 'why' behind suggestions.",
}

// RewriteData feeds the per-comment user prompt template.
type RewriteData struct {
	CodeSnippet string
	Comment     string
	Resources   []core.ResourceLink
}

// SummaryComment is one entry of the summary prompt: an original comment and
// its measured severity.
type SummaryComment struct {
	Comment  string
	Severity core.SeverityTier
}

// SummaryData feeds the holistic summary prompt template.
type SummaryData struct {
	Comments []SummaryComment
}

// PromptBuilder composes generation payloads from the embedded templates.
// Building a prompt is deterministic and requests the same three-section
// output shape regardless of severity, so the parser contract stays uniform.
type PromptBuilder struct {
	prompts  *PromptManager
	provider ModelProvider
}

// NewPromptBuilder creates a PromptBuilder rendering templates for the given
// backend provider, falling back to the default templates.
func NewPromptBuilder(pm *PromptManager, provider string) *PromptBuilder {
	return &PromptBuilder{prompts: pm, provider: ModelProvider(provider)}
}

// BuildRewritePrompt produces the payload for one comment: a severity-tiered
// system instruction plus a user instruction embedding the snippet, the
// comment, any linked resources, and the strict output-format directive.
func (b *PromptBuilder) BuildRewritePrompt(codeSnippet, comment string, severity core.SeverityTier, resources []core.ResourceLink) (core.PromptPayload, error) {
	system, err := b.systemInstruction(severity)
	if err != nil {
		return core.PromptPayload{}, err
	}

	user, err := b.prompts.Render(RewritePrompt, b.provider, RewriteData{
		CodeSnippet: codeSnippet,
		Comment:     comment,
		Resources:   resources,
	})
	if err != nil {
		return core.PromptPayload{}, fmt.Errorf("failed to render rewrite prompt: %w", err)
	}

	return core.PromptPayload{System: system, User: user}, nil
}

// BuildSummaryPrompt produces the payload for the final holistic pass over
// all original comments and their severities.
func (b *PromptBuilder) BuildSummaryPrompt(comments []SummaryComment) (core.PromptPayload, error) {
	system, err := b.systemInstruction(core.SeverityModerate)
	if err != nil {
		return core.PromptPayload{}, err
	}

	user, err := b.prompts.Render(SummaryPrompt, b.provider, SummaryData{Comments: comments})
	if err != nil {
		return core.PromptPayload{}, fmt.Errorf("failed to render summary prompt: %w", err)
	}

	return core.PromptPayload{System: system, User: user}, nil
}

func (b *PromptBuilder) systemInstruction(severity core.SeverityTier) (string, error) {
	guidance, ok := toneGuidance[severity]
	if !ok {
		guidance = toneGuidance[core.SeverityModerate]
	}

	system, err := b.prompts.Render(SystemPrompt, b.provider, struct{ ToneGuidance string }{ToneGuidance: guidance})
	if err != nil {
		return "", fmt.Errorf("failed to render system prompt: %w", err)
	}
	return system, nil
}
