package llm

import (
	"strings"

	"github.com/sevigo/code-mentor/internal/core"
)

// RewriteSections holds the three extracted fields of one generated rewrite.
type RewriteSections struct {
	PositiveRephrasing string
	Rationale          string
	SuggestedCode      string
}

// Canonical section names, in the order the prompt requests them.
const (
	sectionRephrasing  = "positive rephrasing"
	sectionWhy         = "the why"
	sectionImprovement = "suggested improvement"
)

var sectionDisplayNames = map[string]string{
	sectionRephrasing:  "Positive Rephrasing",
	sectionWhy:         "The 'Why'",
	sectionImprovement: "Suggested Improvement",
}

// ParseRewrite extracts the three required sections from the backend's reply.
// It handles several common LLM quirks:
// - Response wrapped in ```markdown ... ``` fences
// - Inconsistent heading levels, markdown emphasis, or casing
// - Section content starting on the heading line itself
// A response missing any one of the three sections is a hard failure: it
// returns a MalformedResponseError rather than a partially-filled result.
func ParseRewrite(raw string) (*RewriteSections, error) {
	raw = stripMarkdownFence(raw)

	builders := map[string]*strings.Builder{
		sectionRephrasing:  {},
		sectionWhy:         {},
		sectionImprovement: {},
	}
	found := make(map[string]bool)

	var currentSection string
	for _, line := range strings.Split(raw, "\n") {
		if name, rest, ok := matchSectionHeading(line); ok {
			currentSection = name
			found[name] = true
			if rest != "" {
				builders[name].WriteString(rest + "\n")
			}
			continue
		}
		if currentSection != "" {
			builders[currentSection].WriteString(line + "\n")
		}
	}

	var missing []string
	for _, name := range []string{sectionRephrasing, sectionWhy, sectionImprovement} {
		if !found[name] {
			missing = append(missing, sectionDisplayNames[name])
		}
	}
	if len(missing) > 0 {
		return nil, &core.MalformedResponseError{Missing: missing}
	}

	improvement := strings.TrimSpace(builders[sectionImprovement].String())
	code := extractFencedCode(improvement)
	if code == "" {
		// No fence present; fall back to the raw section text.
		code = improvement
	}

	return &RewriteSections{
		PositiveRephrasing: strings.TrimSpace(builders[sectionRephrasing].String()),
		Rationale:          strings.TrimSpace(builders[sectionWhy].String()),
		SuggestedCode:      code,
	}, nil
}

// matchSectionHeading reports whether the line is one of the three section
// markers, tolerant of minor formatting variance such as '###' levels, bold
// or italic emphasis around the heading, and a trailing colon. When content
// follows the marker on the same line ("**The 'Why':** because ...") it is
// returned as rest.
func matchSectionHeading(line string) (name, rest string, ok bool) {
	normalized := normalizeHeading(line)
	if normalized == "" {
		return "", "", false
	}

	trimmed := strings.TrimSpace(line)
	decorated := strings.HasPrefix(trimmed, "#") ||
		strings.HasPrefix(trimmed, "*") ||
		strings.HasPrefix(trimmed, "_")

	for _, section := range []string{sectionRephrasing, sectionWhy, sectionImprovement} {
		if !strings.HasPrefix(normalized, section) {
			continue
		}
		trailer := strings.TrimSpace(normalized[len(section):])
		// A heading is either markdown-decorated or a bare marker followed by
		// at most a colon. A body sentence that merely starts with a section
		// name ("Suggested improvement ideas came up...") is content.
		if !decorated && trailer != "" && !strings.HasPrefix(trailer, ":") {
			continue
		}
		rest = headingRest(line, trailer)
		return section, rest, true
	}
	return "", "", false
}

// normalizeHeading lowers the line and strips markdown decoration so that
// '### **Positive Rephrasing:**' and 'positive rephrasing' compare equal.
func normalizeHeading(line string) string {
	s := strings.TrimSpace(line)
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*_")
	s = strings.ReplaceAll(s, "*", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "‘", "")
	s = strings.ReplaceAll(s, "’", "")
	s = strings.ReplaceAll(s, "\"", "")
	return strings.ToLower(strings.TrimSpace(s))
}

// headingRest recovers same-line content after the section marker. The
// normalized trailer tells us whether anything besides punctuation followed;
// if so, the content after the last colon of the original line is used.
func headingRest(line, trailer string) string {
	trailer = strings.TrimLeft(trailer, ":")
	trailer = strings.TrimSpace(trailer)
	if trailer == "" {
		return ""
	}
	if idx := strings.Index(line, ":"); idx >= 0 {
		return strings.TrimSpace(strings.Trim(strings.TrimSpace(line[idx+1:]), "*_"))
	}
	return trailer
}

// extractFencedCode returns the body of the first fenced code block in the
// text, or "" when no fence is present.
func extractFencedCode(text string) string {
	lines := strings.Split(text, "\n")

	var body []string
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if inFence {
				return strings.TrimSpace(strings.Join(body, "\n"))
			}
			inFence = true
			continue
		}
		if inFence {
			body = append(body, line)
		}
	}
	if inFence {
		// Unterminated fence; take everything after the opening marker.
		return strings.TrimSpace(strings.Join(body, "\n"))
	}
	return ""
}

// stripMarkdownFence removes ```markdown ... ``` wrapping that some LLMs add
// around their whole output.
func stripMarkdownFence(s string) string {
	trimmed := strings.TrimSpace(s)
	if strings.HasPrefix(trimmed, "```markdown") || strings.HasPrefix(trimmed, "```md") {
		idx := strings.Index(trimmed, "\n")
		if idx < 0 {
			return s
		}
		inner := trimmed[idx+1:]
		if lastFence := strings.LastIndex(inner, "```"); lastFence >= 0 {
			inner = inner[:lastFence]
		}
		return strings.TrimSpace(inner)
	}
	return s
}
