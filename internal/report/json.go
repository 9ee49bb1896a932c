package report

import (
	"encoding/json"
	"fmt"

	"github.com/sevigo/code-mentor/internal/core"
)

// Format selects an output rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat validates a user-supplied format name. An empty name defaults
// to markdown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want markdown or json)", s)
	}
}

// RenderJSON returns the report as pretty-printed JSON bytes for machine
// consumers.
func RenderJSON(report *core.ReviewReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// Render expands the report in the requested format.
func Render(report *core.ReviewReport, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return RenderJSON(report)
	case FormatMarkdown:
		return []byte(RenderMarkdown(report)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
