// Package report renders an assembled ReviewReport into its output formats.
// Rendering is a pure formatting pass: no generation calls happen here.
package report

import (
	"fmt"
	"strings"

	"github.com/sevigo/code-mentor/internal/core"
)

const reportTitle = "# Empathetic Code Review Report"

// RenderMarkdown expands the report into the final markdown document: one
// section per analysis in input order, each with the three generated fields
// and its references, followed by the holistic summary and the aggregated
// resource list.
func RenderMarkdown(report *core.ReviewReport) string {
	var b strings.Builder

	b.WriteString(reportTitle + "\n")

	for _, a := range report.Analyses {
		b.WriteString("\n---\n\n")
		fmt.Fprintf(&b, "### Analysis of Comment: %q\n\n", a.OriginalComment)

		if a.Degraded {
			fmt.Fprintf(&b, "> ⚠ This comment could not be fully analyzed: %s\n\n", a.FailureReason)
			fmt.Fprintf(&b, "%s\n", a.Rationale)
			writeReferences(&b, a.Resources)
			continue
		}

		fmt.Fprintf(&b, "**Positive Rephrasing:** %s\n\n", a.PositiveRephrasing)
		fmt.Fprintf(&b, "**The 'Why':** %s\n\n", a.Rationale)
		b.WriteString("**Suggested Improvement:**\n\n")
		fmt.Fprintf(&b, "```\n%s\n```\n", a.SuggestedCode)
		writeReferences(&b, a.Resources)
	}

	b.WriteString("\n---\n\n## Summary\n\n")
	b.WriteString(report.Summary + "\n")

	writeAggregatedResources(&b, report)

	return b.String()
}

// writeReferences appends the per-comment references list. Omitted entirely
// when the comment matched no keywords.
func writeReferences(b *strings.Builder, resources []core.ResourceLink) {
	if len(resources) == 0 {
		return
	}
	b.WriteString("\n**References:**\n\n")
	for _, r := range resources {
		fmt.Fprintf(b, "- [%s](%s)\n", r.Label, r.URL)
	}
}

// writeAggregatedResources appends the deduplicated union of every comment's
// resources as a closing further-learning section.
func writeAggregatedResources(b *strings.Builder, report *core.ReviewReport) {
	seen := make(map[string]struct{})
	var all []core.ResourceLink
	for _, a := range report.Analyses {
		for _, r := range a.Resources {
			if _, dup := seen[r.URL]; dup {
				continue
			}
			seen[r.URL] = struct{}{}
			all = append(all, r)
		}
	}
	if len(all) == 0 {
		return
	}

	b.WriteString("\n## Additional Resources\n\nFor further learning, consider reviewing these resources:\n\n")
	for _, r := range all {
		fmt.Fprintf(b, "- [%s](%s)\n", r.Label, r.URL)
	}
}
