package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/sevigo/code-mentor/internal/app"
	"github.com/sevigo/code-mentor/internal/core"
	"github.com/sevigo/code-mentor/internal/report"
	"github.com/sevigo/code-mentor/internal/wire"
)

func initializeAppCmd() tea.Cmd {
	return func() tea.Msg {
		app, _, err := wire.InitializeApp(context.Background())
		if err != nil {
			return appInitializedMsg{err: err}
		}
		return appInitializedMsg{app: app}
	}
}

// loadRequestCmd reads a JSON review request from a file.
func loadRequestCmd(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return errorMsg{fmt.Errorf("failed to read %s: %w", path, err)}
		}
		req, err := core.ParseReviewRequest(data)
		if err != nil {
			return errorMsg{fmt.Errorf("invalid request payload: %w", err)}
		}
		return requestLoadedMsg{request: req, source: path}
	}
}

// exampleRequest is the same demo payload the CLI's example command prints.
func exampleRequest() *core.ReviewRequest {
	return &core.ReviewRequest{
		CodeSnippet: `def get_active_users(users):
    results = []
    for u in users:
        if u.is_active == True and u.profile_complete == True:
            results.append(u)
    return results`,
		ReviewComments: []string{
			"This is inefficient. Don't loop twice conceptually.",
			"Variable 'u' is a bad name.",
			"Boolean comparison '== True' is redundant.",
		},
	}
}

func loadExampleCmd() tea.Cmd {
	return func() tea.Msg {
		return requestLoadedMsg{request: exampleRequest(), source: "built-in example"}
	}
}

// runReviewCmd runs the full pipeline and renders the resulting report for
// the viewport. Rendering trouble falls back to the raw markdown.
func runReviewCmd(app *app.App, req *core.ReviewRequest, width int) tea.Cmd {
	return func() tea.Msg {
		result, err := app.Reviewer.Run(context.Background(), req)
		if err != nil {
			return errorMsg{err}
		}

		markdown := report.RenderMarkdown(result)
		rendered := markdown
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			if pretty, rerr := renderer.Render(markdown); rerr == nil {
				rendered = pretty
			}
		}

		return reviewCompleteMsg{report: result, markdown: markdown, rendered: rendered}
	}
}

func saveReportCmd(markdown, path string) tea.Cmd {
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(markdown), 0o644); err != nil {
			return errorMsg{fmt.Errorf("failed to save report: %w", err)}
		}
		return reportSavedMsg{path: path}
	}
}
