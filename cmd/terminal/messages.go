package main

import (
	"github.com/sevigo/code-mentor/internal/app"
	"github.com/sevigo/code-mentor/internal/core"
)

// Indicates that the core application services have been initialized.
type appInitializedMsg struct {
	app *app.App
	err error
}

// Indicates that a review request payload has been loaded into the session.
type requestLoadedMsg struct {
	request *core.ReviewRequest
	source  string
}

// Represents a complete, rendered review report.
type reviewCompleteMsg struct {
	report   *core.ReviewReport
	markdown string
	rendered string
}

// Indicates that the last report has been written to disk.
type reportSavedMsg struct {
	path string
}

// A generic error message for reporting failures from commands.
type errorMsg struct{ err error }

func (e errorMsg) Error() string {
	return e.err.Error()
}
