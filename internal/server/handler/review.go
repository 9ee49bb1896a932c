// Package handler provides HTTP handlers for the review API.
package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/sevigo/code-mentor/internal/core"
	"github.com/sevigo/code-mentor/internal/report"
	"github.com/sevigo/code-mentor/internal/review"
)

// maxRequestBody bounds the accepted payload size (code snippet + comments).
const maxRequestBody = 1 << 20 // 1 MiB

// ReviewHandler accepts review requests and returns the assembled report.
type ReviewHandler struct {
	orchestrator *review.Orchestrator
	logger       *slog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(orchestrator *review.Orchestrator, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		orchestrator: orchestrator,
		logger:       logger,
	}
}

// Handle processes POST /api/v1/reviews. The body is the two-field input
// contract; the response is the report as JSON, or as rendered markdown when
// ?format=markdown is given. Invalid input is the only request-level error;
// backend failures come back inside the report as degraded entries.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// The API defaults to JSON; human consumers opt into markdown.
	format := report.FormatJSON
	if param := r.URL.Query().Get("format"); param != "" {
		parsed, err := report.ParseFormat(param)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = parsed
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	req, err := core.ParseReviewRequest(body)
	if err != nil {
		h.logger.Debug("rejecting invalid review request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.orchestrator.Run(r.Context(), req)
	if err != nil {
		// Run only fails on validation, which ParseReviewRequest already
		// covered; anything else here is unexpected.
		h.logger.Error("review run failed", "error", err)
		http.Error(w, "failed to process review request", http.StatusInternalServerError)
		return
	}

	rendered, err := report.Render(result, format)
	if err != nil {
		h.logger.Error("failed to render report", "error", err)
		http.Error(w, "failed to render report", http.StatusInternalServerError)
		return
	}

	switch format {
	case report.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(rendered)
}
