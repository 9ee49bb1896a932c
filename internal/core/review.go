// Package core defines the essential interfaces and data structures that form the
// backbone of the application. These components are designed to be abstract,
// allowing for flexible and decoupled implementations of the application's logic.
package core

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SeverityTier classifies how harsh a raw review comment reads. The tier
// drives the tone of the system instruction sent to the generation backend.
type SeverityTier string

const (
	SeverityHarsh    SeverityTier = "harsh"
	SeverityModerate SeverityTier = "moderate"
	SeverityNeutral  SeverityTier = "neutral"
)

// ReviewRequest is the input contract: a code snippet plus the raw review
// comments to transform. The snippet may be empty; the comment list may not.
type ReviewRequest struct {
	CodeSnippet    string   `json:"code_snippet"`
	ReviewComments []string `json:"review_comments"`
}

// Validate checks the two-field input contract. A malformed request is the
// only condition surfaced to the caller as a request-level failure.
func (r *ReviewRequest) Validate() error {
	if r == nil {
		return &ValidationError{Reason: "request cannot be nil"}
	}
	if len(r.ReviewComments) == 0 {
		return &ValidationError{Reason: "'review_comments' must be a non-empty list"}
	}
	for i, c := range r.ReviewComments {
		if strings.TrimSpace(c) == "" {
			return &ValidationError{Reason: fmt.Sprintf("'review_comments[%d]' must not be empty", i)}
		}
	}
	return nil
}

// ParseReviewRequest decodes and validates a JSON request payload.
func ParseReviewRequest(data []byte) (*ReviewRequest, error) {
	var req ReviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &ValidationError{Reason: "invalid JSON input: " + err.Error()}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// ResourceLink is a documentation reference attached to a comment based on
// detected topic keywords.
type ResourceLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// CommentAnalysis is the structured empathetic rewrite of one original
// comment. Instances are immutable once built; one per input comment, in
// input order.
type CommentAnalysis struct {
	OriginalComment    string         `json:"original_comment"`
	Severity           SeverityTier   `json:"severity"`
	Resources          []ResourceLink `json:"resources,omitempty"`
	PositiveRephrasing string         `json:"positive_rephrasing"`
	Rationale          string         `json:"rationale"`
	SuggestedCode      string         `json:"suggested_code"`

	// Degraded marks an analysis whose generation or parse failed after
	// retries. The rationale then explains the failure instead of the fix.
	Degraded      bool   `json:"degraded,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// ReviewReport is the full assembled result for one request: all comment
// analyses in input order plus a holistic summary. Built once, never mutated
// after assembly.
type ReviewReport struct {
	Analyses []CommentAnalysis `json:"analyses"`
	Summary  string            `json:"summary"`

	// SummaryDegraded is set when the summary pass failed and the generic
	// fallback text was used instead.
	SummaryDegraded bool `json:"summary_degraded,omitempty"`
}

// DegradedCount returns how many per-comment analyses could not be fully
// generated.
func (r *ReviewReport) DegradedCount() int {
	n := 0
	for _, a := range r.Analyses {
		if a.Degraded {
			n++
		}
	}
	return n
}
