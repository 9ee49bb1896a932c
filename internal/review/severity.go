package review

import (
	"strings"

	"github.com/sevigo/code-mentor/internal/core"
)

// Classifier assigns a severity tier to a raw review comment using the
// lexical marker vocabularies of a TonePolicy. Classification is a pure,
// total function: it never fails and the same input always yields the same
// tier.
type Classifier struct {
	policy *TonePolicy
}

// NewClassifier creates a Classifier backed by the given policy.
func NewClassifier(policy *TonePolicy) *Classifier {
	return &Classifier{policy: policy}
}

// Classify scans the comment case-insensitively for harsh and neutral
// markers. More harsh hits than neutral hits reads as harsh, the reverse as
// neutral, and a tie falls back to moderate. An empty comment is neutral.
func (c *Classifier) Classify(comment string) core.SeverityTier {
	trimmed := strings.TrimSpace(comment)
	if trimmed == "" {
		return core.SeverityNeutral
	}

	lower := strings.ToLower(trimmed)

	harsh := countMarkers(lower, c.policy.HarshMarkers)
	neutral := countMarkers(lower, c.policy.NeutralMarkers)

	// Exclamation emphasis counts toward harshness on top of the vocabulary.
	if strings.Contains(trimmed, "!") {
		harsh++
	}

	switch {
	case harsh > neutral:
		return core.SeverityHarsh
	case neutral > harsh:
		return core.SeverityNeutral
	default:
		return core.SeverityModerate
	}
}

func countMarkers(lower string, markers []string) int {
	n := 0
	for _, m := range markers {
		if m != "" && strings.Contains(lower, m) {
			n++
		}
	}
	return n
}
