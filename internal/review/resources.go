package review

import (
	"strings"

	"github.com/sevigo/code-mentor/internal/core"
)

// Linker maps topical keywords detected in a comment to canonical
// documentation references, using the resource rules of a TonePolicy.
// Like the classifier it is pure, deterministic, and total.
type Linker struct {
	policy *TonePolicy
}

// NewLinker creates a Linker backed by the given policy.
func NewLinker(policy *TonePolicy) *Linker {
	return &Linker{policy: policy}
}

// Link returns every documentation reference whose keyword matches the
// comment, case-insensitively as a substring. Duplicate URLs are suppressed
// while keeping rule order stable. An empty result is a valid, non-error
// outcome.
func (l *Linker) Link(comment string) []core.ResourceLink {
	lower := strings.ToLower(comment)

	var links []core.ResourceLink
	seen := make(map[string]struct{})

	for _, rule := range l.policy.Resources {
		if !matchesAny(lower, rule.Keywords) {
			continue
		}
		for _, link := range rule.Links {
			if _, dup := seen[link.URL]; dup {
				continue
			}
			seen[link.URL] = struct{}{}
			links = append(links, link)
		}
	}
	return links
}

func matchesAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
