// Package review implements the comment-transformation pipeline: severity
// classification, resource linking, and the orchestrator that drives prompt
// building, generation, and parsing for a full review request.
package review

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-mentor/internal/core"
)

//go:embed policy.yaml
var defaultPolicyYAML []byte

// ResourceRule maps topical keywords to one or more canonical documentation
// references.
type ResourceRule struct {
	Keywords []string            `yaml:"keywords"`
	Links    []core.ResourceLink `yaml:"links"`
}

// TonePolicy is the tunable vocabulary driving severity classification and
// resource linking. The exact marker lists are policy, not contract.
type TonePolicy struct {
	HarshMarkers   []string       `yaml:"harsh_markers"`
	NeutralMarkers []string       `yaml:"neutral_markers"`
	Resources      []ResourceRule `yaml:"resources"`
}

// Validate checks that the policy can actually classify and link.
func (p *TonePolicy) Validate() error {
	if len(p.HarshMarkers) == 0 {
		return fmt.Errorf("tone policy must define at least one harsh marker")
	}
	if len(p.NeutralMarkers) == 0 {
		return fmt.Errorf("tone policy must define at least one neutral marker")
	}
	for i, r := range p.Resources {
		if len(r.Keywords) == 0 {
			return fmt.Errorf("resource rule %d has no keywords", i)
		}
		for _, l := range r.Links {
			if l.Label == "" || l.URL == "" {
				return fmt.Errorf("resource rule %d has a link with an empty label or url", i)
			}
		}
	}
	return nil
}

func (p *TonePolicy) normalize() {
	for i, m := range p.HarshMarkers {
		p.HarshMarkers[i] = strings.ToLower(strings.TrimSpace(m))
	}
	for i, m := range p.NeutralMarkers {
		p.NeutralMarkers[i] = strings.ToLower(strings.TrimSpace(m))
	}
	for i := range p.Resources {
		for j, k := range p.Resources[i].Keywords {
			p.Resources[i].Keywords[j] = strings.ToLower(strings.TrimSpace(k))
		}
	}
}

// LoadTonePolicy returns the embedded default policy, or the policy parsed
// from path when one is configured. An override file replaces the default
// wholesale; there is no merging.
func LoadTonePolicy(path string) (*TonePolicy, error) {
	data := defaultPolicyYAML
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read tone policy %q: %w", path, err)
		}
		data = fileData
	}

	var policy TonePolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return nil, fmt.Errorf("failed to parse tone policy: %w", err)
	}
	policy.normalize()
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tone policy: %w", err)
	}
	return &policy, nil
}
