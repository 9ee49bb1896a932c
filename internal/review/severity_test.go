package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-mentor/internal/core"
)

func newTestPolicy(t *testing.T) *TonePolicy {
	t.Helper()
	policy, err := LoadTonePolicy("")
	require.NoError(t, err)
	return policy
}

func TestClassify(t *testing.T) {
	classifier := NewClassifier(newTestPolicy(t))

	tests := []struct {
		name    string
		comment string
		want    core.SeverityTier
	}{
		{
			name:    "Harsh vocabulary",
			comment: "This is terrible, stupid code.",
			want:    core.SeverityHarsh,
		},
		{
			name:    "Harsh vocabulary uppercase",
			comment: "This is TERRIBLE code.",
			want:    core.SeverityHarsh,
		},
		{
			name:    "Exclamation counts toward harshness",
			comment: "Rename this variable now!",
			want:    core.SeverityHarsh,
		},
		{
			name:    "Neutral suggestion",
			comment: "You could consider a list comprehension here.",
			want:    core.SeverityNeutral,
		},
		{
			name:    "Plain statement with no markers",
			comment: "Rename this variable.",
			want:    core.SeverityModerate,
		},
		{
			name:    "Harsh and neutral tie",
			comment: "This is wrong but you could fix it.",
			want:    core.SeverityModerate,
		},
		{
			name:    "Empty comment",
			comment: "",
			want:    core.SeverityNeutral,
		},
		{
			name:    "Whitespace only",
			comment: "   \n\t",
			want:    core.SeverityNeutral,
		},
		{
			name:    "Bad name comment",
			comment: "Variable 'u' is a bad name.",
			want:    core.SeverityHarsh,
		},
		{
			name:    "Redundant comparison comment",
			comment: "Boolean comparison '== True' is redundant.",
			want:    core.SeverityNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.comment))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	classifier := NewClassifier(newTestPolicy(t))
	comment := "This is inefficient. Don't loop twice conceptually."

	first := classifier.Classify(comment)
	for range 10 {
		assert.Equal(t, first, classifier.Classify(comment))
	}
}
