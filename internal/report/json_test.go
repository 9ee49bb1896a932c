package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-mentor/internal/core"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input     string
		want      Format
		expectErr bool
	}{
		{input: "", want: FormatMarkdown},
		{input: "markdown", want: FormatMarkdown},
		{input: "md", want: FormatMarkdown},
		{input: "json", want: FormatJSON},
		{input: "xml", expectErr: true},
	}

	for _, tt := range tests {
		t.Run("format "+tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(sampleReport())
	require.NoError(t, err)

	var decoded core.ReviewReport
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded.Analyses, 2)
	assert.Equal(t, "Variable 'u' is a bad name.", decoded.Analyses[0].OriginalComment)
	assert.Equal(t, core.SeverityHarsh, decoded.Analyses[0].Severity)
	assert.Equal(t, "The code is on a good path.", decoded.Summary)
}

func TestRenderDispatch(t *testing.T) {
	r := sampleReport()

	md, err := Render(r, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Empathetic Code Review Report")

	js, err := Render(r, FormatJSON)
	require.NoError(t, err)
	assert.True(t, json.Valid(js))

	_, err = Render(r, Format("xml"))
	assert.Error(t, err)
}
