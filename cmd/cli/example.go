package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-mentor/internal/core"
)

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Print a sample review request payload",
	Long: `Print a sample review request payload to stdout.

Pipe it straight back into the review command to try the pipeline:
  mentor-cli example | mentor-cli review`,
	RunE: runExample,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(exampleCmd)
}

// ExampleRequest is the canonical demo payload: a small Python helper and
// three blunt review comments.
func ExampleRequest() *core.ReviewRequest {
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

func runExample(_ *cobra.Command, _ []string) error {
	data, err := json.MarshalIndent(ExampleRequest(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
