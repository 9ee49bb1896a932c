package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "mentor-cli",
	Short: "mentor-cli is the command-line interface for Code Mentor.",
	Long: `A CLI for turning harsh code review comments into empathetic, educational
feedback. Input is a JSON payload with a code snippet and a list of review
comments; output is a markdown or JSON report.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)
}

// initConfig reads in ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("CM")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
