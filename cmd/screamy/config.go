package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/screamy-ball/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default game config",
	Long: `Print the built-in game config as YAML. Save it to
~/.screamy/configs/screamy.yaml (or pass it with --config) and edit to taste.

Examples:
  screamy config > ~/.screamy/configs/screamy.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
		return err
	},
}

