package cmd

import (
	"github.com/bmatsuo/rkt/repl"
	"github.com/spf13/cobra"
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("max-depth") {
			settings.MaxDepth = replMaxDepth
		}
		return repl.RunRepl(settings.Prompt, settings.Configs()...)
	},
}

var replMaxDepth int

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().IntVar(&replMaxDepth, "max-depth", 0,
		"Maximum depth of nested function calls")
}
