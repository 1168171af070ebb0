package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	settings = DefaultSettings()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rkt",
	Short: "A small Racket interpreter",
	Long: `rkt evaluates programs written in a subset of Racket.

Source files are run with the run command.  The repl command starts an
interactive session.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		required := path != ""
		if !required {
			path = defaultSettingsPath()
		}
		s, err := LoadSettings(path, required)
		if err != nil {
			return err
		}
		settings = s
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen once
// to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Settings file (default is $HOME/.rkt.yaml)")
}
