// Package cmd wires the erdraw command line: the interactive editor plus the
// export and SQL composition subcommands.
package cmd

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

// Diagnostic colors used across subcommands.
var (
	good = color.New(color.FgGreen)
	bad  = color.New(color.FgRed)
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "erdraw",
	Short: "erdraw — an entity-relationship diagram editor for the terminal",
	Long: "erdraw is an entity-relationship diagram editor.\n" +
		"Draw entities, actions and attributes, connect them with\n" +
		"cardinality markers, and export the result as PNG or JSON.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.SetVersionTemplate("erdraw {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/erdraw/config.toml)")

	rootCmd.AddCommand(
		editCmd(),
		exportCmd(),
		sqlCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		bad.Printf("erdraw: %v\n", err)
	}
	return err
}
