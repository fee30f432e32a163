package cmd

import (
	"github.com/spf13/cobra"

	"erdraw/config"
	"erdraw/tui"
)

func editCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the interactive diagram editor",
		Long: "Open the interactive editor. With a file argument the diagram is\n" +
			"loaded from it (or started fresh if it does not exist yet) and\n" +
			"saved back to it with 's'.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			filename := ""
			if len(args) > 0 {
				filename = args[0]
			}
			return tui.Run(cfg, filename)
		},
	}
}

// loadConfig resolves the --config flag, falling back to the conventional
// location.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	return config.Load(path)
}
