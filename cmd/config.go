package cmd

import (
	"fmt"
	"log/slog"

	"github.com/SteveGJones/Active-Meeting-Listener/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
	// A broken config file must not stop "config init" from running.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(slog.LevelInfo)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an annotated sample config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.DefaultConfigPath(); err != nil {
				return err
			}
		}
		if err := config.CreateSample(path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
