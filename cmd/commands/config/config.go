package config

import (
	"nathanbeddoewebdev/leasedns/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage leasedns configuration",
		Long: "View and modify persistent leasedns settings.\n\n" +
			"Configuration is stored at ~/.config/leasedns/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
