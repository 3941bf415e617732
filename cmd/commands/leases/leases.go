package leases

import (
	"fmt"

	"nathanbeddoewebdev/leasedns/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "leases" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leases",
		Short: "Inspect the DHCP server's lease log",
		Long: "Browse and query the leases dhcpd has handed out.\n\n" +
			"A MAC that appears several times in the log resolves to its\n" +
			"latest-expiring lease, matching what 'leasedns sync' publishes.",
		PersistentPreRunE: resolveLeases,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())

	cmd.PersistentFlags().StringP("leases", "l", "", "dhcpd lease log (default "+config.DefaultLeases+")")

	return cmd
}

// resolveLeases ensures the --leases flag has a value, falling back to
// the configured path and then the built-in default.
func resolveLeases(cmd *cobra.Command, args []string) error {
	if cmd.Flag("leases").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Leases != "" {
		cmd.Flag("leases").Value.Set(cfg.Leases)
		return nil
	}

	cmd.Flag("leases").Value.Set(config.DefaultLeases)
	return nil
}
