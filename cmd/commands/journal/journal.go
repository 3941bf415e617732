package journal

import "github.com/spf13/cobra"

// NewCommand returns the "journal" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "View and manage sync run history",
		Long: "View a local journal of zone sync runs and prune old entries.\n\n" +
			"The journal is stored locally in ~/.config/leasedns/leasedns.db.",
		SilenceUsage: true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}
