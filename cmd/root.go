package cmd

import (
	"os"

	cfgcmd "nathanbeddoewebdev/leasedns/cmd/commands/config"
	"nathanbeddoewebdev/leasedns/cmd/commands/journal"
	"nathanbeddoewebdev/leasedns/cmd/commands/leases"
	"nathanbeddoewebdev/leasedns/cmd/commands/sync"
	"nathanbeddoewebdev/leasedns/cmd/commands/zone"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "leasedns",
		Short: "A CLI tool for publishing DHCP leases into a tinydns zone",
		Long: `leasedns keeps a tinydns zone in step with a DHCP server's lease log.
It composes the zone from hand-maintained static files, appends one
address record per active lease, and atomically replaces the zone's
data file.

Quick start:
  leasedns config set domain example.com   # Store your default domain
  leasedns leases list                      # Browse the current leases
  leasedns sync --dry-run                   # Preview the generated zone
  leasedns sync                             # Write it for real`,
	}

	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(journal.NewCommand())
	cmd.AddCommand(leases.NewCommand())
	cmd.AddCommand(sync.NewCommand())
	cmd.AddCommand(zone.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		os.Exit(1)
	}
}
