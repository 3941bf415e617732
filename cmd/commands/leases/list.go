package leases

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/leasedns/internal/config"
	"nathanbeddoewebdev/leasedns/internal/dhcpd"
	"nathanbeddoewebdev/leasedns/internal/tui"
	"nathanbeddoewebdev/leasedns/internal/zonegen"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ListCommand returns the "leases list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List unique leases",
		Long: `List the lease log's unique leases, one row per MAC.

On a terminal this opens an interactive browser: j/k to move, f to
cycle an all/active/expired filter, r to reload, q to quit. The ZONE
column marks host names already published by the zone's static files.
When stdout is not a terminal a plain table is printed instead.

Examples:
  leasedns leases list
  leasedns leases list -l ./dhcpd.leases | grep printer`,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("root", "r", "", "tinydns root for the ZONE column (default: configured root)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	leasesPath := cmd.Flag("leases").Value.String()

	if term.IsTerminal(int(os.Stdout.Fd())) {
		root := cmd.Flag("root").Value.String()
		if root == "" {
			if cfg, err := config.Load(); err == nil {
				root = cfg.Root
			}
		}
		return tui.RunLeasesList(leasesPath, root)
	}

	set, err := dhcpd.ParseFile(leasesPath)
	if err != nil {
		return err
	}

	var rows []dhcpd.Lease
	for lease := range set.Unique() {
		rows = append(rows, lease)
	}
	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No leases found.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "HOSTNAME\tIP\tMAC\tEXPIRES\tTTL")
	fmt.Fprintln(w, "--------\t--\t---\t-------\t---")

	for _, lease := range rows {
		hostname := lease.Hostname
		if hostname == "" {
			hostname = "-"
		}
		expires := "-"
		if !lease.Ends.IsZero() {
			expires = lease.Ends.Local().Format("2006-01-02 15:04:05")
		}

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			hostname,
			lease.IP,
			lease.MAC,
			expires,
			zonegen.ClampTTL(lease.Ends, now),
		)
	}

	w.Flush()
	return nil
}
