package leases

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/leasedns/internal/dhcpd"
	"nathanbeddoewebdev/leasedns/internal/util"
	"nathanbeddoewebdev/leasedns/internal/zonegen"

	"github.com/spf13/cobra"
)

// ShowCommand returns the "leases show" command.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <mac>",
		Short: "Show the lease held by a MAC address",
		Long: `Resolve a MAC address to its lease, picking the latest-expiring one
when the log carries several for the same MAC.

Examples:
  leasedns leases show 00:16:3e:aa:bb:cc`,
		Args:         cobra.ExactArgs(1),
		RunE:         runShow,
		SilenceUsage: true,
	}

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	mac := args[0]
	if err := util.ValidateMAC(mac); err != nil {
		return err
	}

	leasesPath := cmd.Flag("leases").Value.String()
	set, err := dhcpd.ParseFile(leasesPath)
	if err != nil {
		return err
	}

	// dhcpd writes hardware addresses in lower case.
	lease, err := set.ByMAC(strings.ToLower(mac))
	if err != nil {
		return err
	}

	printLeaseDetail(cmd, lease)
	return nil
}

// printLeaseDetail prints a vertical key-value table of the lease.
func printLeaseDetail(cmd *cobra.Command, lease dhcpd.Lease) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  IP:\t%s\n", lease.IP)
	fmt.Fprintf(w, "  MAC:\t%s\n", lease.MAC)

	if lease.Hostname != "" {
		fmt.Fprintf(w, "  Hostname:\t%s\n", lease.Hostname)
	}
	if !lease.Ends.IsZero() {
		fmt.Fprintf(w, "  Expires:\t%s\n", lease.Ends.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "  TTL:\t%d\n", zonegen.ClampTTL(lease.Ends, time.Now()))
	}

	w.Flush()
}
