package zone

import (
	"fmt"

	"github.com/spf13/cobra"
)

// CatCommand returns the "zone cat" command.
func CatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat",
		Short: "Print the composed zone",
		Long: `Compose the zone from its static files and print it.

This is the hand-maintained zone only: no warning banner and no
DHCP-leased records. Use 'leasedns sync --dry-run' to preview the full
generated file.

Examples:
  leasedns zone cat
  leasedns zone cat -r /etc/djbdns/tinydns
  leasedns zone cat -s hosts.static -s mail.static`,
		Args:         cobra.ExactArgs(0),
		RunE:         runCat,
		SilenceUsage: true,
	}

	return cmd
}

func runCat(cmd *cobra.Command, args []string) error {
	z, _, err := composeZone(cmd)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), z.Text())
	return nil
}
