package zone

import (
	"fmt"

	"nathanbeddoewebdev/leasedns/internal/tinydns"

	"github.com/spf13/cobra"
)

// SearchCommand returns the "zone search" command.
func SearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <field> <pattern>",
		Short: "Search zone records by field",
		Long: `Print every record whose named field matches a regular expression,
in zone order. A field the record's variant does not declare never
matches, so searching host_name skips name server and mail records.

Examples:
  leasedns zone search host_name '^printer\.'
  leasedns zone search ip '^10\.0\.'
  leasedns zone search ttl '^300$'`,
		Args:         cobra.ExactArgs(2),
		RunE:         runSearch,
		SilenceUsage: true,
	}

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	z, _, err := composeZone(cmd)
	if err != nil {
		return err
	}

	matches, err := z.Search(args[0], args[1])
	if err != nil {
		return err
	}

	for _, record := range matches {
		fmt.Fprint(cmd.OutOrStdout(), tinydns.Serialize(record))
	}
	return nil
}
