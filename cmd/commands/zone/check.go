package zone

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/leasedns/internal/tinydns"
	"nathanbeddoewebdev/leasedns/internal/util"
	"nathanbeddoewebdev/leasedns/internal/zonegen"

	"github.com/spf13/cobra"
)

// CheckCommand returns the "zone check" command.
func CheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the zone's static files",
		Long: `Parse every static file and validate the DNS names its records carry.

A file that fails to parse is an error and fails the check. A record
whose name is not RFC-valid is only a warning; tinydns serves such
names happily, but most resolvers will not look them up.

Examples:
  leasedns zone check
  leasedns zone check -r /etc/djbdns/tinydns`,
		Args:         cobra.ExactArgs(0),
		RunE:         runCheck,
		SilenceUsage: true,
	}

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := cmd.Flag("root").Value.String()

	staticFiles, _ := cmd.Flags().GetStringArray("static")
	if len(staticFiles) == 0 {
		var err error
		staticFiles, err = zonegen.StaticFiles(root)
		if err != nil {
			return err
		}
	}
	if len(staticFiles) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No static files found.")
		return nil
	}

	// Each file is read on its own so one bad file cannot hide
	// problems in the others.
	parseErrors, warnings := 0, 0
	for _, path := range staticFiles {
		section := tinydns.NewSection(path)
		if err := section.Read(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: %v\n", err)
			parseErrors++
			continue
		}

		for _, record := range section.Records() {
			for _, name := range tinydns.Names(record) {
				if err := util.ValidateHostName(name); err != nil {
					line := strings.TrimSuffix(tinydns.Serialize(record), "\n")
					fmt.Fprintf(cmd.ErrOrStderr(), "WARNING %s: %s: %v\n", path, line, err)
					warnings++
				}
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Checked %d file(s): %d error(s), %d warning(s).\n",
		len(staticFiles), parseErrors, warnings)

	if parseErrors > 0 {
		return fmt.Errorf("%d static file(s) failed to parse", parseErrors)
	}
	return nil
}
