package zone

import (
	"fmt"

	"nathanbeddoewebdev/leasedns/internal/config"
	"nathanbeddoewebdev/leasedns/internal/tinydns"
	"nathanbeddoewebdev/leasedns/internal/zonegen"

	"github.com/spf13/cobra"
)

// NewCommand returns the "zone" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "zone",
		Short: "Inspect and compile the tinydns zone",
		Long: "Compose the zone from its static files, search it, validate its\n" +
			"names, and run the tinydns-data compiler.",
		PersistentPreRunE: resolveRoot,
	}

	cmd.AddCommand(CatCommand())
	cmd.AddCommand(SearchCommand())
	cmd.AddCommand(CheckCommand())
	cmd.AddCommand(CompileCommand())

	cmd.PersistentFlags().StringP("root", "r", "", "tinydns root directory (default "+config.DefaultRoot+")")
	cmd.PersistentFlags().StringArrayP("static", "s", nil, "Static zone file (repeatable; default: <root>/*.static)")

	return cmd
}

// resolveRoot ensures the --root flag has a value, falling back to the
// configured root and then the built-in default.
func resolveRoot(cmd *cobra.Command, args []string) error {
	if cmd.Flag("root").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Root != "" {
		cmd.Flag("root").Value.Set(cfg.Root)
		return nil
	}

	cmd.Flag("root").Value.Set(config.DefaultRoot)
	return nil
}

// composeZone reads the static files named by --static (or found under
// the root) into a fresh zone, returning the file list alongside.
func composeZone(cmd *cobra.Command) (*tinydns.Zone, []string, error) {
	root := cmd.Flag("root").Value.String()

	staticFiles, _ := cmd.Flags().GetStringArray("static")
	if len(staticFiles) == 0 {
		var err error
		staticFiles, err = zonegen.StaticFiles(root)
		if err != nil {
			return nil, nil, err
		}
	}

	z := tinydns.NewZone()
	if err := z.ReadNamed(staticFiles...); err != nil {
		return nil, nil, err
	}
	return z, staticFiles, nil
}
