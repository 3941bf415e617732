package sync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nathanbeddoewebdev/leasedns/internal/config"
	"nathanbeddoewebdev/leasedns/internal/dhcpd"
	"nathanbeddoewebdev/leasedns/internal/journal"
	"nathanbeddoewebdev/leasedns/internal/tinydns"
	"nathanbeddoewebdev/leasedns/internal/tinydnsbin"
	"nathanbeddoewebdev/leasedns/internal/tui"
	"nathanbeddoewebdev/leasedns/internal/zonegen"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCommand returns the "sync" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Regenerate the zone's data file from static files and DHCP leases",
		Long: `Compose the zone from its static files, append one address record per
DHCP lease, and atomically replace <root>/data with the result.

The generated file opens with a warning banner naming the static files;
edit those, not the data file itself. Host names come from each lease's
client-hostname (normalized), overridden per MAC by the macfile when
one is given. Record TTLs track the lease expiration, clamped to
[60, 86400] seconds.

Examples:
  leasedns sync -d example.com --dry-run
  leasedns sync -d example.com -m /etc/leasedns/machines --compile
  leasedns sync --yes                # defaults from 'leasedns config'`,
		PreRunE:      resolveDefaults,
		RunE:         runSync,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("domain", "d", "", "Domain the leased host names live under")
	cmd.Flags().StringP("root", "r", "", "tinydns root directory (default "+config.DefaultRoot+")")
	cmd.Flags().StringP("leases", "l", "", "dhcpd lease log (default "+config.DefaultLeases+")")
	cmd.Flags().StringP("macfile", "m", "", "MAC-to-hostname override file")
	cmd.Flags().StringArrayP("static", "s", nil, "Static zone file (repeatable; default: <root>/*.static)")
	cmd.Flags().Bool("dry-run", false, "Print the composed zone to stdout instead of writing it")
	cmd.Flags().Bool("compile", false, "Run "+tinydnsbin.DefaultBinary+" in the root after writing")
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

// resolveDefaults fills flags that were not explicitly passed from the
// stored configuration, then from the built-in paths. The domain has no
// built-in fallback; it must come from the flag or the config.
func resolveDefaults(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	fromConfig := map[string]string{
		"domain":  cfg.Domain,
		"root":    cfg.Root,
		"leases":  cfg.Leases,
		"macfile": cfg.Macfile,
	}
	for name, value := range fromConfig {
		if !cmd.Flag(name).Changed && value != "" {
			cmd.Flag(name).Value.Set(value)
		}
	}

	if cmd.Flag("root").Value.String() == "" {
		cmd.Flag("root").Value.Set(config.DefaultRoot)
	}
	if cmd.Flag("leases").Value.String() == "" {
		cmd.Flag("leases").Value.Set(config.DefaultLeases)
	}

	if cmd.Flag("domain").Value.String() == "" {
		return fmt.Errorf("no domain specified: use --domain or set a default with 'leasedns config set domain <name>'")
	}
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	started := time.Now()

	domain := strings.TrimLeft(cmd.Flag("domain").Value.String(), ".")
	root := cmd.Flag("root").Value.String()
	leasesPath := cmd.Flag("leases").Value.String()
	macfile := cmd.Flag("macfile").Value.String()
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	compile, _ := cmd.Flags().GetBool("compile")
	yes, _ := cmd.Flags().GetBool("yes")

	staticFiles, _ := cmd.Flags().GetStringArray("static")
	if len(staticFiles) == 0 {
		var err error
		staticFiles, err = zonegen.StaticFiles(root)
		if err != nil {
			return err
		}
	}

	zone := tinydns.NewZone()
	if err := zone.ReadNamed(staticFiles...); err != nil {
		return err
	}
	zone.Prepend(zonegen.Warning(staticFiles))

	leaseSet, err := dhcpd.ParseFile(leasesPath)
	if err != nil {
		return err
	}

	var overrides []zonegen.MACName
	if macfile != "" {
		overrides, err = zonegen.ReadMacfile(macfile)
		if err != nil {
			return err
		}
	}

	dynamics, missing := zonegen.Dynamics(domain, leaseSet, overrides, time.Now())
	for _, m := range missing {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: no lease for %s (%s), skipping\n", m.MAC, m.Hostname)
	}
	zone.Append(dynamics)

	leased := 0
	for _, r := range dynamics.Records() {
		if _, ok := r.(*tinydns.Alias); ok {
			leased++
		}
	}

	if dryRun {
		fmt.Fprint(cmd.OutOrStdout(), zone.Text())
		return nil
	}

	target := filepath.Join(root, "data")
	if !yes && term.IsTerminal(int(os.Stdout.Fd())) {
		if err := tui.ConfirmMerge(target, leased); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Sync cancelled.")
				return nil
			}
			return err
		}
	}

	mergeErr := zone.Merge(root)
	if mergeErr == nil && compile {
		mergeErr = compileZone(cmd, root)
	}

	entry := journal.Record{
		Domain:     domain,
		Root:       root,
		Leases:     leasesPath,
		Sources:    staticFiles,
		Records:    leased,
		Outcome:    journal.OutcomeSuccess,
		DurationMs: time.Since(started).Milliseconds(),
	}
	if mergeErr != nil {
		entry.Outcome = journal.OutcomeError
		entry.Detail = mergeErr.Error()
	}
	recordRun(cmd, entry)

	if mergeErr != nil {
		return mergeErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s with %d DHCP-leased record(s).\n", target, leased)
	return nil
}

// compileZone runs tinydns-data in the root, behind a spinner when
// stdout is a terminal.
func compileZone(cmd *cobra.Command, root string) error {
	compiler := &tinydnsbin.Compiler{Stderr: cmd.ErrOrStderr()}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		return tui.RunWithSpinner("Compiling zone...", func(ctx context.Context) error {
			return compiler.Run(ctx, root)
		})
	}
	return compiler.Run(cmd.Context(), root)
}

// recordRun appends the journal row. The zone write has already
// happened, so a journal failure only warrants a warning.
func recordRun(cmd *cobra.Command, entry journal.Record) {
	repo, err := journal.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: journal unavailable: %v\n", err)
		return
	}
	defer repo.Close()

	if err := repo.Save(&entry); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: journal write failed: %v\n", err)
	}
}
