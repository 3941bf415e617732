package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/leasedns/internal/config"
	"nathanbeddoewebdev/leasedns/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  leasedns config set domain example.com\n" +
			"  leasedns config set root /etc/djbdns/tinydns",
		Args: cobra.ExactArgs(2),
		Run:  runSet,
	}

	return cmd
}

// normalizers adjust a value before validation and save. Path-valued
// keys keep their case, so only the domain is listed.
var normalizers = map[string]func(value string) string{
	"domain": func(value string) string {
		return util.NormalizeKey(strings.TrimLeft(value, "."))
	},
}

// validators maps key names to optional pre-save validation functions.
// Keys not present in this map have no extra validation.
var validators = map[string]func(cmd *cobra.Command, value string) error{
	"domain": validateDomain,
}

func runSet(cmd *cobra.Command, args []string) {
	key := util.NormalizeKey(args[0])
	value := strings.TrimSpace(args[1])

	spec := config.Lookup(key)
	if spec == nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: unknown configuration key %q\n", args[0])
		fmt.Fprintf(cmd.ErrOrStderr(), "Valid keys: %s\n", strings.Join(config.KeyNames(), ", "))
		return
	}

	if normalize, ok := normalizers[spec.Name]; ok {
		value = normalize(value)
	}
	if validate, ok := validators[spec.Name]; ok {
		if err := validate(cmd, value); err != nil {
			return // validate already printed the error
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
}

// validateDomain checks that the value can actually be served as a
// DNS name.
func validateDomain(cmd *cobra.Command, value string) error {
	if err := util.ValidateHostName(value); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}
