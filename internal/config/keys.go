package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/leasedns/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "domain").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "domain",
		Description: "Domain appended to leased host names when --domain is not given",
		Get:         func(cfg *Config) string { return cfg.Domain },
		Set:         func(cfg *Config, v string) { cfg.Domain = v },
	},
	{
		Name:        "root",
		Description: "tinydns root directory used when --root is not given",
		Get:         func(cfg *Config) string { return cfg.Root },
		Set:         func(cfg *Config, v string) { cfg.Root = v },
	},
	{
		Name:        "leases",
		Description: "dhcpd leases file used when --leases is not given",
		Get:         func(cfg *Config) string { return cfg.Leases },
		Set:         func(cfg *Config, v string) { cfg.Leases = v },
	},
	{
		Name:        "macfile",
		Description: "MAC-to-hostname override file used when --macfile is not given",
		Get:         func(cfg *Config) string { return cfg.Macfile },
		Set:         func(cfg *Config, v string) { cfg.Macfile = v },
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
