package util

import "strings"

// NormalizeKey lowercases and trims a string for use as a consistent lookup key.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hostnameSanitizer drops quote characters and turns separators DHCP
// clients like to send into hyphens.
var hostnameSanitizer = strings.NewReplacer(
	`"`, "",
	`'`, "",
	"/", "-",
	`\`, "-",
	"_", "-",
	" ", "-",
)

// NormalizeHostname sanitizes a client-reported host name for use as a
// DNS label: quotes are stripped; slashes, backslashes, underscores,
// and spaces become hyphens; any leading run of hyphens is dropped;
// the rest is lowercased. An input with nothing usable left normalizes
// to the empty string.
func NormalizeHostname(raw string) string {
	name := hostnameSanitizer.Replace(raw)
	name = strings.TrimLeft(name, "-")
	return strings.ToLower(name)
}
