package zonegen

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/leasedns/internal/fsio"
)

// MACName is one hard-coded MAC address to host name mapping, for
// hosts that do not report a name to the DHCP server.
type MACName struct {
	MAC      string
	Hostname string
}

// ReadMacfile parses a MAC override file: one MAC address and host
// name per line, whitespace separated. Blank lines and # comments are
// skipped.
func ReadMacfile(path string) ([]MACName, error) {
	var out []MACName
	for line, err := range fsio.Lines(path) {
		if err != nil {
			return nil, fmt.Errorf("zonegen: read macfile %s: %w", path, err)
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("zonegen: macfile %s: want MAC and host name, got %q", path, line)
		}
		out = append(out, MACName{MAC: fields[0], Hostname: fields[1]})
	}
	return out, nil
}
