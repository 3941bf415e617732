package dhcpd

import (
	"fmt"
	"iter"
	"strings"
	"time"

	"nathanbeddoewebdev/leasedns/internal/fsio"
	"nathanbeddoewebdev/leasedns/internal/util"
)

// endsLayout matches the timestamps dhcpd writes, which are recorded in
// the server's local time.
const endsLayout = "2006/01/02 15:04:05"

// ParseFile parses the dhcpd lease log at path.
func ParseFile(path string) (LeaseSet, error) {
	set, err := Parse(fsio.Lines(path))
	if err != nil {
		return nil, fmt.Errorf("dhcpd: parse leases %s: %w", path, err)
	}
	return set, nil
}

// Parse reconstructs lease blocks from the lines of a lease log and
// returns them ordered by expiration, latest first. Blank lines and
// comments are skipped; anything outside a lease block is ignored. A
// trailing block with no closing brace is dropped.
func Parse(lines iter.Seq2[string, error]) (LeaseSet, error) {
	var (
		set     LeaseSet
		current *Lease
	)
	for line, err := range lines {
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case current == nil && strings.HasPrefix(line, "lease "):
			current = &Lease{IP: strings.Fields(line)[1]}
		case current != nil && strings.HasPrefix(line, "}"):
			set = append(set, *current)
			current = nil
		case current != nil:
			if err := current.apply(line); err != nil {
				return nil, err
			}
		}
	}
	set.sort()
	return set, nil
}

// apply folds one statement line into the lease under construction.
// Unrecognized statements are ignored.
func (l *Lease) apply(line string) error {
	fields := strings.Fields(strings.TrimSuffix(line, ";"))
	switch {
	case len(fields) >= 1 && fields[0] == "ends":
		if len(fields) < 4 {
			return fmt.Errorf("dhcpd: %w in %q", ErrMalformedExpiration, line)
		}
		stamp := fields[2] + " " + fields[3]
		ends, err := time.ParseInLocation(endsLayout, stamp, time.Local)
		if err != nil {
			return fmt.Errorf("dhcpd: %w in %q: %v", ErrMalformedExpiration, line, err)
		}
		l.Ends = ends
	case len(fields) >= 3 && fields[0] == "hardware" && fields[1] == "ethernet":
		l.MAC = fields[2]
	case len(fields) >= 2 && fields[0] == "client-hostname":
		// The quoted name may contain spaces, so everything after the
		// keyword is the value. A name that normalizes to nothing must
		// not clobber a name a previous statement already set.
		if name := util.NormalizeHostname(strings.Join(fields[1:], " ")); name != "" {
			l.Hostname = name
		}
	}
	return nil
}
