// Package zonegen derives the generated parts of a tinydns zone from
// DHCP leases and hard-coded MAC overrides.
package zonegen

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/leasedns/internal/dhcpd"
	"nathanbeddoewebdev/leasedns/internal/tinydns"
)

// TTL bounds for derived records, in seconds. A lease about to expire
// still serves for a minute; a long lease never caches for more than a
// day.
const (
	minTTL = 60
	maxTTL = 86400
)

// Warning returns the header section marking the composed data file as
// generated, naming the source files to edit instead.
func Warning(sources []string) *tinydns.Section {
	section := tinydns.NewSection("")
	section.Add(
		&tinydns.Comment{Text: " DO NOT EDIT! ALL CHANGES WILL BE LOST!"},
		&tinydns.Comment{Text: " This file is generated automatically from the following files."},
		&tinydns.Comment{Text: " Edit them instead:"},
	)
	for _, source := range sources {
		section.Add(&tinydns.Comment{Text: source})
	}
	return section
}

// Dynamics builds the DHCP-leased record section for domain as of now.
// Overrides are resolved first and their host names claim the name
// whether or not the MAC holds a current lease, so a client-reported
// name can never shadow a hard-coded one. Every remaining lease with a
// host name contributes one record. Returns the section and the
// overrides whose MAC had no lease.
func Dynamics(domain string, leases dhcpd.LeaseSet, overrides []MACName, now time.Time) (*tinydns.Section, []MACName) {
	section := tinydns.NewSection("")
	section.Add(&tinydns.Comment{Text: fmt.Sprintf(
		"%s DHCP-Leased records for the %s domain %s",
		strings.Repeat("#", 18), domain, strings.Repeat("#", 19),
	)})

	taken := make(map[string]bool, len(overrides))
	var missing []MACName
	for _, override := range overrides {
		taken[override.Hostname] = true
		lease, err := leases.ByMAC(override.MAC)
		if err != nil {
			missing = append(missing, override)
			continue
		}
		section.Add(aliasFor(override.Hostname, domain, lease, now))
	}

	for lease := range leases.Unique() {
		if lease.Hostname == "" || taken[lease.Hostname] {
			continue
		}
		section.Add(aliasFor(lease.Hostname, domain, lease, now))
	}
	return section, missing
}

func aliasFor(hostname, domain string, lease dhcpd.Lease, now time.Time) *tinydns.Alias {
	return &tinydns.Alias{
		HostName: hostname + "." + domain,
		IP:       lease.IP,
		TTL:      strconv.Itoa(ClampTTL(lease.Ends, now)),
		Ptr:      true,
	}
}

// ClampTTL converts a lease expiration into a record TTL in seconds.
// Leases already expired, or with no expiration at all, get the
// minimum.
func ClampTTL(ends, now time.Time) int {
	ttl := int(ends.Sub(now).Seconds())
	return min(max(ttl, minTTL), maxTTL)
}
