// Package dhcpd reads ISC dhcpd lease logs and resolves, for every
// hardware address, the lease that expires last.
package dhcpd

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// Lease is one reconstructed lease block from a dhcpd lease log.
type Lease struct {
	IP       string
	MAC      string
	Hostname string

	// Ends is the lease expiration in local time. The zero value means
	// the block carried no parseable ends line.
	Ends time.Time
}

// LeaseSet holds the leases of a parsed log ordered by expiration,
// latest first. Leases without an expiration sort to the end.
type LeaseSet []Lease

func (s LeaseSet) sort() {
	slices.SortStableFunc(s, func(a, b Lease) int {
		return b.Ends.Compare(a.Ends)
	})
}

// ByMAC returns the most current lease held by the given hardware
// address.
func (s LeaseSet) ByMAC(mac string) (Lease, error) {
	for _, lease := range s {
		if lease.MAC == mac {
			return lease, nil
		}
	}
	return Lease{}, fmt.Errorf("dhcpd: %w for MAC %s", ErrLeaseNotFound, mac)
}

// Unique yields the most current lease for every hardware address in
// the set, latest expiration first. The sequence is restartable.
func (s LeaseSet) Unique() iter.Seq[Lease] {
	return func(yield func(Lease) bool) {
		seen := make(map[string]bool, len(s))
		for _, lease := range s {
			if seen[lease.MAC] {
				continue
			}
			seen[lease.MAC] = true
			if !yield(lease) {
				return
			}
		}
	}
}
