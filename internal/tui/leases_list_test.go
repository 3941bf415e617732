package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"nathanbeddoewebdev/leasedns/internal/dhcpd"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune{r}})
}

func filteredIPs(m leasesListModel) []string {
	ips := make([]string, 0, len(m.filtered))
	for _, lease := range m.filtered {
		ips = append(ips, lease.IP)
	}
	return ips
}

func TestLeaseState(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		ends time.Time
		want string
	}{
		{"plenty of time left", now.Add(2 * time.Hour), "active"},
		{"less than an hour left", now.Add(30 * time.Minute), "expiring"},
		{"already over", now.Add(-time.Minute), "expired"},
		{"no expiration recorded", time.Time{}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lease := dhcpd.Lease{Ends: tt.ends}
			if got := leaseState(lease, now); got != tt.want {
				t.Errorf("leaseState = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdate_LoadedMessage(t *testing.T) {
	m := newLeasesListModel("/var/lib/dhcpd/dhcpd.leases", "")

	leases := []dhcpd.Lease{
		{IP: "10.0.0.5", MAC: "00:16:3e:aa:bb:cc", Hostname: "printer", Ends: time.Now().Add(time.Hour)},
		{IP: "10.0.0.9", MAC: "00:16:3e:dd:ee:ff", Hostname: "nas", Ends: time.Now().Add(-time.Hour)},
	}
	updated, _ := m.Update(leasesLoadedMsg{leases: leases, published: map[string]bool{"printer": true}})
	got := updated.(leasesListModel)

	if got.loading {
		t.Error("expected loading to clear after leases arrive")
	}
	if got.status != "2 lease(s)" {
		t.Errorf("status = %q, want %q", got.status, "2 lease(s)")
	}
	if diff := cmp.Diff([]string{"10.0.0.5", "10.0.0.9"}, filteredIPs(got)); diff != "" {
		t.Errorf("filtered leases mismatch (-want +got):\n%s", diff)
	}
	if !got.published["printer"] {
		t.Error("expected printer to stay marked as published")
	}
}

func TestUpdate_FilterKeyCyclesStates(t *testing.T) {
	m := newLeasesListModel("/var/lib/dhcpd/dhcpd.leases", "")

	leases := []dhcpd.Lease{
		{IP: "10.0.0.5", Hostname: "printer", Ends: time.Now().Add(time.Hour)},
		{IP: "10.0.0.9", Hostname: "nas", Ends: time.Now().Add(-time.Hour)},
	}
	updated, _ := m.Update(leasesLoadedMsg{leases: leases})
	got := updated.(leasesListModel)

	updated, _ = got.Update(keyMsg('f'))
	got = updated.(leasesListModel)
	if got.stateFilter != "active" {
		t.Fatalf("after one press stateFilter = %q, want %q", got.stateFilter, "active")
	}
	if diff := cmp.Diff([]string{"10.0.0.5"}, filteredIPs(got)); diff != "" {
		t.Errorf("active filter mismatch (-want +got):\n%s", diff)
	}

	updated, _ = got.Update(keyMsg('f'))
	got = updated.(leasesListModel)
	if got.stateFilter != "expired" {
		t.Fatalf("after two presses stateFilter = %q, want %q", got.stateFilter, "expired")
	}
	if diff := cmp.Diff([]string{"10.0.0.9"}, filteredIPs(got)); diff != "" {
		t.Errorf("expired filter mismatch (-want +got):\n%s", diff)
	}

	updated, _ = got.Update(keyMsg('f'))
	got = updated.(leasesListModel)
	if got.stateFilter != "" {
		t.Fatalf("after three presses stateFilter = %q, want all", got.stateFilter)
	}
	if len(got.filtered) != 2 {
		t.Errorf("expected all leases back, got %d", len(got.filtered))
	}
}

func TestUpdate_ErrorMessage(t *testing.T) {
	m := newLeasesListModel("/var/lib/dhcpd/dhcpd.leases", "")

	updated, _ := m.Update(leasesErrorMsg{err: errors.New("no such file")})
	got := updated.(leasesListModel)

	if got.loading {
		t.Error("expected loading to clear on error")
	}
	if got.err == nil {
		t.Fatal("expected the error to be recorded")
	}
	if !got.statusIsError {
		t.Error("expected the status line to be marked as an error")
	}
}

func TestUpdate_CursorStaysInsideFilteredList(t *testing.T) {
	m := newLeasesListModel("/var/lib/dhcpd/dhcpd.leases", "")

	leases := []dhcpd.Lease{
		{IP: "10.0.0.5", Hostname: "printer", Ends: time.Now().Add(time.Hour)},
		{IP: "10.0.0.6", Hostname: "nas", Ends: time.Now().Add(2 * time.Hour)},
		{IP: "10.0.0.9", Hostname: "lab", Ends: time.Now().Add(-time.Hour)},
	}
	updated, _ := m.Update(leasesLoadedMsg{leases: leases})
	got := updated.(leasesListModel)

	updated, _ = got.Update(keyMsg('G'))
	got = updated.(leasesListModel)
	if got.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", got.cursor)
	}

	// Narrowing the list must pull the cursor back in range.
	updated, _ = got.Update(keyMsg('f'))
	got = updated.(leasesListModel)
	if got.cursor >= len(got.filtered) {
		t.Errorf("cursor %d escaped the filtered list of %d", got.cursor, len(got.filtered))
	}
}
