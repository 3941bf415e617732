package zonegen

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"nathanbeddoewebdev/leasedns/internal/dhcpd"
)

var testNow = time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)

func TestWarning(t *testing.T) {
	section := Warning([]string{
		"/etc/djbdns/tinydns/hosts.static",
		"/etc/djbdns/tinydns/mail.static",
	})

	want := "# DO NOT EDIT! ALL CHANGES WILL BE LOST!\n" +
		"# This file is generated automatically from the following files.\n" +
		"# Edit them instead:\n" +
		"#/etc/djbdns/tinydns/hosts.static\n" +
		"#/etc/djbdns/tinydns/mail.static\n"
	if diff := cmp.Diff(want, section.Text()); diff != "" {
		t.Errorf("warning section mismatch (-want +got):\n%s", diff)
	}
}

func TestClampTTL(t *testing.T) {
	tests := []struct {
		name string
		ends time.Time
		want int
	}{
		{"short lease raised to floor", testNow.Add(30 * time.Second), 60},
		{"in range passes through", testNow.Add(3600 * time.Second), 3600},
		{"long lease capped at a day", testNow.Add(1e6 * time.Second), 86400},
		{"expired lease gets floor", testNow.Add(-time.Hour), 60},
		{"no expiration gets floor", time.Time{}, 60},
		{"exactly the floor", testNow.Add(60 * time.Second), 60},
		{"exactly the cap", testNow.Add(86400 * time.Second), 86400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampTTL(tt.ends, testNow); got != tt.want {
				t.Errorf("ClampTTL = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDynamics_LeasedRecords(t *testing.T) {
	leases := dhcpd.LeaseSet{
		{IP: "10.0.0.9", MAC: "00:16:3e:dd:ee:ff", Hostname: "jo-doe", Ends: testNow.Add(2 * time.Hour)},
		{IP: "10.0.0.5", MAC: "00:16:3e:aa:bb:cc", Hostname: "printer", Ends: testNow.Add(time.Hour)},
	}

	section, missing := Dynamics("example.com", leases, nil, testNow)
	if len(missing) != 0 {
		t.Errorf("expected no missing overrides, got %v", missing)
	}

	want := "################### DHCP-Leased records for the example.com domain ###################\n" +
		"=jo-doe.example.com:10.0.0.9:7200\n" +
		"=printer.example.com:10.0.0.5:3600\n"
	if diff := cmp.Diff(want, section.Text()); diff != "" {
		t.Errorf("dynamics section mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamics_SkipsNamelessLeases(t *testing.T) {
	leases := dhcpd.LeaseSet{
		{IP: "10.0.0.5", MAC: "00:16:3e:aa:bb:cc", Ends: testNow.Add(time.Hour)},
	}

	section, _ := Dynamics("example.com", leases, nil, testNow)
	if got := len(section.Records()); got != 1 {
		t.Errorf("expected only the header comment, got %d records", got)
	}
}

func TestDynamics_OverrideBeatsClientName(t *testing.T) {
	leases := dhcpd.LeaseSet{
		{IP: "10.0.0.5", MAC: "00:16:3e:aa:bb:cc", Hostname: "printer", Ends: testNow.Add(time.Hour)},
	}
	overrides := []MACName{{MAC: "00:16:3e:aa:bb:cc", Hostname: "printer"}}

	section, missing := Dynamics("example.com", leases, overrides, testNow)
	if len(missing) != 0 {
		t.Errorf("expected no missing overrides, got %v", missing)
	}

	want := "################### DHCP-Leased records for the example.com domain ###################\n" +
		"=printer.example.com:10.0.0.5:3600\n"
	if diff := cmp.Diff(want, section.Text()); diff != "" {
		t.Errorf("dynamics section mismatch (-want +got):\n%s", diff)
	}
}

func TestDynamics_OverrideWithoutLeaseStillClaimsName(t *testing.T) {
	leases := dhcpd.LeaseSet{
		{IP: "10.0.0.7", MAC: "00:16:3e:11:22:33", Hostname: "printer", Ends: testNow.Add(time.Hour)},
	}
	overrides := []MACName{{MAC: "00:16:3e:aa:bb:cc", Hostname: "printer"}}

	section, missing := Dynamics("example.com", leases, overrides, testNow)

	wantMissing := []MACName{{MAC: "00:16:3e:aa:bb:cc", Hostname: "printer"}}
	if diff := cmp.Diff(wantMissing, missing); diff != "" {
		t.Errorf("missing overrides mismatch (-want +got):\n%s", diff)
	}

	// The stray lease claiming the override's name must not produce a
	// record either.
	want := "################### DHCP-Leased records for the example.com domain ###################\n"
	if diff := cmp.Diff(want, section.Text()); diff != "" {
		t.Errorf("dynamics section mismatch (-want +got):\n%s", diff)
	}
}
