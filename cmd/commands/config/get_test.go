package config

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/leasedns/internal/config"
)

func TestGet_Domain_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, stderr := execConfig(t, "get", "domain")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_Domain_Set(t *testing.T) {
	path := setupTestConfig(t)

	// Write a config value directly.
	cfg := &config.Config{Domain: "example.com"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get", "domain")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	if !strings.Contains(stdout, "example.com") {
		t.Errorf("expected 'example.com', got: %s", stdout)
	}
}

func TestGet_NoKeyListsEverything(t *testing.T) {
	path := setupTestConfig(t)

	cfg := &config.Config{Domain: "example.com", Root: "/srv/tinydns"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "get")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	for _, want := range []string{"domain: example.com", "root: /srv/tinydns", "leases: (not set)", "macfile: (not set)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in the listing, got: %s", want, stdout)
		}
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}
