package leases

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/leasedns/internal/config"
	"nathanbeddoewebdev/leasedns/internal/dhcpd"
)

const leasesFixture = `lease 10.0.0.5 {
  ends 2 2020/01/04 12:00:00;
  hardware ethernet 00:16:3e:aa:bb:cc;
  client-hostname "printer";
}
lease 10.0.0.9 {
  ends 2 2020/01/04 14:00:00;
  hardware ethernet 00:16:3e:dd:ee:ff;
}
`

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
}

func writeLeases(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dhcpd.leases")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// execLeases runs the leases command with the given args. Tests always
// take the non-terminal path since go test pipes stdout.
func execLeases(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// --- list tests ---

func TestList_PlainTable(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, leasesFixture)

	stdout, stderr, err := execLeases(t, "list", "-l", path)
	if err != nil {
		t.Fatalf("list failed: %v\nstderr: %s", err, stderr)
	}

	if !strings.Contains(stdout, "HOSTNAME") {
		t.Errorf("expected a table header, got: %s", stdout)
	}
	for _, want := range []string{"printer", "10.0.0.5", "00:16:3e:aa:bb:cc", "10.0.0.9"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in the table, got: %s", want, stdout)
		}
	}
}

func TestList_NamelessLeaseShowsDash(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, leasesFixture)

	stdout, _, err := execLeases(t, "list", "-l", path)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	// The 10.0.0.9 lease has no client-hostname.
	for _, line := range strings.Split(stdout, "\n") {
		if strings.Contains(line, "10.0.0.9") && !strings.HasPrefix(line, "-") {
			t.Errorf("expected a dash for the nameless lease, got: %q", line)
		}
	}
}

func TestList_EmptyLog(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, "# lease file is empty\n")

	stdout, _, err := execLeases(t, "list", "-l", path)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "No leases found.") {
		t.Errorf("expected the empty message, got: %s", stdout)
	}
}

// --- show tests ---

func TestShow_FindsLease(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, leasesFixture)

	stdout, stderr, err := execLeases(t, "show", "00:16:3e:aa:bb:cc", "-l", path)
	if err != nil {
		t.Fatalf("show failed: %v\nstderr: %s", err, stderr)
	}

	for _, want := range []string{"10.0.0.5", "00:16:3e:aa:bb:cc", "printer"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in the detail, got: %s", want, stdout)
		}
	}
}

func TestShow_UppercaseMAC(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, leasesFixture)

	stdout, _, err := execLeases(t, "show", "00:16:3E:AA:BB:CC", "-l", path)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(stdout, "10.0.0.5") {
		t.Errorf("expected the lease found case-insensitively, got: %s", stdout)
	}
}

func TestShow_NotFound(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, leasesFixture)

	_, stderr, err := execLeases(t, "show", "00:16:3e:00:00:01", "-l", path)
	if err == nil {
		t.Fatal("expected an error for an unknown MAC")
	}
	if !errors.Is(err, dhcpd.ErrLeaseNotFound) {
		t.Errorf("expected ErrLeaseNotFound, got: %v", err)
	}
	if !strings.Contains(stderr, "lease not found") {
		t.Errorf("expected the not-found message, got: %s", stderr)
	}
}

func TestShow_InvalidMAC(t *testing.T) {
	setupTestConfig(t)
	path := writeLeases(t, leasesFixture)

	_, stderr, err := execLeases(t, "show", "not-a-mac", "-l", path)
	if err == nil {
		t.Fatal("expected an error for a malformed MAC")
	}
	if !strings.Contains(stderr, "not a valid MAC address") {
		t.Errorf("expected the validation message, got: %s", stderr)
	}
}
