package zone

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/leasedns/internal/config"

	"github.com/google/go-cmp/cmp"
)

// setupTestConfig points the config package at a temp file so resolveRoot
// never reads the developer's real configuration.
func setupTestConfig(t *testing.T) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// execZone runs the zone command with the given args and returns its
// output streams and execution error.
func execZone(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

// --- cat tests ---

func TestCat_ComposesInNameOrder(t *testing.T) {
	setupTestConfig(t)
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b-mail.static"), "@example.com:192.0.2.25:mail.example.com:10\n")
	writeFile(t, filepath.Join(root, "a-hosts.static"), "+www.example.com:192.0.2.10:300\n")

	stdout, stderr, err := execZone(t, "cat", "-r", root)
	if err != nil {
		t.Fatalf("cat failed: %v\nstderr: %s", err, stderr)
	}

	want := "+www.example.com:192.0.2.10:300\n" +
		"\n" +
		"@example.com:192.0.2.25:mail.example.com:10\n"
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("composed zone mismatch (-want +got):\n%s", diff)
	}
}

func TestCat_ExplicitStaticList(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts.static")
	writeFile(t, hosts, "+www.example.com:192.0.2.10:300\n")

	stdout, stderr, err := execZone(t, "cat", "-s", hosts)
	if err != nil {
		t.Fatalf("cat failed: %v\nstderr: %s", err, stderr)
	}
	if stdout != "+www.example.com:192.0.2.10:300\n" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

// --- search tests ---

func TestSearch_FindsByField(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts.static")
	writeFile(t, hosts,
		"+www.example.com:192.0.2.10:300\n"+
			"=printer.example.com:10.0.0.5:60\n")

	stdout, stderr, err := execZone(t, "search", "host_name", `^printer\.`, "-s", hosts)
	if err != nil {
		t.Fatalf("search failed: %v\nstderr: %s", err, stderr)
	}
	if stdout != "=printer.example.com:10.0.0.5:60\n" {
		t.Errorf("unexpected matches: %q", stdout)
	}
}

func TestSearch_UndeclaredFieldMatchesNothing(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	mail := filepath.Join(dir, "mail.static")
	writeFile(t, mail, "@example.com:192.0.2.25:mail.example.com:10\n")

	stdout, stderr, err := execZone(t, "search", "host_name", ".", "-s", mail)
	if err != nil {
		t.Fatalf("search failed: %v\nstderr: %s", err, stderr)
	}
	if stdout != "" {
		t.Errorf("mail records have no host_name field, got: %q", stdout)
	}
}

func TestSearch_BadPattern(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts.static")
	writeFile(t, hosts, "+www.example.com:192.0.2.10:300\n")

	_, stderr, err := execZone(t, "search", "host_name", "[", "-s", hosts)
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
	if !strings.Contains(stderr, "bad search pattern") {
		t.Errorf("expected a pattern error, got: %s", stderr)
	}
}

// --- check tests ---

func TestCheck_CleanZone(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts.static")
	writeFile(t, hosts, "+www.example.com:192.0.2.10:300\n")

	stdout, stderr, err := execZone(t, "check", "-s", hosts)
	if err != nil {
		t.Fatalf("check failed: %v\nstderr: %s", err, stderr)
	}
	if !strings.Contains(stdout, "0 error(s), 0 warning(s)") {
		t.Errorf("expected a clean summary, got: %s", stdout)
	}
}

func TestCheck_WarnsOnTrailingDot(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	hosts := filepath.Join(dir, "hosts.static")
	writeFile(t, hosts, "+www.example.com.:192.0.2.10:300\n")

	stdout, stderr, err := execZone(t, "check", "-s", hosts)
	if err != nil {
		t.Fatalf("warnings alone must not fail the check: %v", err)
	}
	if !strings.Contains(stderr, "WARNING") {
		t.Errorf("expected a warning on stderr, got: %s", stderr)
	}
	if !strings.Contains(stdout, "1 warning(s)") {
		t.Errorf("expected the warning counted, got: %s", stdout)
	}
}

func TestCheck_ParseFailureIsError(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.static")
	good := filepath.Join(dir, "good.static")
	writeFile(t, bad, "!bogus:1\n")
	writeFile(t, good, "+www.example.com:192.0.2.10:300\n")

	stdout, stderr, err := execZone(t, "check", "-s", bad, "-s", good)
	if err == nil {
		t.Fatal("expected the check to fail on a parse error")
	}
	if !strings.Contains(stderr, "ERROR") {
		t.Errorf("expected the parse error reported, got: %s", stderr)
	}
	// The good file is still checked.
	if !strings.Contains(stdout, "Checked 2 file(s)") {
		t.Errorf("expected both files checked, got: %s", stdout)
	}
}
