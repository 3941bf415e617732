package zonegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStaticFiles(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"hosts.static", "mail.static", "notes.txt", "data"} {
		if err := os.WriteFile(filepath.Join(root, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	// A directory with a matching name must not be picked up.
	if err := os.Mkdir(filepath.Join(root, "extra.static"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := StaticFiles(root)
	if err != nil {
		t.Fatalf("StaticFiles returned error: %v", err)
	}
	want := []string{
		filepath.Join(root, "hosts.static"),
		filepath.Join(root, "mail.static"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("static files mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticFiles_MissingRoot(t *testing.T) {
	got, err := StaticFiles(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("StaticFiles returned error: %v", err)
	}
	if got != nil {
		t.Errorf("expected no files for a missing root, got %v", got)
	}
}
