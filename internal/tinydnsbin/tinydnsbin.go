// Package tinydnsbin runs the external tinydns-data compiler, which
// turns the data file in a tinydns root directory into the data.cdb
// the server actually reads.
package tinydnsbin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
)

// DefaultBinary is the compiler looked up on PATH when no explicit
// binary is configured.
const DefaultBinary = "tinydns-data"

// Compiler invokes tinydns-data inside a zone root.
type Compiler struct {
	// Path is the binary to run. Empty means DefaultBinary from PATH.
	Path string

	// Stdout and Stderr receive the compiler's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Run compiles the data file under root. A non-zero exit comes back as
// an error carrying the exit code; the compiler's own diagnostics go
// to the configured writers.
func (c *Compiler) Run(ctx context.Context, root string) error {
	path := c.Path
	if path == "" {
		path = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, path)
	cmd.Dir = root
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("tinydnsbin: %s exited with code %d", path, exitErr.ExitCode())
		}
		return fmt.Errorf("tinydnsbin: run %s: %w", path, err)
	}
	return nil
}
