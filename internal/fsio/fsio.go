// Package fsio provides the file primitives the zone and lease code is
// built on: an atomic whole-file writer and a lazy line reader.
package fsio

import (
	"bufio"
	"iter"
	"os"
	"path/filepath"
)

// Save atomically replaces the file at path with content. The data is
// written to a temporary file in the same directory and renamed into
// place, so a concurrent reader sees either the old content or the new
// content, never a partial write.
func Save(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	// The file is read by other processes, not just us.
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// Lines returns the lines of the file at path as a sequence. The file is
// opened when iteration starts, so ranging over the sequence a second
// time re-reads the file. Open or read failures are yielded as the final
// element's error.
func Lines(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield("", err)
			return
		}
		defer f.Close()

		sc := bufio.NewScanner(f)
		for sc.Scan() {
			if !yield(sc.Text(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield("", err)
		}
	}
}
