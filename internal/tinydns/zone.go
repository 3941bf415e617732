package tinydns

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"nathanbeddoewebdev/leasedns/internal/fsio"
)

// Zone is the complete authoritative data served by tinydns: an
// ordered sequence of sections whose concatenation is the data file.
// Section order matters; when the same name appears twice, the later
// occurrence wins in the effective zone.
type Zone struct {
	sections []*Section
}

// NewZone returns an empty zone.
func NewZone() *Zone { return &Zone{} }

// Sections returns the zone's sections in order.
func (z *Zone) Sections() []*Section { return z.sections }

// ReadDirectory replaces the zone's sections with one section per
// regular file in dir whose name starts with prefix and ends with
// suffix (an empty prefix or suffix matches everything). Files are
// read in name order so the composed zone is deterministic.
func (z *Zone) ReadDirectory(dir, prefix, suffix string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("tinydns: read zone directory %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if prefix != "" && !strings.HasPrefix(name, prefix) {
			continue
		}
		if suffix != "" && !strings.HasSuffix(name, suffix) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return z.ReadNamed(paths...)
}

// ReadNamed replaces the zone's sections with one section per path, in
// caller order. On error the zone keeps its previous sections.
func (z *Zone) ReadNamed(paths ...string) error {
	sections := make([]*Section, 0, len(paths))
	for _, path := range paths {
		s := NewSection(path)
		if err := s.Read(); err != nil {
			return err
		}
		sections = append(sections, s)
	}
	z.sections = sections
	return nil
}

// Prepend inserts a section before the first current section.
func (z *Zone) Prepend(s *Section) {
	z.sections = append([]*Section{s}, z.sections...)
}

// Append adds a section after the last current section.
func (z *Zone) Append(s *Section) {
	z.sections = append(z.sections, s)
}

// Search returns the records in any section whose named field matches
// the regular expression pattern, in zone order.
func (z *Zone) Search(field, pattern string) ([]Record, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}

	var out []Record
	for _, s := range z.sections {
		out = append(out, s.searchRE(field, re)...)
	}
	return out, nil
}

// Text returns the zone's on-disk form: sections joined by a blank
// line, in order.
func (z *Zone) Text() string {
	texts := make([]string, len(z.sections))
	for i, s := range z.sections {
		texts[i] = s.Text()
	}
	return strings.Join(texts, "\n")
}

// Merge atomically replaces the live data file under root with the
// zone's text. A concurrent reader of the file sees either the old or
// the new zone, never a partial write.
func (z *Zone) Merge(root string) error {
	path := filepath.Join(root, "data")
	if err := fsio.Save(path, []byte(z.Text())); err != nil {
		return fmt.Errorf("tinydns: merge zone into %s: %w", path, err)
	}
	return nil
}
