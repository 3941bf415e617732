package tinydns

import (
	"fmt"
	"regexp"
	"strings"

	"nathanbeddoewebdev/leasedns/internal/fsio"
)

// Section is an ordered group of records that belong together,
// optionally bound to a backing file. Unbound sections hold synthetic
// records that exist only in memory; their Read and Write are no-ops.
type Section struct {
	path    string
	records []Record
}

// NewSection returns a section bound to the file at path. An empty
// path makes an unbound section.
func NewSection(path string) *Section {
	return &Section{path: path}
}

// Path returns the backing file path, empty for unbound sections.
func (s *Section) Path() string { return s.path }

// Records returns the section's records in order.
func (s *Section) Records() []Record { return s.records }

// Add appends records, preserving call order.
func (s *Section) Add(records ...Record) {
	s.records = append(s.records, records...)
}

// Read replaces the section's records with the parsed contents of the
// backing file. Reading an unbound section leaves it unchanged. A line
// that fails to parse fails the whole read.
func (s *Section) Read() error {
	if s.path == "" {
		return nil
	}

	var records []Record
	for line, err := range fsio.Lines(s.path) {
		if err != nil {
			return fmt.Errorf("tinydns: read section %s: %w", s.path, err)
		}
		r, err := Parse(line)
		if err != nil {
			return fmt.Errorf("tinydns: read section %s: %w", s.path, err)
		}
		records = append(records, r)
	}
	s.records = records
	return nil
}

// Write persists the section's text to its backing file atomically.
// Writing an unbound section is a no-op.
func (s *Section) Write() error {
	if s.path == "" {
		return nil
	}
	if err := fsio.Save(s.path, []byte(s.Text())); err != nil {
		return fmt.Errorf("tinydns: write section %s: %w", s.path, err)
	}
	return nil
}

// Search returns the records whose named field matches the regular
// expression pattern, in section order.
func (s *Section) Search(field, pattern string) ([]Record, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	return s.searchRE(field, re), nil
}

func (s *Section) searchRE(field string, re *regexp.Regexp) []Record {
	var out []Record
	for _, r := range s.records {
		if matchField(r, field, re) {
			out = append(out, r)
		}
	}
	return out
}

// Text returns the section's on-disk form: every record serialized, in
// order.
func (s *Section) Text() string {
	var b strings.Builder
	for _, r := range s.records {
		b.WriteString(Serialize(r))
	}
	return b.String()
}
