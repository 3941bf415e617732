// Package tinydns models the tinydns-data zone file format: one record
// per line, a leading marker character selecting the record variant,
// ":"-separated fields following it. See
// http://cr.yp.to/djbdns/tinydns-data.html for the format reference.
package tinydns

import (
	"fmt"
	"regexp"
	"strings"
)

// Field is one named value of a record, in serialization order.
type Field struct {
	Name  string
	Value string
}

// Record is one line of a tinydns data file. The concrete variants are
// the types in this package; the set is closed.
type Record interface {
	// Marker returns the character that selects this record's variant
	// on disk.
	Marker() string

	fields() []Field
}

// Location associates a name with a client IP address prefix. Other
// records can carry the name in their location field, which makes
// tinydns serve them only to matching clients.
type Location struct {
	Name     string
	IPPrefix string
}

func (l *Location) Marker() string { return "%" }

func (l *Location) fields() []Field {
	return []Field{
		{"name", l.Name},
		{"ip_prefix", l.IPPrefix},
	}
}

// NameServer declares a name server for a domain. Authoritative
// records (".") also produce the domain's SOA; delegations ("&") do
// not.
type NameServer struct {
	Domain        string
	IP            string
	ServerName    string
	TTL           string
	Stamp         string
	Location      string
	Authoritative bool
}

func (n *NameServer) Marker() string {
	if n.Authoritative {
		return "."
	}
	return "&"
}

func (n *NameServer) fields() []Field {
	return []Field{
		{"domain", n.Domain},
		{"ip", n.IP},
		{"server_name", n.ServerName},
		{"ttl", n.TTL},
		{"stamp", n.Stamp},
		{"location", n.Location},
	}
}

// Alias maps a host name to an IPv4 address. Ptr selects whether a
// matching reverse record is generated ("=" vs "+"); Disabled ("-")
// keeps the line in the file without serving it.
type Alias struct {
	HostName string
	IP       string
	TTL      string
	Stamp    string
	Location string
	Ptr      bool
	Disabled bool
}

func (a *Alias) Marker() string {
	switch {
	case a.Disabled:
		return "-"
	case a.Ptr:
		return "="
	default:
		return "+"
	}
}

func (a *Alias) fields() []Field {
	return []Field{
		{"host_name", a.HostName},
		{"ip", a.IP},
		{"ttl", a.TTL},
		{"stamp", a.Stamp},
		{"location", a.Location},
	}
}

// MailExchange names a mail server for a domain, with Distance as the
// MX preference value.
type MailExchange struct {
	Domain     string
	IP         string
	ServerName string
	Distance   string
	TTL        string
	Stamp      string
	Location   string
}

func (m *MailExchange) Marker() string { return "@" }

func (m *MailExchange) fields() []Field {
	return []Field{
		{"domain", m.Domain},
		{"ip", m.IP},
		{"server_name", m.ServerName},
		{"distance", m.Distance},
		{"ttl", m.TTL},
		{"stamp", m.Stamp},
		{"location", m.Location},
	}
}

// Text serves free-form text for a host name.
type Text struct {
	HostName string
	Text     string
	TTL      string
	Stamp    string
	Location string
}

func (t *Text) Marker() string { return "'" }

func (t *Text) fields() []Field {
	return []Field{
		{"host_name", t.HostName},
		{"text", t.Text},
		{"ttl", t.TTL},
		{"stamp", t.Stamp},
		{"location", t.Location},
	}
}

// Pointer is a bare reverse-lookup record.
type Pointer struct {
	ReverseName string
	HostName    string
	TTL         string
	Stamp       string
	Location    string
}

func (p *Pointer) Marker() string { return "^" }

func (p *Pointer) fields() []Field {
	return []Field{
		{"reverse_name", p.ReverseName},
		{"host_name", p.HostName},
		{"ttl", p.TTL},
		{"stamp", p.Stamp},
		{"location", p.Location},
	}
}

// CNAME points a host name at a target name.
type CNAME struct {
	HostName string
	Target   string
	TTL      string
	Stamp    string
	Location string
}

func (c *CNAME) Marker() string { return "C" }

func (c *CNAME) fields() []Field {
	return []Field{
		{"host_name", c.HostName},
		{"target", c.Target},
		{"ttl", c.TTL},
		{"stamp", c.Stamp},
		{"location", c.Location},
	}
}

// SOA is an explicit start-of-authority record for a domain.
type SOA struct {
	HostName    string
	NameServer  string
	Contact     string
	Serial      string
	RefreshTime string
	RetryTime   string
	ExpireTime  string
	MinTime     string
	TTL         string
	Stamp       string
	Location    string
}

func (s *SOA) Marker() string { return "Z" }

func (s *SOA) fields() []Field {
	return []Field{
		{"host_name", s.HostName},
		{"name_server", s.NameServer},
		{"contact", s.Contact},
		{"serial", s.Serial},
		{"refresh_time", s.RefreshTime},
		{"retry_time", s.RetryTime},
		{"expire_time", s.ExpireTime},
		{"min_time", s.MinTime},
		{"ttl", s.TTL},
		{"stamp", s.Stamp},
		{"location", s.Location},
	}
}

// Generic carries a raw record of an arbitrary numeric type, for
// record types tinydns has no dedicated line for.
type Generic struct {
	HostName   string
	RecordType string
	Data       string
	TTL        string
	Stamp      string
	Location   string
}

func (g *Generic) Marker() string { return ":" }

func (g *Generic) fields() []Field {
	return []Field{
		{"host_name", g.HostName},
		{"record_type", g.RecordType},
		{"data", g.Data},
		{"ttl", g.TTL},
		{"stamp", g.Stamp},
		{"location", g.Location},
	}
}

// Comment is an information-only line. Its text round-trips verbatim,
// colons included.
type Comment struct {
	Text string
}

func (c *Comment) Marker() string { return "#" }

func (c *Comment) fields() []Field {
	return []Field{{"text", c.Text}}
}

// Blank is an empty line, used to space records out for readability.
type Blank struct{}

func (b *Blank) Marker() string { return "" }

func (b *Blank) fields() []Field { return nil }

// Serialize encodes r as one data line, trailing newline included.
// Trailing empty fields are dropped along with their separators;
// Comment and Blank serialize verbatim.
func Serialize(r Record) string {
	switch r := r.(type) {
	case *Comment:
		return "#" + r.Text + "\n"
	case *Blank:
		return "\n"
	}

	fs := r.fields()
	values := make([]string, len(fs))
	for i, f := range fs {
		values[i] = f.Value
	}
	line := r.Marker() + strings.Join(values, ":")
	line = strings.TrimRight(line, ":")
	return line + "\n"
}

// nameFields are the fields whose values are DNS names.
var nameFields = map[string]bool{
	"host_name":    true,
	"domain":       true,
	"server_name":  true,
	"name_server":  true,
	"target":       true,
	"reverse_name": true,
}

// Names returns the values of r's name-bearing fields, empties
// skipped. The format model itself never validates names; this gives
// callers that want to the material to check.
func Names(r Record) []string {
	var names []string
	for _, f := range r.fields() {
		if nameFields[f.Name] && f.Value != "" {
			names = append(names, f.Value)
		}
	}
	return names
}

// Matches reports whether the named field of r contains a match for
// the regular expression pattern (a substring search, not anchored).
// A field name the variant does not declare never matches.
func Matches(r Record, field, pattern string) (bool, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return false, err
	}
	return matchField(r, field, re), nil
}

func matchField(r Record, field string, re *regexp.Regexp) bool {
	for _, f := range r.fields() {
		if f.Name == field {
			return re.MatchString(f.Value)
		}
	}
	return false
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("tinydns: bad search pattern %q: %w", pattern, err)
	}
	return re, nil
}
