package tinydns

import (
	"fmt"
	"strings"
)

// parseFunc builds one record variant from the marker that selected it
// and the unsplit remainder of the line.
type parseFunc func(marker, rest string) Record

var markerTable = map[string]parseFunc{}

// register adds a record variant to the marker table. It panics on an
// empty marker, a nil parse function, or a marker that is already
// taken (programmer errors detected at startup).
func register(marker string, parse parseFunc) {
	if marker == "" {
		panic("tinydns: empty record marker")
	}
	if parse == nil {
		panic(fmt.Sprintf("tinydns: nil parse func for marker %q", marker))
	}
	if _, exists := markerTable[marker]; exists {
		panic(fmt.Sprintf("tinydns: marker %q already registered", marker))
	}
	markerTable[marker] = parse
}

// The full variant table. Markers that share a parse function encode a
// flag in which marker was used; the parse functions recover it.
func init() {
	register("%", parseLocation)
	register(".", parseNameServer)
	register("&", parseNameServer)
	register("=", parseAlias)
	register("+", parseAlias)
	register("-", parseAlias)
	register("@", parseMailExchange)
	register("'", parseText)
	register("^", parsePointer)
	register("C", parseCNAME)
	register("Z", parseSOA)
	register(":", parseGeneric)
	register("#", parseComment)
}

// Parse decodes one zone data line into a Record. The first character
// selects the variant; the remainder is split on ":" into that
// variant's fields, missing trailing fields defaulting to empty. A
// blank line decodes as Blank.
func Parse(line string) (Record, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return &Blank{}, nil
	}

	marker := string(line[0])
	parse, ok := markerTable[marker]
	if !ok {
		return nil, fmt.Errorf("tinydns: %w %q in line %q", ErrUnknownMarker, marker, line)
	}
	return parse(marker, line[1:]), nil
}

// splitFields splits rest on ":" into exactly n values, padding missing
// trailing fields with "" and dropping extras.
func splitFields(rest string, n int) []string {
	parts := strings.Split(rest, ":")
	out := make([]string, n)
	copy(out, parts)
	return out
}

func parseLocation(_, rest string) Record {
	f := splitFields(rest, 2)
	return &Location{Name: f[0], IPPrefix: f[1]}
}

func parseNameServer(marker, rest string) Record {
	f := splitFields(rest, 6)
	return &NameServer{
		Domain:        f[0],
		IP:            f[1],
		ServerName:    f[2],
		TTL:           f[3],
		Stamp:         f[4],
		Location:      f[5],
		Authoritative: marker == ".",
	}
}

func parseAlias(marker, rest string) Record {
	f := splitFields(rest, 5)
	return &Alias{
		HostName: f[0],
		IP:       f[1],
		TTL:      f[2],
		Stamp:    f[3],
		Location: f[4],
		Ptr:      marker == "=",
		Disabled: marker == "-",
	}
}

func parseMailExchange(_, rest string) Record {
	f := splitFields(rest, 7)
	return &MailExchange{
		Domain:     f[0],
		IP:         f[1],
		ServerName: f[2],
		Distance:   f[3],
		TTL:        f[4],
		Stamp:      f[5],
		Location:   f[6],
	}
}

func parseText(_, rest string) Record {
	f := splitFields(rest, 5)
	return &Text{
		HostName: f[0],
		Text:     f[1],
		TTL:      f[2],
		Stamp:    f[3],
		Location: f[4],
	}
}

func parsePointer(_, rest string) Record {
	f := splitFields(rest, 5)
	return &Pointer{
		ReverseName: f[0],
		HostName:    f[1],
		TTL:         f[2],
		Stamp:       f[3],
		Location:    f[4],
	}
}

func parseCNAME(_, rest string) Record {
	f := splitFields(rest, 5)
	return &CNAME{
		HostName: f[0],
		Target:   f[1],
		TTL:      f[2],
		Stamp:    f[3],
		Location: f[4],
	}
}

func parseSOA(_, rest string) Record {
	f := splitFields(rest, 11)
	return &SOA{
		HostName:    f[0],
		NameServer:  f[1],
		Contact:     f[2],
		Serial:      f[3],
		RefreshTime: f[4],
		RetryTime:   f[5],
		ExpireTime:  f[6],
		MinTime:     f[7],
		TTL:         f[8],
		Stamp:       f[9],
		Location:    f[10],
	}
}

func parseGeneric(_, rest string) Record {
	f := splitFields(rest, 6)
	return &Generic{
		HostName:   f[0],
		RecordType: f[1],
		Data:       f[2],
		TTL:        f[3],
		Stamp:      f[4],
		Location:   f[5],
	}
}

// Comments keep the remainder whole so text containing ":" survives a
// read/write cycle.
func parseComment(_, rest string) Record {
	return &Comment{Text: rest}
}
