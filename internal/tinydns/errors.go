package tinydns

import "errors"

// ErrUnknownMarker indicates a data line whose leading character does
// not select any registered record variant. Parse wraps it with the
// offending marker and line:
//
//	tinydns: unknown record marker "!" in line "!bogus"
var ErrUnknownMarker = errors.New("unknown record marker")
