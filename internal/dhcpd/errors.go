package dhcpd

import "errors"

// ErrMalformedExpiration reports an ends line whose timestamp could not
// be parsed. A damaged lease log is surfaced to the caller, not hidden.
var ErrMalformedExpiration = errors.New("malformed lease expiration")

// ErrLeaseNotFound reports a hardware address with no lease in the set.
var ErrLeaseNotFound = errors.New("lease not found")
