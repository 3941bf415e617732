package util

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"
)

// ValidateHostName checks that a name can serve as the owner name of a
// zone record:
//   - Non-empty
//   - A well-formed domain name (label and total length limits)
//   - Written in relative form, without the trailing dot
func ValidateHostName(name string) error {
	if name == "" {
		return errors.New("host name is empty")
	}

	if _, ok := dns.IsDomainName(name); !ok {
		return fmt.Errorf("host name %q is not a well-formed domain name", name)
	}

	if strings.HasSuffix(name, ".") {
		return fmt.Errorf("host name %q must be written without the trailing dot", name)
	}

	return nil
}

// ValidateMAC checks that mac parses as a hardware address.
func ValidateMAC(mac string) error {
	if _, err := net.ParseMAC(mac); err != nil {
		return fmt.Errorf("%q is not a valid MAC address", mac)
	}
	return nil
}
