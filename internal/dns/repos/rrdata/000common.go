// Package rrdata compiles the text form of record values from record files
// into their wire-format payloads. Only the payload bytes are produced; the
// surrounding record framing belongs to the wire codec.
package rrdata

import (
	"fmt"
	"net"

	"github.com/hvdkamp/dnswire/internal/dns/domain"
)

// encodeDomainName encodes a domain name into wire format (length-prefixed
// labels ending in 0), uncompressed. Used by every record type that embeds
// a name.
func encodeDomainName(name string) ([]byte, error) {
	parsed := domain.ParseName(domain.CanonicalName(name))
	var encoded []byte
	for _, label := range parsed {
		if len(label) > 63 {
			return nil, fmt.Errorf("label too long: %s", label)
		}
		encoded = append(encoded, byte(len(label)))
		encoded = append(encoded, label...)
	}
	encoded = append(encoded, 0)
	return encoded, nil
}

// isIPv4 checks whether the provided net.IP address is an IPv4 address.
func isIPv4(ip net.IP) bool {
	return ip != nil && ip.To4() != nil
}

// isIPv6 checks whether the provided net.IP is a valid IPv6 address.
func isIPv6(ip net.IP) bool {
	return ip != nil && ip.To16() != nil && ip.To4() == nil
}
