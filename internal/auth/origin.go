package auth

import "net/netip"

// SentinelOrigin is the all-zero IPv4 address recorded for clients whose
// address cannot be parsed
var SentinelOrigin = netip.IPv4Unspecified()

// NormalizeOrigin converts a client address string into the binary form used as the
// origin rate-limit axis. IPv4 yields a 4-byte address and IPv6 a 16-byte one.
//
// Edge case: an empty, malformed, or zoned ("fe80::1%eth0") address does not fail;
// it normalizes to SentinelOrigin (0.0.0.0), so all such clients share one
// origin bucket.
func NormalizeOrigin(ip string) netip.Addr {
	addr, err := netip.ParseAddr(ip)
	if err != nil || addr.Zone() != "" {
		return SentinelOrigin
	}
	return addr
}
