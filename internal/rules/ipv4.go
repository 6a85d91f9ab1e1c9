package rules

import (
	"fmt"
	"net"
	"regexp"
)

// ipv4Regex matches four dot-separated decimal octets, each 0-255, with no
// leading zeros.
var ipv4Regex = regexp.MustCompile(`^(25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9])(\.(25[0-5]|2[0-4][0-9]|1[0-9][0-9]|[1-9]?[0-9])){3}$`)

// disallowedIPv4Ranges lists the private, shared, link-local, documentation,
// and benchmarking ranges that may not appear as record targets.
var disallowedIPv4Ranges = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"100.64.0.0/10",
	"169.254.0.0/16",
	"192.0.0.0/24",
	"192.0.2.0/24",
	"198.18.0.0/15",
	"198.51.100.0/24",
	"203.0.113.0/24",
)

// proxyPlaceholderIPv4 is the documentation address allowed as a stand-in
// target when the domain is proxied.
const proxyPlaceholderIPv4 = "192.0.2.1"

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}

// CheckIPv4 reports whether s is a well-formed, publicly routable IPv4
// address. Addresses in private, shared (CGNAT), link-local, documentation,
// benchmarking, multicast, or reserved space are rejected. The placeholder
// 192.0.2.1 is allowed when the domain is proxied.
func CheckIPv4(s string, proxied bool) error {
	if !ipv4Regex.MatchString(s) {
		return fmt.Errorf("invalid IPv4 address: %q", s)
	}
	if proxied && s == proxyPlaceholderIPv4 {
		return nil
	}

	ip := net.ParseIP(s).To4()
	if ip == nil {
		return fmt.Errorf("invalid IPv4 address: %q", s)
	}
	if ip[0] >= 224 {
		return fmt.Errorf("IPv4 address %s is in multicast or reserved space", s)
	}
	for _, n := range disallowedIPv4Ranges {
		if n.Contains(ip) {
			return fmt.Errorf("IPv4 address %s is in disallowed range %s", s, n)
		}
	}
	return nil
}
