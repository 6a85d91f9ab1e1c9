package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// ipv6ExpandedRegex matches the canonical IPv6 form: eight colon-separated
// groups of exactly four hex digits.
var ipv6ExpandedRegex = regexp.MustCompile(`^([0-9a-fA-F]{4}:){7}[0-9a-fA-F]{4}$`)

// disallowedIPv6Prefixes lists the address classes that may not appear as
// record targets. Prefixes are matched against the address as written
// (lowercased), not the expanded form: expansion zero-pads every group, which
// would hide the abbreviated loopback and documentation spellings.
var disallowedIPv6Prefixes = []struct {
	prefix string
	class  string
}{
	{prefix: "fc", class: "unique-local"},
	{prefix: "fd", class: "unique-local"},
	{prefix: "fe80", class: "link-local"},
	{prefix: "::1", class: "loopback"},
	{prefix: "2001:db8", class: "documentation"},
}

// ExpandIPv6 rewrites a possibly-abbreviated IPv6 address into the canonical
// eight-group, four-hex-digit form. Expanding an already canonical address
// returns it unchanged.
func ExpandIPv6(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("invalid IPv6 address: empty string")
	}
	if strings.Count(s, "::") > 1 {
		return "", fmt.Errorf("invalid IPv6 address %q: more than one \"::\"", s)
	}

	var groups []string
	if strings.Contains(s, "::") {
		parts := strings.SplitN(s, "::", 2)
		var left, right []string
		if parts[0] != "" {
			left = strings.Split(parts[0], ":")
		}
		if parts[1] != "" {
			right = strings.Split(parts[1], ":")
		}
		missing := 8 - len(left) - len(right)
		if missing < 1 {
			return "", fmt.Errorf("invalid IPv6 address %q: too many groups", s)
		}
		groups = append(groups, left...)
		for i := 0; i < missing; i++ {
			groups = append(groups, "0000")
		}
		groups = append(groups, right...)
	} else {
		groups = strings.Split(s, ":")
	}

	if len(groups) != 8 {
		return "", fmt.Errorf("invalid IPv6 address %q: has %d groups, want 8", s, len(groups))
	}
	for i, g := range groups {
		if len(g) == 0 || len(g) > 4 {
			return "", fmt.Errorf("invalid IPv6 address %q: bad group %q", s, g)
		}
		groups[i] = strings.Repeat("0", 4-len(g)) + g
	}

	expanded := strings.Join(groups, ":")
	if !ipv6ExpandedRegex.MatchString(expanded) {
		return "", fmt.Errorf("invalid IPv6 address: %q", s)
	}
	return expanded, nil
}

// CheckIPv6 reports whether s is a well-formed, publicly routable IPv6
// address. Unique-local, link-local, loopback, and documentation addresses
// are rejected.
func CheckIPv6(s string) error {
	if _, err := ExpandIPv6(s); err != nil {
		return err
	}

	lower := strings.ToLower(s)
	for _, p := range disallowedIPv6Prefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return fmt.Errorf("IPv6 address %s is in %s space", s, p.class)
		}
	}
	return nil
}
