package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// maxHostnameLength is the usual 253-character ceiling for a full hostname.
const maxHostnameLength = 253

var (
	// hostnameLabelRegex matches one DNS label: 1-63 characters, starting
	// and ending with a letter, digit, or underscore, hyphens allowed in
	// between.
	hostnameLabelRegex = regexp.MustCompile(`^[A-Za-z0-9_]([A-Za-z0-9_-]{0,61}[A-Za-z0-9_])?$`)

	// hostnameTLDRegex matches the final label: 2-63 alphabetic characters.
	hostnameTLDRegex = regexp.MustCompile(`^[A-Za-z]{2,63}$`)
)

// CheckHostname reports whether s is a syntactically legal hostname: at most
// 253 characters, one or more dot-joined labels of 1-63 characters each, no
// leading or trailing hyphen in any label, and an alphabetic final label.
func CheckHostname(s string) error {
	if s == "" {
		return fmt.Errorf("hostname cannot be empty")
	}
	if len(s) > maxHostnameLength {
		return fmt.Errorf("hostname too long (%d > %d): %s", len(s), maxHostnameLength, s)
	}

	labels := strings.Split(s, ".")
	for _, label := range labels[:len(labels)-1] {
		if !hostnameLabelRegex.MatchString(label) {
			return fmt.Errorf("invalid label %q in hostname %s", label, s)
		}
	}
	if tld := labels[len(labels)-1]; !hostnameTLDRegex.MatchString(tld) {
		return fmt.Errorf("invalid top-level label %q in hostname %s", tld, s)
	}
	return nil
}
