package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"zonewarden/internal/types"
)

// hexRegex matches a non-empty hexadecimal string.
var hexRegex = regexp.MustCompile(`^[0-9a-fA-F]+$`)

// maxDSKeyTag is the ceiling of the 16-bit DNSSEC key tag.
const maxDSKeyTag = 65535

// asString decodes raw as a JSON string. A JSON null is not a string.
func asString(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// asArray decodes raw as a JSON array of raw elements.
func asArray(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

// asObject reports whether raw is a JSON object.
func asObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// checkAddressList validates an A or AAAA value: an array of strings, each
// a legal address. Every element is checked; a bad one does not hide the
// next.
func checkAddressList(rt types.RecordType, raw json.RawMessage, proxied bool) []string {
	items, ok := asArray(raw)
	if !ok {
		return []string{fmt.Sprintf("%s record must be an array of strings", rt)}
	}

	var msgs []string
	for i, item := range items {
		s, ok := asString(item)
		if !ok {
			msgs = append(msgs, fmt.Sprintf("%s record at index %d must be a string", rt, i))
			continue
		}
		var err error
		if rt == types.RecordTypeA {
			err = CheckIPv4(s, proxied)
		} else {
			err = CheckIPv6(s)
		}
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("%s record at index %d: %v", rt, i, err))
		}
	}
	return msgs
}

// checkHostnameList validates an MX or NS value: an array of strings, each a
// legal hostname.
func checkHostnameList(rt types.RecordType, raw json.RawMessage) []string {
	items, ok := asArray(raw)
	if !ok {
		return []string{fmt.Sprintf("%s record must be an array of strings", rt)}
	}

	var msgs []string
	for i, item := range items {
		s, ok := asString(item)
		if !ok {
			msgs = append(msgs, fmt.Sprintf("%s record at index %d must be a string", rt, i))
			continue
		}
		if err := CheckHostname(s); err != nil {
			msgs = append(msgs, fmt.Sprintf("%s record at index %d: %v", rt, i, err))
		}
	}
	return msgs
}

// checkCNAME validates a CNAME value: a legal hostname that is not the
// document's own name.
func checkCNAME(raw json.RawMessage, docName string) []string {
	s, ok := asString(raw)
	if !ok {
		return []string{"CNAME record must be a string"}
	}

	var msgs []string
	if err := CheckHostname(s); err != nil {
		msgs = append(msgs, fmt.Sprintf("CNAME record: %v", err))
	}
	if s == docName {
		msgs = append(msgs, fmt.Sprintf("CNAME record must not point at its own domain (%s)", s))
	}
	return msgs
}

// checkURL validates a URL record value.
func checkURL(raw json.RawMessage) []string {
	s, ok := asString(raw)
	if !ok {
		return []string{"URL record must be a string"}
	}
	if err := checkURLValue(s); err != nil {
		return []string{fmt.Sprintf("URL record: %v", err)}
	}
	return nil
}

// checkURLValue rejects targets without an http or https scheme, targets
// that do not parse, and targets with no host.
func checkURLValue(s string) error {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL %q: %v", s, err)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", s)
	}
	return nil
}

// checkTXT validates a TXT value: a bare string, or an array whose every
// element is a string.
func checkTXT(raw json.RawMessage) []string {
	if _, ok := asString(raw); ok {
		return nil
	}
	items, ok := asArray(raw)
	if !ok {
		return []string{"TXT record must be a string or an array of strings"}
	}

	var msgs []string
	for i, item := range items {
		if _, ok := asString(item); !ok {
			msgs = append(msgs, fmt.Sprintf("TXT record at index %d must be a string", i))
		}
	}
	return msgs
}

// checkObjectList validates a CAA or SRV value: an array of objects. No
// field-level policy applies beyond the shape.
func checkObjectList(rt types.RecordType, raw json.RawMessage) []string {
	items, ok := asArray(raw)
	if !ok {
		return []string{fmt.Sprintf("%s record must be an array of objects", rt)}
	}

	var msgs []string
	for i, item := range items {
		if !asObject(item) {
			msgs = append(msgs, fmt.Sprintf("%s record at index %d must be an object", rt, i))
		}
	}
	return msgs
}

// checkDS validates a DS value: an array of objects, each carrying an
// integer keyTag in [0, 65535] and a non-empty hexadecimal digest. The two
// fields are checked independently per element.
func checkDS(raw json.RawMessage) []string {
	items, ok := asArray(raw)
	if !ok {
		return []string{"DS record must be an array of objects"}
	}

	var msgs []string
	for i, item := range items {
		if !asObject(item) {
			msgs = append(msgs, fmt.Sprintf("DS record at index %d must be an object", i))
			continue
		}
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			msgs = append(msgs, fmt.Sprintf("DS record at index %d: %v", i, err))
			continue
		}
		msgs = append(msgs, checkDSKeyTag(i, fields["keyTag"])...)
		msgs = append(msgs, checkDSDigest(i, fields["digest"])...)
	}
	return msgs
}

func checkDSKeyTag(i int, raw json.RawMessage) []string {
	if raw == nil {
		return []string{fmt.Sprintf("DS record at index %d is missing keyTag", i)}
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return []string{fmt.Sprintf("DS record at index %d: keyTag must be an integer", i)}
	}
	f, err := n.Float64()
	if err != nil {
		return []string{fmt.Sprintf("DS record at index %d: keyTag must be an integer", i)}
	}
	if f != math.Trunc(f) {
		return []string{fmt.Sprintf("DS record at index %d: keyTag must be an integer, got %s", i, n)}
	}
	if f < 0 || f > maxDSKeyTag {
		return []string{fmt.Sprintf("DS record at index %d: keyTag must be between 0 and %d, got %s", i, maxDSKeyTag, n)}
	}
	return nil
}

func checkDSDigest(i int, raw json.RawMessage) []string {
	if raw == nil {
		return []string{fmt.Sprintf("DS record at index %d is missing digest", i)}
	}
	s, ok := asString(raw)
	if !ok {
		return []string{fmt.Sprintf("DS record at index %d: digest must be a string", i)}
	}
	if !hexRegex.MatchString(s) {
		return []string{fmt.Sprintf("DS record at index %d: digest must be a non-empty hexadecimal string", i)}
	}
	return nil
}
