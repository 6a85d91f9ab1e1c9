package rules

import (
	"strings"
	"testing"

	"zonewarden/internal/types"
)

func violationMessages(violations []types.Violation) []string {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Message
	}
	return msgs
}

func containsMessage(violations []types.Violation, substr string) bool {
	for _, v := range violations {
		if strings.Contains(v.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidate_Conformant(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		body string
	}{
		{
			name: "addresses and txt",
			doc:  "alice",
			body: `{"record": {"A": ["9.9.9.9"], "AAAA": ["2606:4700:4700::1111"], "TXT": "hello"}}`,
		},
		{
			name: "cname alone",
			doc:  "bob",
			body: `{"record": {"CNAME": "bob.github.io"}}`,
		},
		{
			name: "delegation with dnssec",
			doc:  "carol",
			body: `{"record": {"NS": ["ns1.carol.net", "ns2.carol.net"], "DS": [{"keyTag": 2371, "algorithm": 13, "digestType": 2, "digest": "ABCDEF012345"}]}}`,
		},
		{
			name: "url with custom paths",
			doc:  "dave",
			body: `{"record": {"URL": "https://dave.example.org"}, "redirect_config": {"custom_paths": {"/git": "https://github.com/dave"}}}`,
		},
		{
			name: "proxied placeholder address",
			doc:  "eve",
			body: `{"record": {"A": ["192.0.2.1"]}, "proxied": true}`,
		},
		{
			name: "mail setup",
			doc:  "frank",
			body: `{"record": {"MX": ["mx1.mail.example.com"], "TXT": ["v=spf1 -all"], "CAA": [{"flags": 0, "tag": "issue", "value": "letsencrypt.org"}]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildDocument(t, tt.doc, tt.body)
			got := Validate(doc)
			if len(got) != 0 {
				t.Errorf("Validate() = %v, want no violations", violationMessages(got))
			}
		})
	}
}

func TestValidate_CNAMESelfReference(t *testing.T) {
	doc := buildDocument(t, "example.com", `{"record": {"CNAME": "example.com"}}`)

	got := Validate(doc)
	if !containsMessage(got, "must not point at its own domain") {
		t.Errorf("Validate() = %v, want self-reference violation", violationMessages(got))
	}

	// The same target under a different document name is fine.
	other := buildDocument(t, "something-else", `{"record": {"CNAME": "example.com"}}`)
	if got := Validate(other); len(got) != 0 {
		t.Errorf("Validate() = %v, want no violations", violationMessages(got))
	}
}

func TestValidate_CustomPathDuplicatesBaseURL(t *testing.T) {
	doc := buildDocument(t, "dup", `{
		"record": {"URL": "https://example.com"},
		"redirect_config": {"custom_paths": {"/a": "https://example.com"}}
	}`)

	got := Validate(doc)
	if !containsMessage(got, "duplicates the base URL") {
		t.Errorf("Validate() = %v, want base-URL duplication violation", violationMessages(got))
	}
}

func TestValidate_DuplicateTags(t *testing.T) {
	doc := buildDocument(t, "twice", `{"record": {"A": ["9.9.9.9"], "A": ["8.8.8.8"]}}`)

	got := Validate(doc)
	if !containsMessage(got, "duplicate record type: A") {
		t.Errorf("Validate() = %v, want duplicate-tag violation", violationMessages(got))
	}
}

func TestValidate_UnknownTag(t *testing.T) {
	doc := buildDocument(t, "odd", `{"record": {"A": ["9.9.9.9"], "SPF": "x"}}`)

	got := Validate(doc)
	if !containsMessage(got, "unknown record type: SPF") {
		t.Errorf("Validate() = %v, want unknown-tag violation", violationMessages(got))
	}
}

func TestValidate_NoShortCircuit(t *testing.T) {
	// A document violating a combination rule still has its record values
	// and redirect config checked in the same pass.
	doc := buildDocument(t, "pile", `{
		"record": {"NS": ["ns1.example.com"], "A": ["192.168.1.1", "10.0.0.1"]},
		"redirect_config": {"custom_paths": {"bad": "not-a-url"}}
	}`)

	got := Validate(doc)

	wants := []string{
		"NS cannot be combined",
		"redirect configuration requires a URL record",
		"A record at index 0",
		"A record at index 1",
		"invalid custom path",
		"must start with http:// or https://",
	}
	for _, want := range wants {
		if !containsMessage(got, want) {
			t.Errorf("Validate() missing %q in %v", want, violationMessages(got))
		}
	}
}

func TestValidate_ProxiedAddressPolicy(t *testing.T) {
	// 192.168.1.1 stays rejected whatever the proxied flag says; the
	// placeholder 192.0.2.1 flips with it.
	tests := []struct {
		name    string
		body    string
		allowed bool
	}{
		{name: "private proxied", body: `{"record": {"A": ["192.168.1.1"]}, "proxied": true}`, allowed: false},
		{name: "private not proxied", body: `{"record": {"A": ["192.168.1.1"]}}`, allowed: false},
		{name: "placeholder proxied", body: `{"record": {"A": ["192.0.2.1"]}, "proxied": true}`, allowed: true},
		{name: "placeholder not proxied", body: `{"record": {"A": ["192.0.2.1"]}}`, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := buildDocument(t, "addr", tt.body)
			got := Validate(doc)
			if tt.allowed && len(got) != 0 {
				t.Errorf("Validate() = %v, want no violations", violationMessages(got))
			}
			if !tt.allowed && len(got) == 0 {
				t.Error("Validate() = no violations, want rejection")
			}
		})
	}
}

func TestValidate_ViolationsCarryDocumentName(t *testing.T) {
	doc := buildDocument(t, "named", `{"record": {"A": ["192.168.1.1"]}}`)

	got := Validate(doc)
	if len(got) == 0 {
		t.Fatal("Validate() = no violations, want one")
	}
	for _, v := range got {
		if v.Document != "named" {
			t.Errorf("Violation.Document = %q, want %q", v.Document, "named")
		}
	}
}

func BenchmarkValidate(b *testing.B) {
	doc, err := types.ParseDocument("bench", []byte(`{
		"record": {
			"A": ["9.9.9.9", "149.112.112.112"],
			"AAAA": ["2620:fe::fe", "2620:fe::9"],
			"MX": ["mx1.example.com", "mx2.example.com"],
			"TXT": ["v=spf1 -all", "key=value"]
		}
	}`))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Validate(doc)
	}
}
