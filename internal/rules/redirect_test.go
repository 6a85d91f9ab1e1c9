package rules

import (
	"encoding/json"
	"strings"
	"testing"

	"zonewarden/internal/types"
)

func parseRedirect(t *testing.T, body string) *types.RedirectConfig {
	t.Helper()
	var rc types.RedirectConfig
	if err := json.Unmarshal([]byte(body), &rc); err != nil {
		t.Fatalf("parse redirect config: %v", err)
	}
	return &rc
}

func TestCheckRedirect(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		baseURL string
		want    []string
	}{
		{
			name: "single valid path",
			body: `{"custom_paths": {"/git": "https://github.com/alice"}}`,
		},
		{
			name: "several valid paths",
			body: `{"custom_paths": {"/git": "https://github.com/alice", "/blog": "https://blog.example.com", "/cv.pdf": "https://files.example.com/cv.pdf"}}`,
		},
		{
			name: "path without leading slash",
			body: `{"custom_paths": {"git": "https://github.com/alice"}}`,
			want: []string{"invalid custom path"},
		},
		{
			name: "path with trailing slash",
			body: `{"custom_paths": {"/git/": "https://github.com/alice"}}`,
			want: []string{"invalid custom path"},
		},
		{
			name: "path with space",
			body: `{"custom_paths": {"/my page": "https://github.com/alice"}}`,
			want: []string{"invalid custom path"},
		},
		{
			name: "bare slash",
			body: `{"custom_paths": {"/": "https://github.com/alice"}}`,
			want: []string{"invalid custom path", "must be between 2 and 255 characters"},
		},
		{
			name: "duplicate path",
			body: `{"custom_paths": {"/x": "https://a.example.com", "/x": "https://b.example.com"}}`,
			want: []string{"duplicate custom path: /x"},
		},
		{
			name: "target is not a string",
			body: `{"custom_paths": {"/x": 42}}`,
			want: []string{`custom path "/x" target must be a string`},
		},
		{
			name: "target without scheme",
			body: `{"custom_paths": {"/x": "github.com/alice"}}`,
			want: []string{"must start with http:// or https://"},
		},
		{
			name:    "target duplicates base url",
			body:    `{"custom_paths": {"/x": "https://alice.example.com"}}`,
			baseURL: "https://alice.example.com",
			want:    []string{"duplicates the base URL"},
		},
		{
			name: "same target without base url is fine",
			body: `{"custom_paths": {"/x": "https://alice.example.com"}}`,
		},
		{
			name: "one bad path does not hide the next",
			body: `{"custom_paths": {"/ok": "https://a.example.com", "bad": "https://b.example.com", "/also-bad": "nope"}}`,
			want: []string{"invalid custom path", "must start with http:// or https://"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := parseRedirect(t, tt.body)
			got := checkRedirect(rc, tt.baseURL)

			if len(got) != len(tt.want) {
				t.Fatalf("checkRedirect() = %v, want %d violations", got, len(tt.want))
			}
			for i, want := range tt.want {
				if !strings.Contains(got[i], want) {
					t.Errorf("violation[%d] = %q, want containing %q", i, got[i], want)
				}
			}
		})
	}
}

func TestCheckRedirect_PathLength(t *testing.T) {
	longest := "/" + strings.Repeat("a", 254)
	tooLong := "/" + strings.Repeat("a", 255)

	tests := []struct {
		name string
		path string
		ok   bool
	}{
		{name: "two characters", path: "/a", ok: true},
		{name: "255 characters", path: longest, ok: true},
		{name: "256 characters", path: tooLong, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := &types.RedirectConfig{
				Paths: []types.PathEntry{
					{Path: tt.path, Target: json.RawMessage(`"https://example.com/x"`)},
				},
			}
			got := checkRedirect(rc, "")

			if tt.ok && len(got) != 0 {
				t.Errorf("checkRedirect() = %v, want none", got)
			}
			if !tt.ok && len(got) == 0 {
				t.Error("checkRedirect() = none, want length violation")
			}
		})
	}
}

func TestValidate_RedirectTargetEqualsURLRecord(t *testing.T) {
	// A custom path that just repeats the URL record is pointless and must
	// be called out.
	body := `{
		"record": {"URL": "https://alice.example.com"},
		"redirect_config": {"custom_paths": {"/here": "https://alice.example.com"}}
	}`
	doc := buildDocument(t, "alice", body)

	violations := Validate(doc)
	found := false
	for _, v := range violations {
		if strings.Contains(v.Message, "duplicates the base URL") {
			found = true
		}
	}
	if !found {
		t.Errorf("Validate() = %v, want a base URL duplication violation", violations)
	}
}
