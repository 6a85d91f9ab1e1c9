package rules

import (
	"fmt"
	"regexp"
	"strings"

	"zonewarden/internal/types"
)

const (
	minRedirectPathLength = 2
	maxRedirectPathLength = 255
)

// redirectPathRegex matches a custom redirect path: a leading slash followed
// by letters, digits, hyphens, underscores, dots, and slashes.
var redirectPathRegex = regexp.MustCompile(`^/[A-Za-z0-9\-_./]+$`)

// checkRedirect validates every custom path pair independently; one bad pair
// does not stop the others. baseURL is the document's URL record value: a
// custom path whose target merely repeats it is redundant and rejected.
func checkRedirect(rc *types.RedirectConfig, baseURL string) []string {
	var msgs []string
	for _, p := range rc.DuplicatePaths() {
		msgs = append(msgs, fmt.Sprintf("duplicate custom path: %s", p))
	}
	for _, entry := range rc.Paths {
		msgs = append(msgs, checkPathEntry(entry, baseURL)...)
	}
	return msgs
}

func checkPathEntry(entry types.PathEntry, baseURL string) []string {
	var msgs []string
	path := entry.Path

	if !redirectPathRegex.MatchString(path) || strings.HasSuffix(path, "/") {
		msgs = append(msgs, fmt.Sprintf("invalid custom path: %q", path))
	}
	if len(path) < minRedirectPathLength || len(path) > maxRedirectPathLength {
		msgs = append(msgs, fmt.Sprintf("custom path %q must be between %d and %d characters", path, minRedirectPathLength, maxRedirectPathLength))
	}

	target, ok := asString(entry.Target)
	if !ok {
		msgs = append(msgs, fmt.Sprintf("custom path %q target must be a string", path))
		return msgs
	}
	if baseURL != "" && target == baseURL {
		msgs = append(msgs, fmt.Sprintf("custom path %q target duplicates the base URL", path))
	}
	if err := checkURLValue(target); err != nil {
		msgs = append(msgs, fmt.Sprintf("custom path %q target: %v", path, err))
	}
	return msgs
}
