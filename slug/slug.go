// Package slug provides URL-friendly slug generation for category names and
// post titles.
package slug

import (
	"regexp"
	"strings"
)

var (
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// nonAlphanumericRun matches runs of anything outside [a-z0-9].
	nonAlphanumericRun = regexp.MustCompile(`[^a-z0-9]+`)
)

// FromName creates a slug from a category name: lowercase, with runs of
// whitespace collapsed into a single hyphen. Punctuation is kept as-is since
// category names are plain words by policy.
// Example: "Web   Development" → "web-development"
func FromName(s string) string {
	result := strings.ToLower(s)
	return whitespaceRun.ReplaceAllString(result, "-")
}

// FromTitle creates a slug from a post title: lowercase, with runs of any
// character outside [a-z0-9] replaced by a single hyphen, trimmed of leading
// and trailing hyphens.
// Example: "Hello, World! 2026" → "hello-world-2026"
func FromTitle(s string) string {
	result := strings.ToLower(s)
	result = nonAlphanumericRun.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
