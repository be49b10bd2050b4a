// Package textutils provides text manipulation helpers shared by the
// analysis pipeline.
package textutils

import (
	"strings"
	"unicode"
)

// NormalizeDescription reduces a free-text purchase description to a
// canonical comparison key: lowercase, keep only ASCII letters and
// whitespace, then trim. Store numbers, punctuation and digits are stripped
// so that "NETFLIX 123" and "netflix!" compare equal. Empty and
// whitespace-only descriptions normalize to the empty string.
func NormalizeDescription(s string) string {
	lowered := strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
