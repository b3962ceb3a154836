// Package text provides small text normalization helpers shared by the
// message sources.
package text

import "strings"

// Flatten collapses all whitespace runs in s to single spaces and trims
// the ends. Feed bodies arrive with markup-driven line breaks and
// indentation that carry no meaning once the markup is stripped.
func Flatten(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
