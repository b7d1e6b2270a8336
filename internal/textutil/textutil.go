// Package textutil converts raw HN comment HTML into plain text suitable
// for substring filtering and field extraction.
package textutil

import (
	"html"
	"regexp"
	"strings"
)

var tagRe = regexp.MustCompile(`<[^>]+>`) // best-effort removal; HN "text" is simple HTML

// Normalize strips markup tags, decodes HTML entities, and collapses all
// whitespace runs to single spaces. Pure function; idempotent on its own
// output. Tags are replaced with a space so adjacent paragraphs do not run
// together before the first-sentence split in extraction.
func Normalize(raw string) string {
	s := tagRe.ReplaceAllString(raw, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Truncate bounds s to at most n characters (runes, not bytes).
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
