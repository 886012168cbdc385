package engine

import (
	"html"
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

// User-Agent for non-disguised requests (timedtext endpoints don't care).
const UserAgentBot = "transcript-service/1.0"

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// CleanCaptionText normalises one caption line: strips markup tags that
// YouTube embeds in styled tracks, unescapes HTML entities (&amp;#39; etc.),
// and collapses the newlines auto-generated tracks use as soft wraps.
func CleanCaptionText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// Truncate returns the first n bytes of s.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
