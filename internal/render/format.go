// Package render assembles generated sections and summaries into the three
// report outputs: Markdown, self-contained HTML, and a compact email variant.
package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// FmtComma formats an integer with thousands separators.
func FmtComma(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// FmtShort formats large signed numbers like "+4.9M" or "-12K".
func FmtShort(n int) string {
	abs := n
	sign := ""
	if n > 0 {
		sign = "+"
	} else if n < 0 {
		sign = "-"
		abs = -n
	}
	switch {
	case abs >= 1_000_000:
		val := float64(abs) / 1_000_000
		if val == float64(int(val)) {
			return fmt.Sprintf("%s%dM", sign, int(val))
		}
		return fmt.Sprintf("%s%.1fM", sign, val)
	case abs >= 1_000:
		val := float64(abs) / 1_000
		if val == float64(int(val)) {
			return fmt.Sprintf("%s%dK", sign, int(val))
		}
		return fmt.Sprintf("%s%.1fK", sign, val)
	default:
		return sign + FmtComma(abs)
	}
}

var (
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe    = regexp.MustCompile(`\*([^*]+)\*`)
	linkRe      = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	codeRe      = regexp.MustCompile("`([^`]+)`")
	tableRowRe  = regexp.MustCompile(`\|.*\|`)
	hrRe        = regexp.MustCompile(`---+`)
	tripleStars = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
)

// StripMarkdown removes markdown syntax artifacts from AI-generated text.
func StripMarkdown(text string) string {
	text = headingRe.ReplaceAllString(text, "")
	text = tripleStars.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = codeRe.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// CleanMarkdown flattens markdown to plain text, dropping tables and rules.
func CleanMarkdown(text string) string {
	text = boldRe.ReplaceAllString(text, "$1")
	text = italicRe.ReplaceAllString(text, "$1")
	text = linkRe.ReplaceAllString(text, "$1")
	text = tableRowRe.ReplaceAllString(text, "")
	text = hrRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// EscapeHTML escapes text for HTML embedding, stripping markdown artifacts
// first so model output never leaks raw syntax into the page.
func EscapeHTML(text string) string {
	text = StripMarkdown(text)
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(text)
}
