package generate

import "strings"

// meta-commentary openers models sometimes prepend despite instructions.
var metaPrefixes = []string{
	"here are", "here is", "here's", "sure,", "sure!", "certainly",
	"below are", "below is", "okay,", "of course",
}

// SanitizeSection strips accidental meta commentary from model output. For
// technical sections it additionally drops trailing commentary after the
// bullet list.
func SanitizeSection(text, reportType string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")

	// Drop leading meta lines.
	for len(lines) > 0 {
		first := strings.ToLower(strings.TrimSpace(lines[0]))
		if first == "" {
			lines = lines[1:]
			continue
		}
		meta := false
		for _, p := range metaPrefixes {
			if strings.HasPrefix(first, p) {
				meta = true
				break
			}
		}
		if !meta {
			break
		}
		lines = lines[1:]
	}

	// Strip wrapping code fences.
	if len(lines) > 1 && strings.HasPrefix(strings.TrimSpace(lines[0]), "```") {
		lines = lines[1:]
		for i := len(lines) - 1; i >= 0; i-- {
			if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
				lines = lines[:i]
				break
			}
		}
	}

	if reportType == TypeTechnical {
		lines = trimTrailingCommentary(lines)
	}
	return strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
}

// trimTrailingCommentary removes prose after the last bullet when the body is
// predominantly a bullet list.
func trimTrailingCommentary(lines []string) []string {
	lastBullet := -1
	bullets := 0
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if strings.HasPrefix(t, "* ") || strings.HasPrefix(t, "- ") {
			lastBullet = i
			bullets++
		}
	}
	if bullets < 3 || lastBullet < 0 {
		return lines
	}
	return lines[:lastBullet+1]
}
