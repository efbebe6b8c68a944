// Package heuristic holds the deterministic text transforms used when AI
// generation is disabled, unavailable, or returns nothing usable. Everything
// here is a pure function of its inputs.
package heuristic

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tokamak-network/reportgen/internal/activity"
)

// CapitalizeFirst upper-cases the first rune. Commit messages arrive in mixed
// scripts, so the first character must be decoded, not byte-sliced.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

var (
	conventionalPrefixRe = regexp.MustCompile(`(?i)^(feat|fix|refactor|test|docs|chore|build|ci|perf|style)(\([^)]*\))?!?:\s*`)
	bracketTagRe         = regexp.MustCompile(`^\[[^\]]*\]\s*`)
	spacesRe             = regexp.MustCompile(`\s+`)
)

// SimplifyMessage strips conventional-commit prefixes and leading bracketed
// tags from a commit message.
func SimplifyMessage(msg string) string {
	msg = strings.TrimSpace(msg)
	msg = conventionalPrefixRe.ReplaceAllString(msg, "")
	msg = bracketTagRe.ReplaceAllString(msg, "")
	return strings.TrimSpace(msg)
}

// jargonStoplist rejects strings a non-technical reader should not see.
var jargonStoplist = []string{
	"test", "tests", "ci", "cd", "refactor", "refactoring", "sdk", "api",
	"contract", "merge", "wip", "typo", "lint", "dependabot", "bump",
	"readme", "config", "cleanup", "chore", "deps", "dependency",
}

// connectives mark internal follow-up phrasing rather than a deliverable.
var connectives = map[string]bool{
	"and": true, "or": true, "but": true, "so": true,
	"also": true, "then": true, "more": true, "misc": true,
}

// IsPublicDeliverable reports whether the text reads as an investor-facing
// accomplishment: at least 3 words, no leading connective, no jargon.
func IsPublicDeliverable(text string) bool {
	text = strings.TrimSpace(text)
	words := strings.Fields(text)
	if len(words) < 3 {
		return false
	}
	first := strings.ToLower(strings.Trim(words[0], ".,;:"))
	if connectives[first] {
		return false
	}
	lower := strings.ToLower(text)
	for _, stop := range jargonStoplist {
		if containsWord(lower, stop) {
			return false
		}
	}
	return true
}

func containsWord(haystack, word string) bool {
	idx := 0
	for {
		i := strings.Index(haystack[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordByte(haystack[i-1])
		after := i+len(word) == len(haystack) || !isWordByte(haystack[i+len(word)])
		if before && after {
			return true
		}
		idx = i + len(word)
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

// verbRule rewrites one technical leading verb into a user-facing one.
// Rules apply in order; the first match wins.
type verbRule struct {
	re   *regexp.Regexp
	verb string
}

var verbRules = []verbRule{
	{regexp.MustCompile(`(?i)^(add|adds|added|adding)\b\s*`), "Launched"},
	{regexp.MustCompile(`(?i)^(fix|fixes|fixed|fixing|resolve|resolved)\b\s*`), "Secured"},
	{regexp.MustCompile(`(?i)^(update|updates|updated|updating|improve|improved|enhance|enhanced)\b\s*`), "Improved"},
	{regexp.MustCompile(`(?i)^(implement|implements|implemented|implementing|create|created|build|built)\b\s*`), "Delivered"},
	{regexp.MustCompile(`(?i)^(support|supports|supported|enable|enabled)\b\s*`), "Enabled"},
}

// PublicizeDeliverable rewrites a technical phrase into business phrasing.
func PublicizeDeliverable(text string) string {
	text = SimplifyMessage(text)
	for _, rule := range verbRules {
		if rule.re.MatchString(text) {
			rest := rule.re.ReplaceAllString(text, "")
			return NormalizePublicDeliverable(rule.verb + " " + rest)
		}
	}
	return NormalizePublicDeliverable(text)
}

// NormalizePublicDeliverable tidies whitespace, capitalizes the first letter
// and terminates the sentence.
func NormalizePublicDeliverable(text string) string {
	text = spacesRe.ReplaceAllString(strings.TrimSpace(text), " ")
	if text == "" {
		return ""
	}
	text = CapitalizeFirst(text)
	text = strings.TrimRight(text, ".")
	return text + "."
}

// ExtractPublicPRDeliverables picks up to limit investor-presentable items
// from merged PR titles, in input order, deduplicated by normalized text.
func ExtractPublicPRDeliverables(prs []activity.PullRequest, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, pr := range prs {
		if len(out) >= limit {
			break
		}
		simplified := SimplifyMessage(pr.Title)
		if !IsPublicDeliverable(simplified) {
			continue
		}
		item := PublicizeDeliverable(simplified)
		k := strings.ToLower(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

// ExtractPublicCommitDeliverables does the same over ranked commit messages.
func ExtractPublicCommitDeliverables(commits []activity.Commit, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, c := range commits {
		if len(out) >= limit {
			break
		}
		simplified := SimplifyMessage(c.Message)
		if !IsPublicDeliverable(simplified) {
			continue
		}
		item := PublicizeDeliverable(simplified)
		k := strings.ToLower(item)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, item)
	}
	return out
}

// ExtractTechnicalDeliverables keeps technical phrasing: simplified messages,
// deduplicated, capped at limit.
func ExtractTechnicalDeliverables(commits []activity.Commit, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]bool)
	for _, c := range commits {
		if len(out) >= limit {
			break
		}
		msg := SimplifyMessage(c.Message)
		if msg == "" {
			continue
		}
		msg = CapitalizeFirst(msg)
		k := strings.ToLower(msg)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, msg)
	}
	return out
}
