package review

import (
	"strings"

	"github.com/tokamak-network/reportgen/internal/util/jsonutil"
)

// Issue is one suggested edit from a reviewer.
type Issue struct {
	Category     string `json:"category"`
	Description  string `json:"description"`
	Suggestion   string `json:"suggestion"`
	Severity     string `json:"severity"`
	OriginalText string `json:"original_text"`
	RevisedText  string `json:"revised_text"`
}

// Result is the parsed reviewer critique. After ParseResult every field is
// well typed regardless of what the model returned.
type Result struct {
	Issues       []Issue  `json:"issues"`
	Strengths    []string `json:"strengths"`
	OverallScore float64  `json:"overall_score"`
	Summary      string   `json:"summary"`
	Persona      string   `json:"persona,omitempty"`
}

const fallbackScore = 5

// fallbackResult is returned when no amount of repair yields parseable JSON.
func fallbackResult() Result {
	return Result{
		Issues:       []Issue{},
		Strengths:    []string{},
		OverallScore: fallbackScore,
		Summary:      "Review response could not be parsed; no specific feedback available.",
	}
}

// ParseResult recovers a Result from raw model output. Pipeline: strip code
// fences, direct parse, brace-balanced extraction of the first object,
// truncation repair, then the low-confidence fallback. Never returns an
// error; malformed input degrades.
func ParseResult(raw string) Result {
	text := jsonutil.StripFences(raw)

	if r, ok := tryParse(text); ok {
		return r
	}
	if obj, err := jsonutil.ExtractObject(text); err == nil {
		if r, ok := tryParse(obj); ok {
			return r
		}
		if r, ok := tryParse(repairTruncated(obj)); ok {
			return r
		}
	}
	if r, ok := tryParse(repairTruncated(text)); ok {
		return r
	}
	return fallbackResult()
}

func tryParse(text string) (Result, bool) {
	var r Result
	if err := jsonutil.UnmarshalFlex([]byte(text), &r); err != nil {
		return Result{}, false
	}
	if r.Issues == nil {
		r.Issues = []Issue{}
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.OverallScore <= 0 {
		r.OverallScore = fallbackScore
	}
	return r, true
}

// repairTruncated closes a JSON object cut off mid-stream: trims back to the
// last structural boundary, drops a dangling unterminated string, then
// appends the missing closers in reverse nesting order.
func repairTruncated(text string) string {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return text
	}
	text = text[start:]

	var stack []byte
	inString := false
	escaped := false
	lastComplete := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
			if !inString {
				lastComplete = i + 1
			}
		case '{':
			if !inString {
				stack = append(stack, '}')
				lastComplete = i + 1
			}
		case '[':
			if !inString {
				stack = append(stack, ']')
				lastComplete = i + 1
			}
		case '}', ']':
			if !inString && len(stack) > 0 && stack[len(stack)-1] == c {
				stack = stack[:len(stack)-1]
				lastComplete = i + 1
			}
		}
	}

	if inString {
		// Cut off inside a string literal; rewind past it.
		text = text[:lastComplete]
	}
	text = strings.TrimRight(text, " \t\r\n,")
	// A trailing `"key":` lost its value and cannot be closed as-is.
	if strings.HasSuffix(text, ":") {
		text = strings.TrimRight(strings.TrimSuffix(text, ":"), " \t\r\n")
	}
	// Inside an object a trailing bare string is a key without a value;
	// inside an array it is a complete element and stays.
	if len(stack) > 0 && stack[len(stack)-1] == '}' {
		text = dropDanglingKey(text)
	}
	text = strings.TrimRight(text, " \t\r\n,")
	for i := len(stack) - 1; i >= 0; i-- {
		text += string(stack[i])
	}
	return text
}

// dropDanglingKey removes a trailing `"key"` preceded by `{` or `,`, along
// with the comma. A string preceded by `:` is a value and is kept.
func dropDanglingKey(text string) string {
	t := strings.TrimRight(text, " \t\r\n")
	if !strings.HasSuffix(t, `"`) {
		return text
	}
	j := len(t) - 2
	for j >= 0 && !(t[j] == '"' && (j == 0 || t[j-1] != '\\')) {
		j--
	}
	if j < 0 {
		return text
	}
	before := strings.TrimRight(t[:j], " \t\r\n")
	if strings.HasSuffix(before, "{") {
		return before
	}
	if strings.HasSuffix(before, ",") {
		return strings.TrimSuffix(before, ",")
	}
	return text
}
