package llm

import (
	"strings"
	"time"
)

// ModelProfile carries per-model request tuning. Third-party latency and
// sampling behavior vary widely across vendors, so timeout and temperature
// are keyed by model-name substring rather than fixed globally.
type ModelProfile struct {
	Timeout     time.Duration
	Temperature float32
	MaxTokens   int
}

type profileRule struct {
	substr  string
	profile ModelProfile
}

// Rules apply in order; the first substring match wins.
var profileRules = []profileRule{
	{"gpt-5", ModelProfile{Timeout: 180 * time.Second, Temperature: 1.0, MaxTokens: 4000}},
	{"gpt", ModelProfile{Timeout: 90 * time.Second, Temperature: 0.7, MaxTokens: 2000}},
	{"claude", ModelProfile{Timeout: 120 * time.Second, Temperature: 0.7, MaxTokens: 2000}},
	{"gemini", ModelProfile{Timeout: 90 * time.Second, Temperature: 0.5, MaxTokens: 2000}},
}

var defaultProfile = ModelProfile{Timeout: 60 * time.Second, Temperature: 0.5, MaxTokens: 1500}

// ProfileFor resolves the profile for a model name.
func ProfileFor(model string) ModelProfile {
	name := strings.ToLower(strings.TrimSpace(model))
	for _, rule := range profileRules {
		if strings.Contains(name, rule.substr) {
			return rule.profile
		}
	}
	return defaultProfile
}
