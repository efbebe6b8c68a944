// Package review critiques assembled reports through persona prompts and
// applies the suggested edits back onto the text.
package review

import "strings"

// Persona is one fixed reviewer profile. Level orders personas from least to
// most technical.
type Persona struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	NameKo      string `json:"name_ko"`
	Description string `json:"description"`
	Instruction string `json:"-"`
}

// Personas is the fixed reviewer roster, least technical first.
var Personas = []Persona{
	{
		Level:       1,
		Name:        "General Reader",
		NameKo:      "일반 독자",
		Description: "No technical background",
		Instruction: "You have no technical background. Flag jargon, unexplained acronyms, and any sentence a newspaper reader could not follow.",
	},
	{
		Level:       2,
		Name:        "Business Analyst",
		NameKo:      "비즈니스 분석가",
		Description: "Investment & business focus",
		Instruction: "You evaluate reports for investors. Flag claims without business impact, missing context on why work matters, and vague progress statements.",
	},
	{
		Level:       3,
		Name:        "Project Manager",
		NameKo:      "프로젝트 매니저",
		Description: "Moderate technical understanding",
		Instruction: "You track delivery across teams. Flag unclear scope, missing timelines or next steps, and sections that do not state what was actually completed.",
	},
	{
		Level:       4,
		Name:        "Senior Developer",
		NameKo:      "시니어 개발자",
		Description: "Deep blockchain experience",
		Instruction: "You are a senior engineer with deep blockchain experience. Flag technical inaccuracies, overstated claims, and descriptions that conflate distinct components.",
	},
	{
		Level:       5,
		Name:        "Blockchain Architect",
		NameKo:      "블록체인 아키텍트",
		Description: "Protocol & systems architect",
		Instruction: "You design protocols and systems. Flag architectural misstatements, security claims without grounding, and imprecise protocol terminology.",
	},
}

// PersonaByName resolves a persona case-insensitively; ok is false for
// unknown names.
func PersonaByName(name string) (Persona, bool) {
	for _, p := range Personas {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Persona{}, false
}

// DefaultPersona reviews when the caller names none.
func DefaultPersona() Persona { return Personas[0] }
