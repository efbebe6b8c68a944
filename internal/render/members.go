package render

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// MemberProfile maps a member id to display metadata used by the HTML
// contributor bylines.
type MemberProfile struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Language string `json:"language,omitempty"`
}

// LoadMembers reads a member directory JSON file. An empty path or a missing
// file yields an empty map; a malformed file is an error.
func LoadMembers(path string) (map[string]MemberProfile, error) {
	if path == "" {
		return map[string]MemberProfile{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]MemberProfile{}, nil
		}
		return nil, fmt.Errorf("read members file: %w", err)
	}
	var members map[string]MemberProfile
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("parse members file: %w", err)
	}
	normalized := make(map[string]MemberProfile, len(members))
	for id, m := range members {
		normalized[strings.ToLower(id)] = m
	}
	return normalized, nil
}

// DisplayName resolves a contributor id to a human name, falling back to the
// id itself.
func DisplayName(members map[string]MemberProfile, id string) string {
	if m, ok := members[strings.ToLower(id)]; ok && m.Name != "" {
		return m.Name
	}
	return id
}
