package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tokamak-network/reportgen/internal/classify"
)

// TimestampLayout matches the export format of the activity CSV.
const TimestampLayout = "2006-01-02 15:04:05"

const maxMessageLen = 200

// ParseCSV reads activity rows and groups them by project, repository and
// member. Malformed rows are skipped; only an unreadable stream is an error.
func ParseCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	ds := &Dataset{
		Projects:    make(map[string]*Group),
		Repos:       make(map[string]*Group),
		Individuals: make(map[string]*Group),
	}
	seenMembers := make(map[string]bool)

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.Trim(strings.TrimSpace(row[i]), `"`)
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Row-level trouble (bad quoting etc.) is skipped, not fatal.
			if _, ok := err.(*csv.ParseError); ok {
				continue
			}
			return nil, fmt.Errorf("read csv row: %w", err)
		}

		if field(row, "source") != "github" {
			continue
		}
		repo := field(row, "repository")
		if repo == "" {
			continue
		}

		memberName := field(row, "member_name")
		memberEmail := field(row, "member_email")
		memberID := MemberID(memberName, memberEmail)
		if memberID != "" && !seenMembers[memberID] {
			seenMembers[memberID] = true
			ds.Members = append(ds.Members, Member{
				ID:    memberID,
				Label: memberLabel(memberName, memberEmail),
				Name:  memberName,
				Email: memberEmail,
			})
		}

		ts := field(row, "timestamp")
		if t, err := time.Parse(TimestampLayout, ts); err == nil {
			ds.Timestamps = append(ds.Timestamps, t)
		}

		project := classify.ProjectForRepo(repo)

		record := func(g *Group, c *Commit, pr *PullRequest) {
			g.Repos[repo] = struct{}{}
			if c != nil {
				g.Commits = append(g.Commits, *c)
			}
			if pr != nil {
				g.PRs = append(g.PRs, *pr)
			}
		}

		var commit *Commit
		var pullReq *PullRequest
		switch field(row, "type") {
		case "commit":
			message := field(row, "message")
			if message == "" || strings.HasPrefix(strings.ToLower(message), "merge ") {
				continue
			}
			if i := strings.IndexByte(message, '\n'); i >= 0 {
				message = message[:i]
			}
			message = truncateRunes(message, maxMessageLen)
			sha := field(row, "sha")
			if len(sha) > 8 {
				sha = sha[:8]
			}
			commit = &Commit{
				Repo:      repo,
				Message:   message,
				SHA:       sha,
				Timestamp: ts,
				Additions: atoiDefault(field(row, "additions")),
				Deletions: atoiDefault(field(row, "deletions")),
				MemberID:  memberID,
				Author:    memberName,
			}
		case "pull_request":
			title := field(row, "title")
			if title == "" {
				continue
			}
			pullReq = &PullRequest{
				Repo:      repo,
				Title:     title,
				Number:    field(row, "pr_number"),
				State:     field(row, "state"),
				Timestamp: ts,
				MemberID:  memberID,
			}
		default:
			continue
		}

		// Repository-level grouping always happens, enabling the
		// "group by repository" output mode.
		if _, ok := ds.Repos[repo]; !ok {
			ds.Repos[repo] = newGroup()
		}
		record(ds.Repos[repo], commit, pullReq)

		if project != "" {
			if _, ok := ds.Projects[project]; !ok {
				ds.Projects[project] = newGroup()
			}
			record(ds.Projects[project], commit, pullReq)
		} else if memberID != "" {
			// Unmapped repos are attributed to the contributor instead.
			if _, ok := ds.Individuals[memberID]; !ok {
				ds.Individuals[memberID] = newGroup()
			}
			record(ds.Individuals[memberID], commit, pullReq)
		}
	}

	return ds, nil
}

// MemberID derives the stable contributor identity: the email local-part when
// it contains an ASCII letter, else the raw name; lowercased with spaces
// replaced by hyphens.
func MemberID(name, email string) string {
	base := ""
	if at := strings.IndexByte(email, '@'); at > 0 {
		local := email[:at]
		if containsASCIILetter(local) {
			base = local
		}
	}
	if base == "" {
		base = name
	}
	base = strings.ToLower(strings.TrimSpace(base))
	return strings.ReplaceAll(base, " ", "-")
}

func memberLabel(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

func containsASCIILetter(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func atoiDefault(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// truncateRunes caps s at max characters without splitting a multibyte rune.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
