package archive

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

func (s *Store) ensureLoadedFile() {
	s.loadOnce.Do(func() {
		b, err := os.ReadFile(s.path)
		if err != nil {
			return
		}
		var rows []Entry
		if err := json.Unmarshal(b, &rows); err != nil {
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, row := range rows {
			id := strings.TrimSpace(row.ID)
			if id == "" {
				continue
			}
			s.byID[id] = normalizeEntry(row)
		}
	})
}

func (s *Store) saveFile() {
	s.mu.RLock()
	rows := make([]Entry, 0, len(s.byID))
	for _, e := range s.byID {
		rows = append(rows, e)
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool { return newerFirst(rows[i], rows[j]) })

	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return
	}
	_ = os.MkdirAll(filepath.Dir(s.path), 0o755)
	_ = os.WriteFile(s.path, b, 0o644)
}

func (s *Store) putFile(e Entry) {
	s.ensureLoadedFile()
	s.mu.Lock()
	s.byID[e.ID] = e
	s.mu.Unlock()
	s.saveFile()
}

func (s *Store) getFile(id string) (Entry, bool) {
	s.ensureLoadedFile()
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, false
	}
	s.mu.RLock()
	e, ok := s.byID[id]
	s.mu.RUnlock()
	return e, ok
}

func (s *Store) listFile(limit int) []Entry {
	s.ensureLoadedFile()
	s.mu.RLock()
	rows := make([]Entry, 0, len(s.byID))
	for _, e := range s.byID {
		e.Markdown = ""
		rows = append(rows, e)
	}
	s.mu.RUnlock()
	sort.Slice(rows, func(i, j int) bool { return newerFirst(rows[i], rows[j]) })
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
