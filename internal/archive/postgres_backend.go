package archive

import (
	"encoding/json"
	"strings"

	"github.com/tokamak-network/reportgen/internal/activity"
)

func (s *Store) ensureSchema() error {
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.Exec(`
CREATE TABLE IF NOT EXISTS report_archive (
  id TEXT PRIMARY KEY,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  scope TEXT NOT NULL DEFAULT 'biweekly',
  report_type TEXT NOT NULL DEFAULT 'technical',
  format TEXT NOT NULL DEFAULT '',
  title TEXT NOT NULL DEFAULT '',
  markdown TEXT NOT NULL DEFAULT '',
  report_url TEXT NOT NULL DEFAULT '',
  totals JSONB NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_report_archive_created_at ON report_archive (created_at DESC);
`)
	})
	return s.schemaErr
}

func (s *Store) putDB(e Entry) {
	if err := s.ensureSchema(); err != nil {
		return
	}
	totals, err := json.Marshal(e.Totals)
	if err != nil {
		totals = []byte("{}")
	}
	_, _ = s.db.Exec(`
INSERT INTO report_archive (id, created_at, scope, report_type, format, title, markdown, report_url, totals)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
ON CONFLICT (id)
DO UPDATE SET scope=EXCLUDED.scope,
  report_type=EXCLUDED.report_type,
  format=EXCLUDED.format,
  title=EXCLUDED.title,
  markdown=EXCLUDED.markdown,
  report_url=EXCLUDED.report_url,
  totals=EXCLUDED.totals`,
		e.ID, e.CreatedAt, e.Scope, e.ReportType, e.Format, e.Title, e.Markdown, e.ReportURL, totals)
	if s.readCache != nil {
		s.readCache.Add(e.ID, e)
	}
}

func (s *Store) getDB(id string) (Entry, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, false
	}
	if s.readCache != nil {
		if e, ok := s.readCache.Get(id); ok {
			return e, true
		}
	}
	if err := s.ensureSchema(); err != nil {
		return Entry{}, false
	}

	var (
		e      Entry
		totals []byte
	)
	err := s.db.QueryRow(`SELECT id, created_at, scope, report_type, format, title, markdown, report_url, totals
FROM report_archive WHERE id = $1`, id).
		Scan(&e.ID, &e.CreatedAt, &e.Scope, &e.ReportType, &e.Format, &e.Title, &e.Markdown, &e.ReportURL, &totals)
	if err != nil {
		return Entry{}, false
	}
	_ = json.Unmarshal(totals, &e.Totals)
	if s.readCache != nil {
		s.readCache.Add(e.ID, e)
	}
	return e, true
}

func (s *Store) listDB(limit int) []Entry {
	if err := s.ensureSchema(); err != nil {
		return nil
	}
	rows, err := s.db.Query(`SELECT id, created_at, scope, report_type, format, title, report_url, totals
FROM report_archive ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e      Entry
			totals []byte
		)
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Scope, &e.ReportType, &e.Format, &e.Title, &e.ReportURL, &totals); err != nil {
			continue
		}
		var t activity.Totals
		if json.Unmarshal(totals, &t) == nil {
			e.Totals = t
		}
		out = append(out, e)
	}
	return out
}
