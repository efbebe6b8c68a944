// Package archive keeps a history of generated reports, on disk by default
// and in Postgres when a DSN is configured.
package archive

import (
	"strings"
	"time"

	"github.com/tokamak-network/reportgen/internal/activity"
)

// Entry is one archived report.
type Entry struct {
	ID         string          `json:"id"`
	CreatedAt  time.Time       `json:"created_at"`
	Scope      string          `json:"scope"`
	ReportType string          `json:"report_type"`
	Format     string          `json:"format"`
	Title      string          `json:"title"`
	Markdown   string          `json:"markdown"`
	ReportURL  string          `json:"report_url,omitempty"`
	Totals     activity.Totals `json:"totals"`
}

func normalizeEntry(e Entry) Entry {
	e.ID = strings.TrimSpace(e.ID)
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.Scope == "" {
		e.Scope = activity.ScopeBiweekly
	}
	if e.ReportType == "" {
		e.ReportType = "technical"
	}
	if e.Format == "" {
		e.Format = "structured"
	}
	return e
}
